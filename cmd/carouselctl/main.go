package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
)

// ctlConfig 命令行工具的环境变量配置
type ctlConfig struct {
	ServerURL string        `env:"CAROUSEL_URL" envDefault:"http://127.0.0.1:9099"`
	Timeout   time.Duration `env:"CAROUSEL_TIMEOUT" envDefault:"5s"`
}

func main() {
	var cfg ctlConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "解析环境变量失败: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
