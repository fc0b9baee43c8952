package cli

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"carousel/config"
	"carousel/define"
)

// 解析配置：先读取命令行参数，再用环境变量覆盖
func ParseConfig(args []string) (*define.Config, error) {
	cfg := config.Default()
	fs := flag.NewFlagSet("carousel", flag.ContinueOnError)

	var originsFlag string
	fs.StringVar(&cfg.WebPort, "port", cfg.WebPort, "Web 服务的端口")
	fs.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "帧率（每秒帧数）")
	fs.DurationVar(&cfg.TransitionDuration, "duration", cfg.TransitionDuration, "一次完整切换的总时长")
	fs.Float64Var(&cfg.MinWidth, "min-width", cfg.MinWidth, "轮播容器最小宽度")
	fs.Float64Var(&cfg.MinHeight, "min-height", cfg.MinHeight, "轮播容器最小高度")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "日志级别 (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "日志格式 (text, json)")
	fs.StringVar(&originsFlag, "origins", "", "允许跨域的来源列表，用逗号分隔")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if originsFlag != "" {
		cfg.AllowOrigins = splitList(originsFlag)
	}

	// 环境变量覆盖命令行参数
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	slog.Debug("🔧 配置解析完成", "port", cfg.WebPort, "fps", cfg.FrameRate, "duration", cfg.TransitionDuration)
	return cfg, nil
}

// splitList 切分逗号分隔的列表并清理空白字符
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WantsHelp 检查是否请求帮助
func WantsHelp() bool {
	return len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help")
}
