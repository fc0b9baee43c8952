package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carousel/api"
	"carousel/carousel"
	"carousel/cli"
	"carousel/config"
	"carousel/frame"
	"carousel/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func printUsage() {
	fmt.Println("Carousel Slider Service")
	fmt.Println("Usage:")
	fmt.Println("  -port string        Web 服务的端口 (default: 9099)")
	fmt.Println("  -fps int            帧率 (default: 60)")
	fmt.Println("  -duration duration  一次完整切换的总时长 (default: 300ms)")
	fmt.Println("  -min-width float    轮播容器最小宽度 (default: 200)")
	fmt.Println("  -min-height float   轮播容器最小高度 (default: 100)")
	fmt.Println("  -log-level string   日志级别 debug/info/warn/error (default: info)")
	fmt.Println("  -log-format string  日志格式 text/json (default: text)")
	fmt.Println("  -origins string     允许跨域的来源列表，用逗号分隔 (default: *)")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  WEB_PORT             Web 服务的端口")
	fmt.Println("  FRAME_RATE           帧率")
	fmt.Println("  TRANSITION_DURATION  一次完整切换的总时长，例如 450ms")
	fmt.Println("  MIN_SLIDER_WIDTH     轮播容器最小宽度")
	fmt.Println("  MIN_SLIDER_HEIGHT    轮播容器最小高度")
	fmt.Println("  LOG_LEVEL            日志级别")
	fmt.Println("  LOG_FORMAT           日志格式")
	fmt.Println("  ALLOW_ORIGINS        允许跨域的来源列表，用逗号分隔")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  ./carousel -port 8080 -fps 30")
	fmt.Println("  TRANSITION_DURATION=1s LOG_FORMAT=json ./carousel")
}

func main() {
	// 检查是否请求帮助
	if cli.WantsHelp() {
		printUsage()
		return
	}

	// 解析配置
	cfg, err := cli.ParseConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "❌ 配置错误: %v\n", err)
		os.Exit(2)
	}
	config.Config = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 配置错误: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("service", "carousel")),
	)
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("❌ 服务异常退出", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.Config

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("🚀 启动轮播服务",
		"port", cfg.WebPort,
		"fps", cfg.FrameRate,
		"duration", cfg.TransitionDuration,
		"minSize", fmt.Sprintf("%gx%g", cfg.MinWidth, cfg.MinHeight),
	)

	loop := frame.NewLoop(
		frame.WithInterval(config.FrameInterval(cfg)),
		frame.WithLogger(log),
	)
	manager := carousel.NewManager(loop,
		carousel.WithDefaultDuration(cfg.TransitionDuration),
		carousel.WithMinSize(cfg.MinWidth, cfg.MinHeight),
		carousel.WithLogger(log),
	)

	// 设置 Gin 模式
	gin.SetMode(gin.ReleaseMode)

	// 创建 Gin 引擎
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  config.IsAllowedOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: config.AllowCredentials(),
		MaxAge:           12 * time.Hour,
	}))

	// 设置 API 路由
	api.NewServer(manager, log).SetupRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return loop.Run(gctx)
	})

	g.Go(func() error {
		log.Info("🌐 轮播服务运行中", "url", "http://localhost:"+cfg.WebPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务启动失败：%w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("🛑 正在关闭服务")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// 先结束帧推送，SSE 连接才能退出
		manager.Close(shutdownCtx)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("⚠️ 服务未能正常关闭", "error", err)
			return srv.Close()
		}
		return nil
	})

	err := g.Wait()
	log.Info("👋 服务已退出", "sliders", manager.Count())
	return err
}
