package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"carousel/define"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var Config *define.Config

var (
	// ErrInvalidConfig 配置校验失败
	ErrInvalidConfig = errors.New("配置无效")
)

const (
	DefaultWebPort            = "9099"
	DefaultFrameRate          = 60
	DefaultTransitionDuration = 300 * time.Millisecond
	DefaultMinWidth           = 200
	DefaultMinHeight          = 100
)

// Default 返回默认配置
func Default() *define.Config {
	return &define.Config{
		WebPort:            DefaultWebPort,
		FrameRate:          DefaultFrameRate,
		TransitionDuration: DefaultTransitionDuration,
		MinWidth:           DefaultMinWidth,
		MinHeight:          DefaultMinHeight,
		LogLevel:           "info",
		LogFormat:          "text",
		AllowOrigins:       []string{"*"},
	}
}

// ApplyEnv 读取 .env 文件（可选）并用环境变量覆盖 cfg 中已设置的字段。
// 未设置的环境变量不会改变原值。
func ApplyEnv(cfg *define.Config, files ...string) error {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("加载环境文件失败：%w", err)
		}
	} else {
		// .env 不存在时忽略
		_ = godotenv.Load()
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("解析环境变量失败：%w", err)
	}
	return nil
}

// Validate 校验配置
func Validate(cfg *define.Config) error {
	switch {
	case cfg.WebPort == "":
		return fmt.Errorf("%w: 未设置 Web 端口", ErrInvalidConfig)
	case cfg.FrameRate <= 0 || cfg.FrameRate > 240:
		return fmt.Errorf("%w: 帧率 %d 超出范围 (1-240)", ErrInvalidConfig, cfg.FrameRate)
	case cfg.TransitionDuration <= 0:
		return fmt.Errorf("%w: 过渡时长必须为正数", ErrInvalidConfig)
	case cfg.MinWidth < 0 || cfg.MinHeight < 0:
		return fmt.Errorf("%w: 最小尺寸不能为负数", ErrInvalidConfig)
	}
	return nil
}

// FrameInterval 根据帧率计算帧间隔
func FrameInterval(cfg *define.Config) time.Duration {
	if cfg.FrameRate <= 0 {
		return time.Second / DefaultFrameRate
	}
	return time.Second / time.Duration(cfg.FrameRate)
}

// IsAllowedOrigin 判断跨域来源是否被允许
func IsAllowedOrigin(origin string) bool {
	if Config == nil {
		return false
	}
	return slices.Contains(Config.AllowOrigins, "*") || slices.Contains(Config.AllowOrigins, origin)
}

// AllowCredentials 允许所有来源时不携带凭证，避免任意站点带 cookie 访问
func AllowCredentials() bool {
	return Config != nil && !slices.Contains(Config.AllowOrigins, "*")
}
