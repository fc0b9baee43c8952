package slider

import (
	"log/slog"
	"time"
)

// Option 轮播配置项
type Option func(*options)

type options struct {
	duration  time.Duration
	minWidth  float64
	minHeight float64
	logger    *slog.Logger
	name      string
}

func defaultOptions() options {
	return options{
		duration:  DefaultDuration,
		minWidth:  MinWidth,
		minHeight: MinHeight,
		logger:    slog.Default(),
		name:      "slider",
	}
}

// WithDuration 设置一次导航的总时长，与经过的步数无关
func WithDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.duration = d
		}
	}
}

// WithMinSize 设置中央容器的最小尺寸
func WithMinSize(width, height float64) Option {
	return func(o *options) {
		if width >= 0 {
			o.minWidth = width
		}
		if height >= 0 {
			o.minHeight = height
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置名称，仅用于日志
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}
