package define

import "time"

// 配置结构体
type Config struct {
	WebPort            string        `env:"WEB_PORT"`
	FrameRate          int           `env:"FRAME_RATE"`
	TransitionDuration time.Duration `env:"TRANSITION_DURATION"`
	MinWidth           float64       `env:"MIN_SLIDER_WIDTH"`
	MinHeight          float64       `env:"MIN_SLIDER_HEIGHT"`
	LogLevel           string        `env:"LOG_LEVEL"`
	LogFormat          string        `env:"LOG_FORMAT"`
	AllowOrigins       []string      `env:"ALLOW_ORIGINS" envSeparator:","`
}

// API 响应结构体
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}
