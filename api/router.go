package api

import (
	"log/slog"
	"time"

	"carousel/carousel"

	"github.com/gin-gonic/gin"
)

// Server API 服务器结构体
type Server struct {
	manager   *carousel.Manager
	logger    *slog.Logger
	startTime time.Time
	version   string
}

// NewServer 创建新的 API 服务器实例
func NewServer(manager *carousel.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		manager:   manager,
		logger:    logger,
		startTime: time.Now(),
		version:   Version,
	}
}

// SetupRoutes 设置 API 路由
func (s *Server) SetupRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		// 轮播管理路由
		sliders := v1.Group("/sliders")
		{
			sliders.GET("", s.handleGetSliders)                // 获取所有轮播
			sliders.POST("", s.handleCreateSlider)             // 创建轮播
			sliders.GET("/:sliderId", s.handleGetSlider)       // 获取轮播详情
			sliders.DELETE("/:sliderId", s.handleDeleteSlider) // 删除轮播

			sliderRoutes := sliders.Group("/:sliderId")
			{
				// 导航路由
				sliderRoutes.POST("/goto", s.handleGoTo) // 点击指示器
				sliderRoutes.POST("/prev", s.handlePrev) // 点击左侧按钮
				sliderRoutes.POST("/next", s.handleNext) // 点击右侧按钮

				// 动画控制路由
				animation := sliderRoutes.Group("/animation")
				{
					animation.POST("/pause", s.handlePauseAnimation)   // 暂停过渡
					animation.POST("/resume", s.handleResumeAnimation) // 恢复过渡
					animation.PUT("/speed", s.handleSetSpeed)          // 调整过渡速度
				}

				// 帧推送
				sliderRoutes.GET("/stream", s.handleStream)
			}
		}

		// 系统管理路由
		system := v1.Group("/system")
		{
			system.GET("/status", s.handleGetSystemStatus) // 获取系统状态
			system.GET("/health", s.handleHealthCheck)     // 健康检查
		}
	}
}
