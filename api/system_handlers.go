package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeout = time.Second

// handleGetSystemStatus 获取系统状态
func (s *Server) handleGetSystemStatus(c *gin.Context) {
	active, err := s.manager.ActiveCount(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	loop := s.manager.Loop()
	response := SystemStatusResponse{
		TotalSliders:  s.manager.Count(),
		ActiveSliders: active,
		Frames:        loop.Frames(),
		FrameInterval: loop.Interval(),
		Uptime:        time.Since(s.startTime),
		Version:       s.version,
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   response,
	})
}

// handleHealthCheck 健康检查
func (s *Server) handleHealthCheck(c *gin.Context) {
	status := "healthy"

	// 帧循环停止或阻塞时所有导航都无法执行
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()
	if s.manager == nil || s.manager.Loop().Do(ctx, func() {}) != nil {
		status = "unhealthy"
	}

	httpStatus := http.StatusOK
	if status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, ApiResponse{
		Status: "success",
		Data: HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   s.version,
		},
	})
}
