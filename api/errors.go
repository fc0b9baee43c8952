package api

import (
	"context"
	"errors"
	"net/http"

	"carousel/carousel"
	"carousel/frame"
	"carousel/slider"

	"github.com/gin-gonic/gin"
)

// statusOf 将领域错误映射为 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, carousel.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, carousel.ErrIndexOutOfRange),
		errors.Is(err, carousel.ErrInvalidFactor),
		errors.Is(err, slider.ErrNoItems),
		errors.Is(err, slider.ErrInvalidItem):
		return http.StatusBadRequest
	case errors.Is(err, frame.ErrLoopStopped),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("❌ 请求处理失败", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ApiResponse{
		Status: "error",
		Error:  err.Error(),
	})
}

func badRequest(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusBadRequest, ApiResponse{
		Status: "error",
		Error:  msg + err.Error(),
	})
}
