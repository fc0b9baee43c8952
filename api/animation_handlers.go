package api

import (
	"context"
	"fmt"
	"net/http"

	"carousel/carousel"
	"carousel/slider"

	"github.com/gin-gonic/gin"
)

// handlePauseAnimation 暂停当前过渡
func (s *Server) handlePauseAnimation(c *gin.Context) {
	s.controlAnimation(c, "过渡已暂停", (*carousel.Instance).Pause)
}

// handleResumeAnimation 恢复被暂停的过渡
func (s *Server) handleResumeAnimation(c *gin.Context) {
	s.controlAnimation(c, "过渡已恢复", (*carousel.Instance).Resume)
}

// handleSetSpeed 调整当前过渡速度
func (s *Server) handleSetSpeed(c *gin.Context) {
	inst, err := s.manager.Get(c.Param("sliderId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	var req SpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的速度请求：", err)
		return
	}

	st, err := inst.Slow(c.Request.Context(), req.Factor)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.animationStatus(c, inst, fmt.Sprintf("过渡时长已乘以 %g", req.Factor), st)
}

func (s *Server) controlAnimation(c *gin.Context, message string, control func(*carousel.Instance, context.Context) (slider.Status, error)) {
	inst, err := s.manager.Get(c.Param("sliderId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	st, err := control(inst, c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.animationStatus(c, inst, message, st)
}

func (s *Server) animationStatus(c *gin.Context, inst *carousel.Instance, message string, st slider.Status) {
	paused, err := inst.Paused(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: message,
		Data: AnimationStatusResponse{
			Paused: paused,
			Status: st,
		},
	})
}
