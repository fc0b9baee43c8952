package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carousel/carousel"
	"carousel/render"
	"carousel/slider"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

func (s *Server) sliderInfo(ctx context.Context, inst *carousel.Instance) (SliderInfo, error) {
	st, err := inst.Status(ctx)
	if err != nil {
		return SliderInfo{}, err
	}
	paused, err := inst.Paused(ctx)
	if err != nil {
		return SliderInfo{}, err
	}
	return SliderInfo{
		ID:        inst.ID,
		Name:      inst.Name,
		CreatedAt: inst.CreatedAt,
		Items:     inst.Items(),
		Paused:    paused,
		Status:    st,
	}, nil
}

// handleGetSliders 获取所有轮播列表
func (s *Server) handleGetSliders(c *gin.Context) {
	list := s.manager.List()

	infos := make([]SliderInfo, 0, len(list))
	for _, inst := range list {
		info, err := s.sliderInfo(c.Request.Context(), inst)
		if err != nil {
			s.fail(c, err)
			return
		}
		infos = append(infos, info)
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: SliderListResponse{
			Sliders: infos,
			Total:   len(infos),
		},
	})
}

// handleCreateSlider 创建新轮播
func (s *Server) handleCreateSlider(c *gin.Context) {
	var req SliderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的轮播创建请求：", err)
		return
	}

	// 同一轮播内的内容 ID 必须唯一
	if dup := lo.FindDuplicatesBy(req.Items, func(b BlockRequest) string { return b.ID }); len(dup) > 0 {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("内容 ID 重复：%s", dup[0].ID),
		})
		return
	}

	blocks := lo.Map(req.Items, func(b BlockRequest, _ int) *render.Block {
		return render.NewBlock(b.ID, b.Width, b.Height)
	})

	inst, err := s.manager.Create(c.Request.Context(), carousel.Spec{
		Name:     req.Name,
		Items:    blocks,
		Duration: time.Duration(req.DurationMs) * time.Millisecond,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	info, err := s.sliderInfo(c.Request.Context(), inst)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ApiResponse{
		Status:  "success",
		Message: fmt.Sprintf("轮播 %s 创建成功", inst.Name),
		Data:    info,
	})
}

// handleGetSlider 获取轮播详情
func (s *Server) handleGetSlider(c *gin.Context) {
	inst, err := s.manager.Get(c.Param("sliderId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	info, err := s.sliderInfo(c.Request.Context(), inst)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   info,
	})
}

// handleDeleteSlider 删除轮播
func (s *Server) handleDeleteSlider(c *gin.Context) {
	sliderId := c.Param("sliderId")

	if err := s.manager.Remove(c.Request.Context(), sliderId); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: fmt.Sprintf("轮播 %s 已删除", sliderId),
	})
}

// handleGoTo 点击指示器跳转到指定内容
func (s *Server) handleGoTo(c *gin.Context) {
	inst, err := s.manager.Get(c.Param("sliderId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	var req GoToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的跳转请求：", err)
		return
	}

	res, err := inst.GoTo(c.Request.Context(), *req.Index, button(req.Button))
	s.navigated(c, res, err)
}

// handlePrev 点击左侧按钮
func (s *Server) handlePrev(c *gin.Context) {
	s.handleArrow(c, (*carousel.Instance).Prev)
}

// handleNext 点击右侧按钮
func (s *Server) handleNext(c *gin.Context) {
	s.handleArrow(c, (*carousel.Instance).Next)
}

type arrowFunc func(*carousel.Instance, context.Context, slider.Button) (carousel.Result, error)

func (s *Server) handleArrow(c *gin.Context, click arrowFunc) {
	inst, err := s.manager.Get(c.Param("sliderId"))
	if err != nil {
		s.fail(c, err)
		return
	}

	// 请求体可选
	var req ArrowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "无效的按钮请求：", err)
			return
		}
	}

	res, err := click(inst, c.Request.Context(), button(req.Button))
	s.navigated(c, res, err)
}

func (s *Server) navigated(c *gin.Context, res carousel.Result, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}

	message := "过渡已开始"
	if !res.Started {
		message = "请求已忽略"
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: message,
		Data: NavigateResponse{
			Started: res.Started,
			Status:  res.Status,
		},
	})
}
