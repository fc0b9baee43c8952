package api

import (
	"time"

	"carousel/define"
	"carousel/render"
	"carousel/slider"
)

// Version 服务版本
const Version = "1.0.0"

// ApiResponse 统一 API 响应格式
type ApiResponse = define.ApiResponse

// ===== 轮播管理相关模型 =====

// BlockRequest 内容块描述
type BlockRequest struct {
	ID     string  `json:"id" binding:"required"`
	Width  float64 `json:"width" binding:"gte=0"`
	Height float64 `json:"height" binding:"gte=0"`
}

// SliderCreateRequest 创建轮播请求
type SliderCreateRequest struct {
	Name       string         `json:"name,omitempty"`
	Items      []BlockRequest `json:"items" binding:"dive"`
	DurationMs int            `json:"durationMs,omitempty" binding:"gte=0"`
}

// SliderInfo 轮播信息响应
type SliderInfo struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []*render.Block `json:"items"`
	Paused    bool            `json:"paused"`
	Status    slider.Status   `json:"status"`
}

// SliderListResponse 轮播列表响应
type SliderListResponse struct {
	Sliders []SliderInfo `json:"sliders"`
	Total   int          `json:"total"`
}

// ===== 导航相关模型 =====

// GoToRequest 指示器点击请求，button 缺省为主键
type GoToRequest struct {
	Index  *int `json:"index" binding:"required"`
	Button int  `json:"button,omitempty" binding:"gte=0,lte=3"`
}

// ArrowRequest 左右按钮点击请求
type ArrowRequest struct {
	Button int `json:"button,omitempty" binding:"gte=0,lte=3"`
}

// NavigateResponse 导航响应
type NavigateResponse struct {
	Started bool          `json:"started"`
	Status  slider.Status `json:"status"`
}

// ===== 动画控制相关模型 =====

// SpeedRequest 速度调整请求，factor > 1 变慢
type SpeedRequest struct {
	Factor float64 `json:"factor" binding:"required,gt=0"`
}

// AnimationStatusResponse 动画状态响应
type AnimationStatusResponse struct {
	Paused bool          `json:"paused"`
	Status slider.Status `json:"status"`
}

// ===== 系统管理相关模型 =====

// SystemStatusResponse 系统状态响应
type SystemStatusResponse struct {
	TotalSliders  int           `json:"totalSliders"`
	ActiveSliders int           `json:"activeSliders"`
	Frames        uint64        `json:"frames"`
	FrameInterval time.Duration `json:"frameInterval"`
	Uptime        time.Duration `json:"uptime"`
	Version       string        `json:"version"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

func button(b int) slider.Button {
	if b == 0 {
		return slider.ButtonPrimary
	}
	return slider.Button(b)
}
