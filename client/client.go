// Package client 是轮播服务 HTTP API 的客户端。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"carousel/api"
)

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("轮播服务返回错误：%d, %s", e.StatusCode, e.Message)
}

// envelope 与 define.ApiResponse 对应，data 延迟解码
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client 实现与轮播服务的 HTTP 通信
type Client struct {
	serviceURL string
	client     *http.Client
}

func New(serviceURL string) *Client {
	return &Client{
		serviceURL: serviceURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// WithHTTPClient 替换底层 http.Client，用于流式请求或测试
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.client = hc
	return c
}

func (c *Client) List(ctx context.Context) (api.SliderListResponse, error) {
	return call[api.SliderListResponse](ctx, c, http.MethodGet, "/sliders", nil)
}

func (c *Client) Create(ctx context.Context, req api.SliderCreateRequest) (api.SliderInfo, error) {
	return call[api.SliderInfo](ctx, c, http.MethodPost, "/sliders", req)
}

func (c *Client) Get(ctx context.Context, id string) (api.SliderInfo, error) {
	return call[api.SliderInfo](ctx, c, http.MethodGet, "/sliders/"+url.PathEscape(id), nil)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodDelete, "/sliders/"+url.PathEscape(id), nil)
	return err
}

// GoTo 点击指示器，button 为 0 时按主键处理
func (c *Client) GoTo(ctx context.Context, id string, index, button int) (api.NavigateResponse, error) {
	return call[api.NavigateResponse](ctx, c, http.MethodPost, "/sliders/"+url.PathEscape(id)+"/goto",
		api.GoToRequest{Index: &index, Button: button})
}

func (c *Client) Prev(ctx context.Context, id string, button int) (api.NavigateResponse, error) {
	return call[api.NavigateResponse](ctx, c, http.MethodPost, "/sliders/"+url.PathEscape(id)+"/prev",
		api.ArrowRequest{Button: button})
}

func (c *Client) Next(ctx context.Context, id string, button int) (api.NavigateResponse, error) {
	return call[api.NavigateResponse](ctx, c, http.MethodPost, "/sliders/"+url.PathEscape(id)+"/next",
		api.ArrowRequest{Button: button})
}

func (c *Client) Pause(ctx context.Context, id string) (api.AnimationStatusResponse, error) {
	return call[api.AnimationStatusResponse](ctx, c, http.MethodPost, "/sliders/"+url.PathEscape(id)+"/animation/pause", nil)
}

func (c *Client) Resume(ctx context.Context, id string) (api.AnimationStatusResponse, error) {
	return call[api.AnimationStatusResponse](ctx, c, http.MethodPost, "/sliders/"+url.PathEscape(id)+"/animation/resume", nil)
}

func (c *Client) SetSpeed(ctx context.Context, id string, factor float64) (api.AnimationStatusResponse, error) {
	return call[api.AnimationStatusResponse](ctx, c, http.MethodPut, "/sliders/"+url.PathEscape(id)+"/animation/speed",
		api.SpeedRequest{Factor: factor})
}

func (c *Client) SystemStatus(ctx context.Context) (api.SystemStatusResponse, error) {
	return call[api.SystemStatusResponse](ctx, c, http.MethodGet, "/system/status", nil)
}

func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	return call[api.HealthResponse](ctx, c, http.MethodGet, "/system/health", nil)
}

// IsConnected 检查与轮播服务的连接状态
func (c *Client) IsConnected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	health, err := c.Health(ctx)
	return err == nil && health.Status == "healthy"
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return out, fmt.Errorf("序列化请求失败：%w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serviceURL+"/api/v1"+path, reader)
	if err != nil {
		return out, fmt.Errorf("创建 HTTP 请求失败：%w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("发送 HTTP 请求失败：%w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return out, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return out, fmt.Errorf("解析响应失败：%w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return out, &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return out, fmt.Errorf("解析响应数据失败：%w", err)
		}
	}
	return out, nil
}
