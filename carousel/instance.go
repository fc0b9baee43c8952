package carousel

import (
	"context"
	"fmt"
	"time"

	"carousel/frame"
	"carousel/render"
	"carousel/slider"
)

// Instance 一个已创建的轮播及其渲染场景
type Instance struct {
	ID        string
	Name      string
	CreatedAt time.Time

	items  []*render.Block
	slider *slider.Slider
	scene  *render.Scene
	loop   *frame.Loop
	flush  *frame.Token // 每帧推送场景快照的任务
}

// Result 一次导航请求的结果
type Result struct {
	Started bool          `json:"started"`
	Status  slider.Status `json:"status"`
}

func (i *Instance) Scene() *render.Scene { return i.scene }

// Items 返回实际使用的内容（已截断）
func (i *Instance) Items() []*render.Block { return i.items }

// GoTo 在帧循环上处理一次指示器点击
func (i *Instance) GoTo(ctx context.Context, index int, button slider.Button) (Result, error) {
	if index < 0 || index >= len(i.items) {
		return Result{}, fmt.Errorf("%w: %d 不在 [0, %d) 范围内", ErrIndexOutOfRange, index, len(i.items))
	}
	return i.navigate(ctx, func() bool { return i.slider.Click(button, index) })
}

// Prev 在帧循环上处理一次左侧按钮点击
func (i *Instance) Prev(ctx context.Context, button slider.Button) (Result, error) {
	return i.navigate(ctx, func() bool { return i.slider.ClickPrev(button) })
}

// Next 在帧循环上处理一次右侧按钮点击
func (i *Instance) Next(ctx context.Context, button slider.Button) (Result, error) {
	return i.navigate(ctx, func() bool { return i.slider.ClickNext(button) })
}

func (i *Instance) navigate(ctx context.Context, click func() bool) (Result, error) {
	var res Result
	err := i.loop.Do(ctx, func() {
		res.Started = click()
		res.Status = i.slider.Status()
	})
	return res, err
}

// Status 返回轮播状态
func (i *Instance) Status(ctx context.Context) (slider.Status, error) {
	var st slider.Status
	err := i.loop.Do(ctx, func() { st = i.slider.Status() })
	return st, err
}

// Pause 暂停当前过渡
func (i *Instance) Pause(ctx context.Context) (slider.Status, error) {
	var st slider.Status
	err := i.loop.Do(ctx, func() {
		i.slider.Animation().Pause()
		st = i.slider.Status()
	})
	return st, err
}

// Resume 恢复被暂停的过渡
func (i *Instance) Resume(ctx context.Context) (slider.Status, error) {
	var st slider.Status
	err := i.loop.Do(ctx, func() {
		if i.slider.Animation().Paused() {
			i.slider.Animation().Resume()
		}
		st = i.slider.Status()
	})
	return st, err
}

// Slow 调整当前步的速度，factor > 1 变慢。下一次导航会重新按总时长分配每步时长。
func (i *Instance) Slow(ctx context.Context, factor float64) (slider.Status, error) {
	if factor <= 0 {
		return slider.Status{}, ErrInvalidFactor
	}
	var st slider.Status
	err := i.loop.Do(ctx, func() {
		i.slider.Animation().Slow(factor)
		st = i.slider.Status()
	})
	return st, err
}

// Paused 查询动画是否处于暂停状态
func (i *Instance) Paused(ctx context.Context) (bool, error) {
	var paused bool
	err := i.loop.Do(ctx, func() { paused = i.slider.Animation().Paused() })
	return paused, err
}

// close 停止动画和快照推送，必须在帧循环上调用
func (i *Instance) close() {
	i.slider.Stop()
	i.flush.Cancel()
	i.scene.Close()
}
