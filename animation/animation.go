// Package animation 提供基于帧时钟的进度驱动器。
package animation

import (
	"fmt"
	"log/slog"
	"time"

	"carousel/frame"
)

// DefaultDuration 默认动画时长
const DefaultDuration = 1000 * time.Millisecond

// Animation 在 duration 时间内把进度从 0 推进到 1，每帧回调一次。
// 所有方法都应在调度器的时间线上调用。
type Animation struct {
	sched    frame.Scheduler
	behavior Behavior
	logger   *slog.Logger
	name     string

	duration time.Duration
	start    time.Time // 上一次累计进度的时间基线
	progress float64

	reversed  bool
	paused    bool
	cancelled bool
	cycled    bool

	token *frame.Token // 当前帧任务
}

// Option 动画配置项
type Option func(*Animation)

func WithDuration(d time.Duration) Option {
	return func(a *Animation) {
		if d > 0 {
			a.duration = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Animation) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithName 设置动画名称，仅用于日志
func WithName(name string) Option {
	return func(a *Animation) { a.name = name }
}

// New 创建动画。behavior 必须提供进度回调，否则立即返回 ErrUnconfigured。
func New(sched frame.Scheduler, behavior Behavior, opts ...Option) (*Animation, error) {
	if sched == nil {
		return nil, ErrNoScheduler
	}
	a := &Animation{
		sched:    sched,
		logger:   slog.Default(),
		name:     "animation",
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(a)
	}

	b, ok := bind(a, behavior)
	if !ok {
		a.logger.Warn("⚠️ 动画缺少 OnUpdate 回调", "animation", a.name)
		return nil, fmt.Errorf("%s: %w", a.name, ErrUnconfigured)
	}
	a.behavior = b
	return a, nil
}

// SetDuration 修改时长，只影响之后的推进速度，已累计的进度不变
func (a *Animation) SetDuration(d time.Duration) {
	if d <= 0 {
		a.logger.Warn("⚠️ 忽略非正数的动画时长", "animation", a.name, "duration", d)
		return
	}
	a.duration = d
}

func (a *Animation) Duration() time.Duration { return a.duration }

// Run 从 0 开始（重新）运行动画
func (a *Animation) Run() {
	a.token.Cancel()
	a.restart()
	a.token = a.sched.Repeat(a.tick)
}

// restart 重置时间基线和标志，并上报初始进度
func (a *Animation) restart() {
	a.start = a.sched.Now()
	a.paused = false
	a.cancelled = false
	a.onStart()
}

func (a *Animation) onStart() {
	a.progress = 0
	if a.reversed {
		a.behavior.OnUpdate(1)
	} else {
		a.behavior.OnUpdate(0)
	}
}

// Cancel 停止后续帧调度，不触发 OnFinish，进度停留在最后一帧
func (a *Animation) Cancel() { a.cancelled = true }

// Pause 暂停进度累计，帧仍继续调度
func (a *Animation) Pause() { a.paused = true }

func (a *Animation) Paused() bool { return a.paused }

// Resume 恢复累计，暂停期间的时间不计入进度
func (a *Animation) Resume() {
	a.start = a.sched.Now()
	a.paused = false
}

// Reverse 切换或设置反向标志。标志变化时镜像内部进度，使上报值保持连续。
func (a *Animation) Reverse(flag ...bool) {
	next := !a.reversed
	if len(flag) > 0 {
		next = flag[0]
	}
	if next != a.reversed {
		a.reversed = next
		a.progress = 1 - a.progress
	}
}

func (a *Animation) Reversed() bool { return a.reversed }

// Slow 将时长乘以 factor，factor > 1 变慢，< 1 变快
func (a *Animation) Slow(factor float64) {
	if factor <= 0 {
		a.logger.Warn("⚠️ 忽略非正数的减速系数", "animation", a.name, "factor", factor)
		return
	}
	a.duration = time.Duration(float64(a.duration) * factor)
}

// Cycle 切换或设置循环播放
func (a *Animation) Cycle(flag ...bool) {
	if len(flag) > 0 {
		a.cycled = flag[0]
		return
	}
	a.cycled = !a.cycled
}

func (a *Animation) Cycled() bool { return a.cycled }

// Progress 返回按反向标志调整后的进度
func (a *Animation) Progress() float64 { return a.adjusted(a.progress) }

// Running 表示当前是否有帧任务在调度
func (a *Animation) Running() bool { return !a.token.Cancelled() && !a.cancelled }

func (a *Animation) adjusted(p float64) float64 {
	if a.reversed {
		return 1 - p
	}
	return p
}

// reportFinal 默认的结束行为：上报最终进度
func (a *Animation) reportFinal() {
	if a.reversed {
		a.behavior.OnUpdate(0)
	} else {
		a.behavior.OnUpdate(1)
	}
}

// tick 是逐帧推进的核心，返回 false 时调度器不再执行它
func (a *Animation) tick(now time.Time) bool {
	if a.paused {
		return !a.cancelled
	}

	elapsed := now.Sub(a.start)
	if elapsed < 0 {
		elapsed = 0
	}
	a.progress += float64(elapsed) / float64(a.duration)
	a.start = now

	if a.progress >= 1 {
		a.progress = 1
		current := a.token
		a.behavior.OnFinish()
		if a.token != current {
			// OnFinish 中已重新 Run，新任务接管
			return false
		}
		if a.cycled && !a.cancelled {
			a.restart()
			return true
		}
		a.token.Cancel()
		return false
	}

	again := !a.cancelled
	a.behavior.OnUpdate(a.adjusted(a.progress))
	return again
}
