package frame

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// defaultInterval 默认帧间隔（约 60 fps）
const defaultInterval = time.Second / 60

// inboxSize 外部投递队列长度
const inboxSize = 64

type entry struct {
	task  Task
	token *Token
}

// Loop 帧循环。Run 在单个 goroutine 中依次处理投递函数和帧任务，
// 因此动画与轮播状态不需要额外加锁。
type Loop struct {
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex // 保护 tasks
	tasks []entry

	inbox   chan func()
	done    chan struct{} // Run 退出时关闭
	running atomic.Bool
	frames  atomic.Uint64
}

// Option 帧循环配置项
type Option func(*Loop)

// WithClock 替换时钟，测试中传入 clock.NewMock()
func WithClock(c clock.Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithInterval 设置帧间隔
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop 创建一个新的帧循环
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		clock:    clock.New(),
		interval: defaultInterval,
		logger:   slog.Default(),
		inbox:    make(chan func(), inboxSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Now() time.Time { return l.clock.Now() }

func (l *Loop) Interval() time.Duration { return l.interval }

// Frames 返回已执行的帧数
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Pending 返回等待下一帧且未被取消的任务数
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, e := range l.tasks {
		if !e.token.Cancelled() {
			n++
		}
	}
	return n
}

// Repeat 注册重复任务。在帧内注册的任务从下一帧开始执行。
func (l *Loop) Repeat(task Task) *Token {
	token := &Token{}
	l.mu.Lock()
	l.tasks = append(l.tasks, entry{task: task, token: token})
	l.mu.Unlock()
	return token
}

// Frame 以时钟当前时间执行一帧
func (l *Loop) Frame() {
	now := l.clock.Now()

	l.mu.Lock()
	batch := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	kept := make([]entry, 0, len(batch))
	for _, e := range batch {
		if e.token.Cancelled() {
			continue
		}
		if l.runTask(e.task, now) && !e.token.Cancelled() {
			kept = append(kept, e)
		}
	}
	l.frames.Add(1)

	l.mu.Lock()
	l.tasks = append(kept, l.tasks...)
	l.mu.Unlock()
}

// runTask 执行单个任务，任务 panic 时记录日志并丢弃该任务
func (l *Loop) runTask(task Task, now time.Time) (again bool) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("❌ 帧任务执行出错，已移除", "panic", fmt.Sprint(r))
			again = false
		}
	}()
	return task(now)
}

// Post 把函数投递到帧循环的时间线上异步执行
func (l *Loop) Post(fn func()) error {
	return l.post(context.Background(), fn)
}

func (l *Loop) post(ctx context.Context, fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}

	select {
	case l.inbox <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Do 把函数投递到帧循环并等待执行完成。
// 不能在帧循环自身的 goroutine 中调用，否则会死锁。
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.post(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// 循环退出前可能已经执行了 fn
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}

// Run 启动帧循环，直到 ctx 结束。一个 Loop 只能运行一次。
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(l.done)

	ticker := l.clock.Ticker(l.interval)
	defer ticker.Stop()

	l.logger.Info("▶️ 帧循环已启动", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("🛑 帧循环已停止", "frames", l.frames.Load())
			return nil
		case fn := <-l.inbox:
			l.invoke(fn)
		case <-ticker.C:
			l.Frame()
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("❌ 投递函数执行出错", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

var _ Scheduler = (*Loop)(nil)
