// Package slider 实现轮播：两个轮换的显示容器，按最少步数方向逐步滑动到目标内容。
//
// 轮播只维护状态，具体的显示由 Surface 完成；帧推进由共享的 animation.Animation 驱动。
// 所有方法都必须在同一个调度时间线上调用。
package slider

import (
	"fmt"
	"log/slog"
	"time"

	"carousel/animation"
	"carousel/define"
	"carousel/frame"
)

const (
	// MaxItems 轮播最多支持的内容数量，多余的会被截断
	MaxItems = 10
	// DefaultDuration 一次导航的默认总时长
	DefaultDuration = 300 * time.Millisecond
)

// Slider 轮播控制器
type Slider struct {
	items    []Handle
	layout   Layout
	surface  Surface
	anim     *animation.Animation
	logger   *slog.Logger
	duration time.Duration

	selected  int
	direction define.Direction
	pending   int  // 剩余的单步过渡次数
	animating bool // 过渡锁

	current int // 当前容器中的内容索引
	next    int // 下一个容器中的内容索引，空时为 -1
}

// Status 轮播状态快照
type Status struct {
	Selected  int              `json:"selected"`
	Count     int              `json:"count"`
	Direction define.Direction `json:"direction"`
	Pending   int              `json:"pending"`
	Animating bool             `json:"animating"`
	Progress  float64          `json:"progress"`
	Duration  time.Duration    `json:"duration"`
	Step      time.Duration    `json:"step"` // 当前步的时长
	Layout    Layout           `json:"layout"`
}

// New 创建轮播。输入无效时记录诊断信息并返回错误，不会对 mount 产生任何副作用；
// 返回的 nil *Slider 可以安全调用，所有操作均为空操作。
func New(items []Handle, mount Surface, sched frame.Scheduler, opts ...Option) (*Slider, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("slider", o.name)

	s, err := build(items, mount, sched, o, logger)
	if err != nil {
		logger.Warn("⚠️ 创建轮播失败，未做任何操作", "error", err)
		return nil, err
	}
	return s, nil
}

func build(items []Handle, mount Surface, sched frame.Scheduler, o options, logger *slog.Logger) (*Slider, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if isNil(mount) {
		return nil, ErrInvalidMount
	}
	if len(items) > MaxItems {
		logger.Info("ℹ️ 内容数量超过上限，已截断", "count", len(items), "max", MaxItems)
		items = items[:MaxItems]
	}
	if err := checkItems(items); err != nil {
		return nil, err
	}

	s := &Slider{
		items:     append([]Handle(nil), items...),
		layout:    computeLayout(items, o.minWidth, o.minHeight),
		surface:   mount,
		logger:    logger,
		duration:  o.duration,
		direction: define.DIRECTION_FORWARD,
		next:      -1,
	}

	anim, err := animation.New(sched, animation.Funcs{
		Update: s.onUpdate,
		Finish: s.onFinish,
	}, animation.WithDuration(o.duration), animation.WithLogger(logger), animation.WithName(o.name))
	if err != nil {
		return nil, err
	}
	s.anim = anim

	if err := mount.Mount(s.layout); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMount, err)
	}

	for _, h := range s.items {
		mount.Hide(h)
	}
	s.fill(SlotCurrent, 0)
	s.current = 0
	mount.MarkIndicator(0, 0)

	logger.Debug("✅ 轮播已创建", "count", len(s.items), "box", s.layout.Box)
	return s, nil
}

// GoTo 导航到 target。target 等于当前索引、正在过渡或越界时不做任何事并返回 false。
func (s *Slider) GoTo(target int) bool {
	if s == nil {
		return false
	}
	n := len(s.items)
	if target < 0 || target >= n {
		s.logger.Debug("忽略越界的导航请求", "target", target, "count", n)
		return false
	}
	if target == s.selected || s.animating {
		return false
	}

	s.animating = true
	route := Plan(s.selected, target, n)
	s.direction = route.Direction

	// 指示器立即更新，不等待过渡完成
	s.surface.MarkIndicator(s.selected, target)

	// 多步过渡的总时长保持不变
	s.anim.SetDuration(s.duration / time.Duration(route.Steps))
	s.pending = route.Steps

	s.logger.Debug("▶️ 开始切换", "from", s.selected, "to", target, "direction", route.Direction, "steps", route.Steps)
	s.launch()
	return true
}

// Click 处理指示器点击，只响应主按键
func (s *Slider) Click(button Button, target int) bool {
	if s == nil || button != ButtonPrimary {
		return false
	}
	return s.GoTo(target)
}

// ClickPrev 处理左侧按钮点击
func (s *Slider) ClickPrev(button Button) bool {
	if s == nil {
		return false
	}
	return s.Click(button, Wrap(s.selected-1, len(s.items)))
}

// ClickNext 处理右侧按钮点击
func (s *Slider) ClickNext(button Button) bool {
	if s == nil {
		return false
	}
	return s.Click(button, Wrap(s.selected+1, len(s.items)))
}

// Stop 中止导航：取消动画且不再衔接剩余步数。
// 已排定的最后一帧若到达终点，仍会完成当前这一步并释放过渡锁。
func (s *Slider) Stop() {
	if s == nil {
		return
	}
	s.pending = 0
	s.anim.Cancel()
}

// launch 启动一次单步过渡
func (s *Slider) launch() {
	next := Wrap(s.selected+int(s.direction), len(s.items))
	s.fill(SlotNext, next)
	s.surface.PlaceNext(Edge(s.direction))
	s.next = next

	// 索引在过渡开始时即提交，表示正在滑入的目标
	s.selected = next
	s.anim.Run()
}

func (s *Slider) fill(slot Slot, index int) {
	s.surface.Fill(slot, s.items[index], s.layout.Offsets[index])
}

func (s *Slider) onUpdate(progress float64) {
	s.surface.SetOffset(-s.direction.Sign() * progress * s.layout.Box.Width)
}

func (s *Slider) onFinish() {
	// 归零，避免浮点误差累积
	s.surface.SetOffset(0)
	s.fill(SlotCurrent, s.selected)
	s.current = s.selected
	s.next = -1

	if s.pending > 0 {
		s.pending--
	}
	if s.pending > 0 {
		s.launch()
		return
	}
	s.animating = false
	s.logger.Debug("✅ 切换完成", "selected", s.selected)
}

func (s *Slider) Selected() int {
	if s == nil {
		return 0
	}
	return s.selected
}

func (s *Slider) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Slider) Animating() bool { return s != nil && s.animating }

func (s *Slider) Direction() define.Direction {
	if s == nil {
		return define.DIRECTION_FORWARD
	}
	return s.direction
}

func (s *Slider) Pending() int {
	if s == nil {
		return 0
	}
	return s.pending
}

func (s *Slider) Layout() Layout {
	if s == nil {
		return Layout{}
	}
	return s.layout
}

// Containers 返回两个容器中的内容索引，下一个容器为空时为 -1
func (s *Slider) Containers() (current, next int) {
	if s == nil {
		return -1, -1
	}
	return s.current, s.next
}

// Animation 返回轮播独占的动画，可用于暂停、恢复或调整速度
func (s *Slider) Animation() *animation.Animation {
	if s == nil {
		return nil
	}
	return s.anim
}

// Status 返回状态快照
func (s *Slider) Status() Status {
	if s == nil {
		return Status{Direction: define.DIRECTION_FORWARD}
	}
	return Status{
		Selected:  s.selected,
		Count:     len(s.items),
		Direction: s.direction,
		Pending:   s.pending,
		Animating: s.animating,
		Progress:  s.anim.Progress(),
		Duration:  s.duration,
		Step:      s.anim.Duration(),
		Layout:    s.layout,
	}
}
