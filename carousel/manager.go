// Package carousel 管理共享同一帧循环的多个轮播实例。
package carousel

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"carousel/frame"
	"carousel/render"
	"carousel/slider"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Manager 管理轮播实例
type Manager struct {
	loop      *frame.Loop
	logger    *slog.Logger
	duration  time.Duration
	minWidth  float64
	minHeight float64

	instances map[string]*Instance
	mutex     sync.RWMutex
}

// Option 管理器配置项
type Option func(*Manager)

// WithDefaultDuration 设置新轮播的默认切换总时长
func WithDefaultDuration(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.duration = d
		}
	}
}

func WithMinSize(width, height float64) Option {
	return func(m *Manager) {
		m.minWidth = width
		m.minHeight = height
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewManager(loop *frame.Loop, opts ...Option) *Manager {
	m := &Manager{
		loop:      loop,
		logger:    slog.Default(),
		duration:  slider.DefaultDuration,
		minWidth:  slider.MinWidth,
		minHeight: slider.MinHeight,
		instances: make(map[string]*Instance),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Spec 创建轮播所需的参数
type Spec struct {
	Name     string
	Items    []*render.Block
	Duration time.Duration // 为 0 时使用默认值
}

const (
	createPending int32 = iota
	createDone
	createAbandoned
)

// Create 在帧循环上创建轮播并注册
func (m *Manager) Create(ctx context.Context, spec Spec) (*Instance, error) {
	duration := spec.Duration
	if duration <= 0 {
		duration = m.duration
	}

	id := uuid.NewString()
	name := spec.Name
	if name == "" {
		name = id[:8]
	}

	scene := render.NewScene()
	handles := lo.Map(spec.Items, func(b *render.Block, _ int) slider.Handle { return b })

	inst := &Instance{
		ID:    id,
		Name:  name,
		scene: scene,
		loop:  m.loop,
	}

	// 请求超时后闭包仍可能在帧循环上执行，由 state 决定归属：
	// 被放弃的创建不再构建，已构建的则在循环上自行拆除。
	var (
		state    atomic.Int32
		buildErr error
	)
	err := m.loop.Do(ctx, func() {
		if state.Load() == createAbandoned {
			return
		}
		s, err := slider.New(handles, scene, m.loop,
			slider.WithDuration(duration),
			slider.WithMinSize(m.minWidth, m.minHeight),
			slider.WithLogger(m.logger),
			slider.WithName(name),
		)
		if err != nil {
			buildErr = err
			state.CompareAndSwap(createPending, createDone)
			return
		}
		inst.slider = s
		inst.CreatedAt = m.loop.Now()
		inst.items = spec.Items[:s.Len()]
		scene.Flush()
		inst.flush = m.loop.Repeat(func(time.Time) bool {
			scene.Flush()
			return true
		})
		if !state.CompareAndSwap(createPending, createDone) {
			inst.close()
			m.logger.Warn("⚠️ 创建请求已超时，轮播已拆除", "id", id)
		}
	})
	if err != nil && state.CompareAndSwap(createPending, createAbandoned) {
		return nil, fmt.Errorf("创建轮播失败：%w", err)
	}
	// 走到这里说明闭包已执行完毕
	if buildErr != nil {
		return nil, buildErr
	}

	m.mutex.Lock()
	m.instances[id] = inst
	m.mutex.Unlock()

	m.logger.Info("✅ 轮播已创建", "id", id, "name", name, "items", len(inst.items), "duration", duration)
	return inst, nil
}

func (m *Manager) Get(id string) (*Instance, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	inst, exists := m.instances[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return inst, nil
}

// List 按创建时间返回所有轮播
func (m *Manager) List() []*Instance {
	m.mutex.RLock()
	list := lo.Values(m.instances)
	m.mutex.RUnlock()

	slices.SortFunc(list, func(a, b *Instance) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return list
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.instances)
}

// Remove 停止并移除轮播
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mutex.Lock()
	inst, exists := m.instances[id]
	if !exists {
		m.mutex.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.instances, id)
	m.mutex.Unlock()

	if err := m.loop.Do(ctx, inst.close); err != nil {
		// 帧循环已停止时直接关闭场景，释放订阅者
		inst.scene.Close()
		m.logger.Warn("⚠️ 轮播移除时帧循环不可用", "id", id, "error", err)
	}

	m.logger.Info("👋 轮播已移除", "id", id)
	return nil
}

// ActiveCount 返回正在过渡的轮播数量
func (m *Manager) ActiveCount(ctx context.Context) (int, error) {
	list := m.List()
	active := 0
	err := m.loop.Do(ctx, func() {
		for _, inst := range list {
			if inst.slider.Animating() {
				active++
			}
		}
	})
	return active, err
}

// Loop 返回共享的帧循环
func (m *Manager) Loop() *frame.Loop { return m.loop }

// Close 移除所有轮播，结束它们的快照订阅
func (m *Manager) Close(ctx context.Context) {
	for _, inst := range m.List() {
		_ = m.Remove(ctx, inst.ID)
	}
}
