// Package render 提供一个内存中的渲染层，记录轮播的可视状态并按帧推送快照。
package render

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"carousel/slider"
)

var (
	// ErrAlreadyMounted 场景只能挂载一个轮播
	ErrAlreadyMounted = errors.New("场景已挂载轮播")

	// ErrClosed 场景已关闭
	ErrClosed = errors.New("场景已关闭")
)

// Placement 容器中的内容及其居中偏移
type Placement struct {
	ID     string       `json:"id"`
	Offset slider.Point `json:"offset"`
}

// Snapshot 场景的可视状态
type Snapshot struct {
	Seq       uint64        `json:"seq"`
	Layout    slider.Layout `json:"layout"`
	Offset    float64       `json:"offset"`
	Current   *Placement    `json:"current,omitempty"`
	Next      *Placement    `json:"next,omitempty"`
	NextEdge  string        `json:"nextEdge"`
	Indicator int           `json:"indicator"`
	Visible   []string      `json:"visible"`
}

// Scene 实现 slider.Surface。写操作来自帧循环，读取和订阅可以来自任意 goroutine。
type Scene struct {
	mu      sync.RWMutex
	snap    Snapshot
	mounted bool
	closed  bool
	dirty   bool
	visible map[string]bool

	subs    map[int]chan Snapshot
	nextSub int
}

func NewScene() *Scene {
	return &Scene{
		visible: make(map[string]bool),
		subs:    make(map[int]chan Snapshot),
	}
}

// idOf 返回内容的标识
func idOf(h slider.Handle) string {
	if b, ok := h.(*Block); ok {
		return b.ID
	}
	return fmt.Sprintf("%p", h)
}

func (s *Scene) Mount(layout slider.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.mounted {
		return ErrAlreadyMounted
	}
	s.mounted = true
	s.snap.Layout = layout
	s.dirty = true
	return nil
}

func (s *Scene) Hide(h slider.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[idOf(h)] = false
	s.dirty = true
}

// Fill 把内容移入容器。内容如果在另一个容器中，会先从那里移出。
func (s *Scene) Fill(slot slider.Slot, h slider.Handle, offset slider.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := idOf(h)
	target, other := &s.snap.Current, &s.snap.Next
	if slot == slider.SlotNext {
		target, other = other, target
	}
	if *other != nil && (*other).ID == id {
		*other = nil
	}
	// 容器原有的内容被移出页面
	if *target != nil && (*target).ID != id {
		s.visible[(*target).ID] = false
	}
	*target = &Placement{ID: id, Offset: offset}
	s.visible[id] = true
	s.dirty = true
}

func (s *Scene) PlaceNext(edge slider.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.NextEdge = edge.String()
	s.dirty = true
}

func (s *Scene) SetOffset(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Offset = x
	s.dirty = true
}

func (s *Scene) MarkIndicator(_, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Indicator = to
	s.dirty = true
}

// Snapshot 返回当前状态的副本
func (s *Scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *Scene) copyLocked() Snapshot {
	snap := s.snap
	if snap.Current != nil {
		c := *snap.Current
		snap.Current = &c
	}
	if snap.Next != nil {
		n := *snap.Next
		snap.Next = &n
	}
	snap.Layout.Offsets = slices.Clone(snap.Layout.Offsets)
	snap.Visible = make([]string, 0, len(s.visible))
	for id, v := range s.visible {
		if v {
			snap.Visible = append(snap.Visible, id)
		}
	}
	slices.Sort(snap.Visible)
	return snap
}

// Subscribe 订阅快照推送。订阅者处理过慢时丢弃快照，不阻塞帧循环。
func (s *Scene) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers 返回订阅者数量
func (s *Scene) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Flush 有变化时推送一次快照，返回是否推送
func (s *Scene) Flush() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty || s.closed {
		return false
	}
	s.dirty = false
	s.snap.Seq++
	snap := s.copyLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	return true
}

// Close 关闭场景及所有订阅
func (s *Scene) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

var _ slider.Surface = (*Scene)(nil)
