package slider_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"carousel/define"
	"carousel/frame"
	"carousel/slider"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panel 测试用内容
type panel struct {
	name string
	w, h float64
}

func (p *panel) Size() (float64, float64) { return p.w, p.h }

type fill struct {
	slot   slider.Slot
	name   string
	offset slider.Point
}

// fakeSurface 记录渲染层收到的所有操作
type fakeSurface struct {
	mountErr error
	layout   *slider.Layout
	hidden   []string
	fills    []fill
	edges    []slider.Edge
	offsets  []float64
	selected int
	marks    int
}

func (f *fakeSurface) Mount(layout slider.Layout) error {
	if f.mountErr != nil {
		return f.mountErr
	}
	f.layout = &layout
	return nil
}

func (f *fakeSurface) Hide(h slider.Handle) { f.hidden = append(f.hidden, h.(*panel).name) }

func (f *fakeSurface) Fill(slot slider.Slot, h slider.Handle, offset slider.Point) {
	f.fills = append(f.fills, fill{slot: slot, name: h.(*panel).name, offset: offset})
}

func (f *fakeSurface) PlaceNext(edge slider.Edge) { f.edges = append(f.edges, edge) }

func (f *fakeSurface) SetOffset(x float64) { f.offsets = append(f.offsets, x) }

func (f *fakeSurface) MarkIndicator(from, to int) {
	f.selected = to
	f.marks++
}

// nextFills 返回依次滑入的内容名称
func (f *fakeSurface) nextFills() []string {
	var names []string
	for _, fl := range f.fills {
		if fl.slot == slider.SlotNext {
			names = append(names, fl.name)
		}
	}
	return names
}

func (f *fakeSurface) lastOffset() float64 { return f.offsets[len(f.offsets)-1] }

func panels(n int) []slider.Handle {
	items := make([]slider.Handle, n)
	for i := range items {
		items[i] = &panel{name: string(rune('A' + i)), w: 100, h: 50}
	}
	return items
}

type harness struct {
	clock   *clock.Mock
	loop    *frame.Loop
	surface *fakeSurface
	slider  *slider.Slider
}

func newHarness(t *testing.T, items []slider.Handle, opts ...slider.Option) *harness {
	t.Helper()
	mock := clock.NewMock()
	loop := frame.NewLoop(frame.WithClock(mock))
	surface := &fakeSurface{}
	s, err := slider.New(items, surface, loop, opts...)
	require.NoError(t, err)
	return &harness{clock: mock, loop: loop, surface: surface, slider: s}
}

func (h *harness) step(d time.Duration) {
	h.clock.Add(d)
	h.loop.Frame()
}

// settle 以 1ms 一帧推进直到过渡结束，返回花费的时间
func (h *harness) settle(t *testing.T) time.Duration {
	t.Helper()
	var elapsed time.Duration
	for h.slider.Animating() {
		h.step(time.Millisecond)
		elapsed += time.Millisecond
		require.Less(t, elapsed, 10*time.Second, "transition never finished")
	}
	return elapsed
}

func TestNew_InvalidInput(t *testing.T) {
	loop := frame.NewLoop(frame.WithClock(clock.NewMock()))
	var typedNil *panel
	var nilSurface *fakeSurface

	tests := []struct {
		name    string
		items   []slider.Handle
		mount   slider.Surface
		wantErr error
	}{
		{"empty", nil, &fakeSurface{}, slider.ErrNoItems},
		{"nil mount", panels(2), nil, slider.ErrInvalidMount},
		{"typed nil mount", panels(2), nilSurface, slider.ErrInvalidMount},
		{"nil item", []slider.Handle{&panel{name: "A"}, nil}, &fakeSurface{}, slider.ErrInvalidItem},
		{"typed nil item", []slider.Handle{typedNil}, &fakeSurface{}, slider.ErrInvalidItem},
		{"negative size", []slider.Handle{&panel{name: "A", w: -1, h: 10}}, &fakeSurface{}, slider.ErrInvalidItem},
		{"mount fails", panels(2), &fakeSurface{mountErr: errors.New("detached")}, slider.ErrInvalidMount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := slider.New(tt.items, tt.mount, loop)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, s)

			if fs, ok := tt.mount.(*fakeSurface); ok && fs != nil {
				assert.Empty(t, fs.hidden, "no side effects")
				assert.Empty(t, fs.fills, "no side effects")
			}
		})
	}
}

func TestNew_NilSchedulerFails(t *testing.T) {
	s, err := slider.New(panels(2), &fakeSurface{}, nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestNilSlider_IsInert(t *testing.T) {
	var s *slider.Slider

	assert.False(t, s.GoTo(1))
	assert.False(t, s.Click(slider.ButtonPrimary, 1))
	assert.False(t, s.ClickPrev(slider.ButtonPrimary))
	assert.False(t, s.ClickNext(slider.ButtonPrimary))
	assert.Zero(t, s.Selected())
	assert.Zero(t, s.Len())
	assert.False(t, s.Animating())
	assert.Nil(t, s.Animation())
	assert.Equal(t, define.DIRECTION_FORWARD, s.Status().Direction)
}

func TestNew_LayoutAndInitialState(t *testing.T) {
	items := []slider.Handle{
		&panel{name: "A", w: 320, h: 40},
		&panel{name: "B", w: 120, h: 180},
		&panel{name: "C", w: 80, h: 60},
	}
	h := newHarness(t, items)

	layout := h.slider.Layout()
	assert.Equal(t, slider.Size{Width: 320, Height: 180}, layout.Box)
	assert.Equal(t, slider.Size{Width: 420, Height: 210}, layout.Outer)
	assert.Equal(t, 3, layout.Count)
	assert.Equal(t, []slider.Point{{X: 0, Y: 70}, {X: 100, Y: 0}, {X: 120, Y: 60}}, layout.Offsets)

	require.NotNil(t, h.surface.layout)
	assert.Equal(t, layout, *h.surface.layout)
	assert.Equal(t, []string{"A", "B", "C"}, h.surface.hidden)
	require.Len(t, h.surface.fills, 1)
	assert.Equal(t, fill{slot: slider.SlotCurrent, name: "A", offset: slider.Point{X: 0, Y: 70}}, h.surface.fills[0])
	assert.Equal(t, 0, h.surface.selected)

	assert.Equal(t, 0, h.slider.Selected())
	assert.False(t, h.slider.Animating())
	current, next := h.slider.Containers()
	assert.Equal(t, 0, current)
	assert.Equal(t, -1, next)
}

func TestNew_MinimumBoxSize(t *testing.T) {
	h := newHarness(t, panels(2))
	assert.Equal(t, slider.Size{Width: slider.MinWidth, Height: slider.MinHeight}, h.slider.Layout().Box)

	h = newHarness(t, panels(2), slider.WithMinSize(50, 20))
	assert.Equal(t, slider.Size{Width: 100, Height: 50}, h.slider.Layout().Box)
}

func TestNew_TruncatesToMaxItems(t *testing.T) {
	items := make([]slider.Handle, 0, 11)
	for i := range 11 {
		items = append(items, &panel{name: fmt.Sprint(i), w: 10, h: 10})
	}
	h := newHarness(t, items)

	assert.Equal(t, slider.MaxItems, h.slider.Len())
	assert.Len(t, h.surface.hidden, slider.MaxItems)
	assert.False(t, h.slider.GoTo(10))
}

func TestGoTo_SameTargetIsNoop(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for sel := 0; sel < n; sel++ {
			t.Run(fmt.Sprintf("n=%d/sel=%d", n, sel), func(t *testing.T) {
				h := newHarness(t, panels(n))
				if sel != 0 {
					require.True(t, h.slider.GoTo(sel))
					h.settle(t)
				}
				fills, marks := len(h.surface.fills), h.surface.marks
				before := h.slider.Status()

				assert.False(t, h.slider.GoTo(sel))
				assert.Equal(t, before, h.slider.Status())
				assert.Len(t, h.surface.fills, fills)
				assert.Equal(t, marks, h.surface.marks)
				assert.Zero(t, h.loop.Pending())
			})
		}
	}
}

func TestGoTo_OutOfRangeIsIgnored(t *testing.T) {
	h := newHarness(t, panels(3))
	assert.False(t, h.slider.GoTo(-1))
	assert.False(t, h.slider.GoTo(3))
	assert.False(t, h.slider.Animating())
}

func TestGoTo_TieGoesForwardInTwoHalfSteps(t *testing.T) {
	h := newHarness(t, panels(4), slider.WithDuration(300*time.Millisecond))

	require.True(t, h.slider.GoTo(2))
	assert.True(t, h.slider.Animating())
	assert.Equal(t, define.DIRECTION_FORWARD, h.slider.Direction())
	assert.Equal(t, 2, h.slider.Pending())
	assert.Equal(t, 150*time.Millisecond, h.slider.Animation().Duration())
	assert.Equal(t, 2, h.surface.selected, "indicator updates before the transition ends")

	// 第一步中途，轮播向左移动半个宽度
	h.step(75 * time.Millisecond)
	assert.InDelta(t, -0.5*slider.MinWidth, h.surface.lastOffset(), 1e-9)
	current, next := h.slider.Containers()
	assert.Equal(t, 0, current)
	assert.Equal(t, 1, next)

	h.step(75 * time.Millisecond)
	assert.Equal(t, 1, h.slider.Pending())
	assert.True(t, h.slider.Animating())

	h.step(150 * time.Millisecond)
	assert.False(t, h.slider.Animating())
	assert.Equal(t, 2, h.slider.Selected())
	assert.Equal(t, []string{"B", "C"}, h.surface.nextFills())
	assert.Equal(t, []slider.Edge{slider.EdgeRight, slider.EdgeRight}, h.surface.edges)
	assert.Equal(t, 0.0, h.surface.lastOffset())

	current, next = h.slider.Containers()
	assert.Equal(t, 2, current)
	assert.Equal(t, -1, next)
	last := h.surface.fills[len(h.surface.fills)-1]
	assert.Equal(t, slider.SlotCurrent, last.slot)
	assert.Equal(t, "C", last.name)
}

func TestGoTo_ShorterBackwardPath(t *testing.T) {
	h := newHarness(t, panels(10))

	require.True(t, h.slider.GoTo(8))
	assert.Equal(t, define.DIRECTION_BACKWARD, h.slider.Direction())
	assert.Equal(t, 2, h.slider.Pending())

	h.step(50 * time.Millisecond)
	assert.Greater(t, h.surface.lastOffset(), 0.0, "backward slides to the right")

	h.settle(t)
	assert.Equal(t, 8, h.slider.Selected())
	assert.Equal(t, []string{"J", "I"}, h.surface.nextFills())
	assert.Equal(t, []slider.Edge{slider.EdgeLeft, slider.EdgeLeft}, h.surface.edges)
}

func TestGoTo_TotalTimeIsIndependentOfSteps(t *testing.T) {
	const total = 300 * time.Millisecond

	for n := 2; n <= slider.MaxItems; n++ {
		for target := 1; target < n; target++ {
			h := newHarness(t, panels(n), slider.WithDuration(total))
			steps := slider.Plan(0, target, n).Steps

			require.True(t, h.slider.GoTo(target))
			elapsed := h.settle(t)

			assert.Len(t, h.surface.nextFills(), steps, "n=%d target=%d", n, target)
			// 每步的结束最多落后两帧（帧对齐加浮点累计误差）
			assert.InDelta(t, float64(total), float64(elapsed), float64(time.Duration(2*steps)*time.Millisecond), "n=%d target=%d", n, target)
			assert.Equal(t, target, h.slider.Selected())
		}
	}
}

func TestGoTo_IgnoredWhileAnimating(t *testing.T) {
	h := newHarness(t, panels(5))

	require.True(t, h.slider.GoTo(1))
	h.step(10 * time.Millisecond)

	selected, marks := h.slider.Selected(), h.surface.marks
	assert.False(t, h.slider.GoTo(3))
	assert.False(t, h.slider.ClickNext(slider.ButtonPrimary))
	assert.Equal(t, selected, h.slider.Selected())
	assert.Equal(t, marks, h.surface.marks)
	assert.Equal(t, 1, h.surface.selected)

	h.settle(t)
	assert.Equal(t, 1, h.slider.Selected())
}

func TestGoTo_ContainersNeverShareItem(t *testing.T) {
	h := newHarness(t, panels(7))

	require.True(t, h.slider.GoTo(3))
	for h.slider.Animating() {
		current, next := h.slider.Containers()
		assert.NotEqual(t, current, next)
		h.step(5 * time.Millisecond)
	}
}

func TestClick_OnlyPrimaryButton(t *testing.T) {
	h := newHarness(t, panels(4))

	assert.False(t, h.slider.Click(slider.ButtonSecondary, 2))
	assert.False(t, h.slider.Click(slider.ButtonMiddle, 2))
	assert.False(t, h.slider.ClickNext(slider.ButtonSecondary))
	assert.False(t, h.slider.Animating())

	assert.True(t, h.slider.Click(slider.ButtonPrimary, 2))
	h.settle(t)
	assert.Equal(t, 2, h.slider.Selected())
}

func TestClickArrows_Wrap(t *testing.T) {
	h := newHarness(t, panels(4))

	require.True(t, h.slider.ClickPrev(slider.ButtonPrimary))
	assert.Equal(t, define.DIRECTION_BACKWARD, h.slider.Direction())
	h.settle(t)
	assert.Equal(t, 3, h.slider.Selected())

	require.True(t, h.slider.ClickNext(slider.ButtonPrimary))
	assert.Equal(t, define.DIRECTION_FORWARD, h.slider.Direction())
	h.settle(t)
	assert.Equal(t, 0, h.slider.Selected())
}

func TestSingleItem_NeverMoves(t *testing.T) {
	h := newHarness(t, panels(1))

	assert.False(t, h.slider.GoTo(0))
	assert.False(t, h.slider.ClickNext(slider.ButtonPrimary))
	assert.False(t, h.slider.ClickPrev(slider.ButtonPrimary))
	assert.False(t, h.slider.Animating())
	assert.Zero(t, h.loop.Pending())
}

func TestTwoItems_BothArrowsGoForward(t *testing.T) {
	h := newHarness(t, panels(2))

	require.True(t, h.slider.ClickPrev(slider.ButtonPrimary))
	assert.Equal(t, define.DIRECTION_FORWARD, h.slider.Direction())
	assert.Equal(t, 1, h.slider.Pending())
	h.settle(t)
	assert.Equal(t, 1, h.slider.Selected())

	require.True(t, h.slider.ClickNext(slider.ButtonPrimary))
	h.settle(t)
	assert.Equal(t, 0, h.slider.Selected())
	assert.Equal(t, []string{"B", "A"}, h.surface.nextFills())
}

func TestPauseDuringTransition(t *testing.T) {
	h := newHarness(t, panels(3), slider.WithDuration(100*time.Millisecond))

	require.True(t, h.slider.GoTo(1))
	h.step(50 * time.Millisecond)
	h.slider.Animation().Pause()
	h.step(time.Second)
	assert.True(t, h.slider.Animating())
	assert.InDelta(t, -0.5*slider.MinWidth, h.surface.lastOffset(), 1e-9)

	h.slider.Animation().Resume()
	h.step(50 * time.Millisecond)
	assert.False(t, h.slider.Animating())
}

func TestStatus(t *testing.T) {
	h := newHarness(t, panels(6), slider.WithDuration(600*time.Millisecond))

	require.True(t, h.slider.GoTo(3))
	h.step(100 * time.Millisecond)

	st := h.slider.Status()
	assert.Equal(t, 1, st.Selected, "index is committed at launch")
	assert.Equal(t, 6, st.Count)
	assert.Equal(t, 3, st.Pending)
	assert.True(t, st.Animating)
	assert.InDelta(t, 0.5, st.Progress, 1e-9)
	assert.Equal(t, 600*time.Millisecond, st.Duration)
	assert.Equal(t, 200*time.Millisecond, st.Step)
}

func TestNew_ZeroSizeItemsUseMinimumBox(t *testing.T) {
	items := []slider.Handle{&panel{name: "A"}, &panel{name: "B"}}
	h := newHarness(t, items)

	layout := h.slider.Layout()
	assert.Equal(t, slider.Size{Width: slider.MinWidth, Height: slider.MinHeight}, layout.Box)
	assert.Equal(t, slider.Point{X: slider.MinWidth / 2, Y: slider.MinHeight / 2}, layout.Offsets[0])
}

func TestStop_DoesNotChainRemainingSteps(t *testing.T) {
	h := newHarness(t, panels(6), slider.WithDuration(300*time.Millisecond))

	require.True(t, h.slider.GoTo(3))
	h.step(50 * time.Millisecond)
	h.slider.Stop()
	assert.Zero(t, h.slider.Pending())

	// 已排定的帧到达终点，只完成第一步
	h.step(60 * time.Millisecond)
	assert.False(t, h.slider.Animating())
	assert.Equal(t, 1, h.slider.Selected())
	assert.Equal(t, []string{"B"}, h.surface.nextFills())

	h.step(time.Second)
	assert.Equal(t, 1, h.slider.Selected())
	assert.Zero(t, h.loop.Pending())
}

func TestStop_IdleAndNil(t *testing.T) {
	h := newHarness(t, panels(3))
	h.slider.Stop()
	assert.False(t, h.slider.Animating())
	assert.True(t, h.slider.GoTo(1), "a stopped slider can navigate again")

	var s *slider.Slider
	assert.NotPanics(t, s.Stop)
}
