package slider

// Handle 是一个不透明的可渲染内容，只需报告自身尺寸
type Handle interface {
	Size() (width, height float64)
}

// Slot 两个轮换的显示容器
type Slot int

const (
	SlotCurrent Slot = iota // 当前完整显示的内容
	SlotNext                // 正在滑入的内容
)

func (s Slot) String() string {
	if s == SlotNext {
		return "next"
	}
	return "current"
}

// Edge 下一个容器在滑入前所处的位置
type Edge int

const (
	EdgeRight Edge = 1  // 右侧 100%，正向滑动时使用
	EdgeLeft  Edge = -1 // 左侧 -100%，反向滑动时使用
)

func (e Edge) String() string {
	if e == EdgeLeft {
		return "left"
	}
	return "right"
}

// Button 触发点击的指针按键
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonMiddle
	ButtonSecondary
)

// Point 二维坐标
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size 二维尺寸
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout 挂载时计算出的布局
type Layout struct {
	Box     Size    `json:"box"`     // 中央容器尺寸
	Outer   Size    `json:"outer"`   // 含两侧按钮与底部指示器的整体尺寸
	Count   int     `json:"count"`   // 内容数量，即指示器数量
	Offsets []Point `json:"offsets"` // 每个内容在中央容器中的居中偏移
}

// Surface 是渲染层：负责显示、隐藏、移动内容
type Surface interface {
	// Mount 创建两个显示容器、前后切换按钮和每个内容对应的指示器
	Mount(layout Layout) error
	// Hide 隐藏内容
	Hide(h Handle)
	// Fill 把内容放入容器并按偏移居中，同时使其可见
	Fill(slot Slot, h Handle, offset Point)
	// PlaceNext 把下一个容器移到滑入起点
	PlaceNext(edge Edge)
	// SetOffset 设置轮播的水平偏移
	SetOffset(x float64)
	// MarkIndicator 取消 from 的选中状态并选中 to
	MarkIndicator(from, to int)
}
