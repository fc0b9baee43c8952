package slider

import (
	"fmt"
	"math"
	"reflect"

	"github.com/samber/lo"
)

const (
	MinWidth        = 200 // 中央容器默认最小宽度
	MinHeight       = 100 // 中央容器默认最小高度
	ButtonWidth     = 50  // 两侧切换按钮宽度
	IndicatorHeight = 30  // 底部指示器高度
)

// checkItems 校验内容项，返回第一个不可渲染项的错误
func checkItems(items []Handle) error {
	for i, h := range items {
		if isNil(h) {
			return fmt.Errorf("%w: 第 %d 项为空", ErrInvalidItem, i)
		}
		w, ht := h.Size()
		if !validDimension(w) || !validDimension(ht) {
			return fmt.Errorf("%w: 第 %d 项尺寸无效 (%v x %v)", ErrInvalidItem, i, w, ht)
		}
	}
	return nil
}

func validDimension(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// isNil 同时识别 nil 接口和包装了 nil 指针的接口
func isNil(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// computeLayout 计算公共外框和每项的居中偏移
func computeLayout(items []Handle, minWidth, minHeight float64) Layout {
	sizes := lo.Map(items, func(h Handle, _ int) Size {
		w, ht := h.Size()
		return Size{Width: w, Height: ht}
	})

	box := Size{
		Width:  math.Max(minWidth, lo.Max(lo.Map(sizes, func(s Size, _ int) float64 { return s.Width }))),
		Height: math.Max(minHeight, lo.Max(lo.Map(sizes, func(s Size, _ int) float64 { return s.Height }))),
	}

	return Layout{
		Box: box,
		Outer: Size{
			Width:  box.Width + 2*ButtonWidth,
			Height: box.Height + IndicatorHeight,
		},
		Count: len(items),
		Offsets: lo.Map(sizes, func(s Size, _ int) Point {
			return Point{X: (box.Width - s.Width) / 2, Y: (box.Height - s.Height) / 2}
		}),
	}
}
