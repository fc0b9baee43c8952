package slider

import "carousel/define"

// Route 一次导航的方向和单步过渡次数
type Route struct {
	Direction define.Direction
	Steps     int
}

// Wrap 把索引折回 [0, n)
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// Plan 选择步数最少的方向，正反距离相等时取正向
func Plan(selected, target, n int) Route {
	fwd := Wrap(target-selected, n)
	bwd := Wrap(selected-target, n)

	if 2*fwd <= n {
		return Route{Direction: define.DIRECTION_FORWARD, Steps: fwd}
	}
	return Route{Direction: define.DIRECTION_BACKWARD, Steps: bwd}
}
