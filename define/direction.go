package define

// Direction 轮播滑动方向
type Direction int

const (
	DIRECTION_FORWARD  Direction = 1  // 索引递增，内容向左滑出
	DIRECTION_BACKWARD Direction = -1 // 索引递减，内容向右滑出
)

// Sign 返回方向对应的符号，用于计算偏移
func (d Direction) Sign() float64 {
	if d == DIRECTION_BACKWARD {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == DIRECTION_BACKWARD {
		return "backward"
	}
	return "forward"
}

// DirectionFromString 解析方向字符串，无法识别时返回正向
func DirectionFromString(s string) Direction {
	if s == "backward" {
		return DIRECTION_BACKWARD
	}
	return DIRECTION_FORWARD
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	*d = DirectionFromString(string(b))
	return nil
}
