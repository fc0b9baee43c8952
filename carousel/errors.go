package carousel

import "errors"

var (
	// ErrNotFound 轮播不存在
	ErrNotFound = errors.New("轮播不存在")

	// ErrIndexOutOfRange 目标索引越界
	ErrIndexOutOfRange = errors.New("目标索引越界")

	// ErrInvalidFactor 速度系数必须为正数
	ErrInvalidFactor = errors.New("速度系数必须为正数")
)
