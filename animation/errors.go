package animation

import "errors"

var (
	// ErrUnconfigured 未提供进度回调
	ErrUnconfigured = errors.New("动画未配置 OnUpdate 回调")

	// ErrNoScheduler 未提供帧调度器
	ErrNoScheduler = errors.New("动画缺少帧调度器")
)
