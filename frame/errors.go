package frame

import "errors"

var (
	// ErrLoopStopped 帧循环已经退出，不再接受任务
	ErrLoopStopped = errors.New("帧循环已停止")

	// ErrLoopRunning 帧循环已在运行
	ErrLoopRunning = errors.New("帧循环已在运行")
)
