// Package frame 提供逐帧调度：所有帧任务和外部投递的函数都在同一条逻辑时间线上执行。
package frame

import (
	"sync/atomic"
	"time"
)

// Task 每帧执行一次的任务，返回 false 表示不再需要下一帧
type Task func(now time.Time) bool

// Scheduler 定义了"请求下一帧"的能力
type Scheduler interface {
	// Now 返回调度器时钟的当前时间
	Now() time.Time
	// Repeat 注册一个从下一帧开始逐帧执行的任务
	Repeat(task Task) *Token
}

// Token 是重复任务的取消令牌
type Token struct{ cancelled atomic.Bool }

// Cancel 取消任务。当前帧已在执行的任务会执行完，之后不再调度。
func (t *Token) Cancel() {
	if t != nil {
		t.cancelled.Store(true)
	}
}

func (t *Token) Cancelled() bool { return t == nil || t.cancelled.Load() }
