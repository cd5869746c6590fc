package game

import (
	"time"
)

// Timer 桌子定时器，由TableManager按tick驱动
type Timer struct {
	now         func() time.Time
	triggerTime time.Time
	callback    func()
}

// NewTimer 创建定时器，now为nil时使用系统时间
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Schedule 安排定时任务，覆盖之前未触发的任务
func (t *Timer) Schedule(delay time.Duration, callback func()) {
	t.triggerTime = t.now().Add(delay)
	t.callback = callback
}

// Cancel 取消定时任务
func (t *Timer) Cancel() {
	t.callback = nil
}

func (t *Timer) Pending() bool {
	return t.callback != nil
}

// OnTick 到时间则触发一次
func (t *Timer) OnTick() {
	if t.callback == nil {
		return
	}

	if !t.now().Before(t.triggerTime) {
		callback := t.callback
		t.callback = nil
		callback()
	}
}
