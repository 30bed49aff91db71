package ledger

import (
	"fmt"
	"time"
)

// Engine 台账规则：时间段模型、学习室数量。本身不持有状态，
// 所有操作接收当前 State 与时刻 now，返回新的 State。
type Engine struct {
	slots     Slots
	roomCount int
}

// NewEngine 创建台账规则引擎
func NewEngine(slots Slots, roomCount int) *Engine {
	return &Engine{slots: slots, roomCount: roomCount}
}

// Slots 时间段模型
func (e *Engine) Slots() Slots { return e.slots }

// RoomCount 学习室数量
func (e *Engine) RoomCount() int { return e.roomCount }

// FormatTimestamp 以 ko-KR 区域格式输出日志时间，如 "2026. 10. 16. 오후 3:04:05"
func FormatTimestamp(t time.Time) string {
	ampm := "오전"
	if t.Hour() >= 12 {
		ampm = "오후"
	}
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), ampm, h, t.Minute(), t.Second())
}
