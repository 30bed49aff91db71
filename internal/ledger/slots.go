package ledger

import (
	"fmt"
	"math"
	"time"
)

// Slots 一天内的时间段边界序列（默认 09:00, 09:30, …, 22:00）。
// 预约区间为半开索引区间 [IndexOf(start), IndexOf(end))。
type Slots struct {
	seq       []string
	index     map[string]int
	closeHour int
	minutes   int
}

// NewSlots 按营业时间与间隔生成时间段序列。闭馆整点只贡献 HH:00 一个边界。
func NewSlots(openHour, closeHour, intervalMinutes int) Slots {
	var seq []string
	for h := openHour; h <= closeHour; h++ {
		for m := 0; m < 60; m += intervalMinutes {
			if h == closeHour && m > 0 {
				break
			}
			seq = append(seq, fmt.Sprintf("%02d:%02d", h, m))
		}
	}

	index := make(map[string]int, len(seq))
	for i, s := range seq {
		index[s] = i
	}
	return Slots{seq: seq, index: index, closeHour: closeHour, minutes: intervalMinutes}
}

// All 全部边界（含闭馆时刻）
func (s Slots) All() []string {
	out := make([]string, len(s.seq))
	copy(out, s.seq)
	return out
}

// StartSlots 可作为开始时间的边界（不含最后一个）
func (s Slots) StartSlots() []string {
	if len(s.seq) == 0 {
		return nil
	}
	out := make([]string, len(s.seq)-1)
	copy(out, s.seq[:len(s.seq)-1])
	return out
}

// Len 边界数量
func (s Slots) Len() int { return len(s.seq) }

// Last 最后一个边界（闭馆时刻）
func (s Slots) Last() string { return s.seq[len(s.seq)-1] }

// SlotMinutes 单个时间段的分钟数
func (s Slots) SlotMinutes() int { return s.minutes }

// Hours 将时长单位换算为小时（30 分钟间隔时 3 单位 = 1.5 小时）
func (s Slots) Hours(units int) float64 {
	return float64(units*s.minutes) / 60
}

// IndexOf 返回边界在序列中的位置
func (s Slots) IndexOf(slot string) (int, bool) {
	i, ok := s.index[slot]
	return i, ok
}

// IsStartSlot 是否为可预约的开始时间
func (s Slots) IsStartSlot(slot string) bool {
	i, ok := s.index[slot]
	return ok && i < len(s.seq)-1
}

// EndSlot 计算结束边界：seq[IndexOf(start)+units]。
// 超出序列时截断为最后一个边界而不是报错。
func (s Slots) EndSlot(start string, units int) (string, error) {
	i, ok := s.index[start]
	if !ok {
		return "", ErrInvalidSlot
	}
	if units <= 0 {
		return "", ErrInvalidDuration
	}
	if i+units >= len(s.seq) {
		return s.Last(), nil
	}
	return s.seq[i+units], nil
}

// Span 返回 [start, end) 的索引区间；任一边界未知时 ok=false
func (s Slots) Span(start, end string) (from, to int, ok bool) {
	from, ok1 := s.index[start]
	to, ok2 := s.index[end]
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return from, to, true
}

// DefaultStart 默认开始时间：当前时间向上取整到下一个半点后的第一个可预约边界。
// 没有可用边界时返回倒数第二个边界。
func (s Slots) DefaultStart(now time.Time) string {
	h, m := now.Hour(), 30
	if now.Minute() >= 30 {
		h, m = h+1, 0
	}
	if h > s.closeHour {
		h, m = s.closeHour, 0
	}
	candidate := fmt.Sprintf("%02d:%02d", h, m)

	for _, slot := range s.seq[:len(s.seq)-1] {
		if slot >= candidate {
			return slot
		}
	}
	if len(s.seq) >= 2 {
		return s.seq[len(s.seq)-2]
	}
	return s.seq[0]
}

// Remaining 剩余时间
type Remaining struct {
	Ended   bool
	Minutes int
}

// Hours 剩余整小时数
func (r Remaining) Hours() int { return r.Minutes / 60 }

// String 显示文本："1:05 남음" 或 "종료"
func (r Remaining) String() string {
	if r.Ended {
		return "종료"
	}
	return fmt.Sprintf("%d:%02d 남음", r.Minutes/60, r.Minutes%60)
}

// Remaining 以 now 所在日期的 end 时刻计算剩余时间，按分钟四舍五入。
func (s Slots) Remaining(now time.Time, end string) Remaining {
	var h, m int
	if _, err := fmt.Sscanf(end, "%d:%d", &h, &m); err != nil {
		return Remaining{Ended: true}
	}
	endAt := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !endAt.After(now) {
		return Remaining{Ended: true}
	}
	diff := int(math.Round(endAt.Sub(now).Minutes()))
	if diff <= 0 {
		return Remaining{Ended: true}
	}
	return Remaining{Minutes: diff}
}
