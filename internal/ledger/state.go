package ledger

import (
	"sort"

	"github.com/madtung/sanghak2/internal/model"
)

// State 台账全量状态。
// 所有变更操作都返回新的 State，不在原切片上原地修改，
// 因此持有旧 State 的读方不会观察到中间状态。
type State struct {
	Students              []model.Student
	SeatReservations      []model.SeatReservation
	StudyRoomReservations []model.StudyRoomReservation
	Logs                  []model.Log // 新的在前
	AdminPassword         string
	SeatLayout            []model.Seat
	LogoURL               string
	Announcements         string
}

// FindStudentByBarcode 按条码查找学生
func (s State) FindStudentByBarcode(barcode string) (model.Student, bool) {
	for _, st := range s.Students {
		if st.Barcode == barcode {
			return st, true
		}
	}
	return model.Student{}, false
}

// FindStudentByStudentID 按学号查找学生
func (s State) FindStudentByStudentID(studentID string) (model.Student, bool) {
	for _, st := range s.Students {
		if st.StudentID == studentID {
			return st, true
		}
	}
	return model.Student{}, false
}

// FindActiveReservation 学生当前持有的座位预约
func (s State) FindActiveReservation(barcode string) (model.SeatReservation, bool) {
	for _, r := range s.SeatReservations {
		if r.StudentBarcode == barcode {
			return r, true
		}
	}
	return model.SeatReservation{}, false
}

// SeatOccupant 座位当前的预约
func (s State) SeatOccupant(seat model.SeatID) (model.SeatReservation, bool) {
	for _, r := range s.SeatReservations {
		if r.SeatNumber == seat {
			return r, true
		}
	}
	return model.SeatReservation{}, false
}

// FindSeat 布局中的元素
func (s State) FindSeat(id model.SeatID) (model.Seat, bool) {
	for _, seat := range s.SeatLayout {
		if seat.ID == id {
			return seat, true
		}
	}
	return model.Seat{}, false
}

// RoomReservations 指定日期的学习室预约，按房间、开始时间排序；room<=0 表示全部房间
func (s State) RoomReservations(room int, date string) []model.StudyRoomReservation {
	var out []model.StudyRoomReservation
	for _, r := range s.StudyRoomReservations {
		if r.Date != date {
			continue
		}
		if room > 0 && r.RoomNumber != room {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RoomNumber != out[j].RoomNumber {
			return out[i].RoomNumber < out[j].RoomNumber
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// LogsOf 指定类别的日志（保持新的在前）；typ 为空时返回全部
func (s State) LogsOf(typ model.LogType) []model.Log {
	if typ == "" {
		return s.Logs
	}
	var out []model.Log
	for _, l := range s.Logs {
		if l.Type == typ {
			out = append(out, l)
		}
	}
	return out
}

// ── 写时复制辅助 ──

func appendCopy[T any](src []T, items ...T) []T {
	out := make([]T, 0, len(src)+len(items))
	out = append(out, src...)
	return append(out, items...)
}

func removeFirst[T any](src []T, match func(T) bool) ([]T, bool) {
	for i, v := range src {
		if match(v) {
			out := make([]T, 0, len(src)-1)
			out = append(out, src[:i]...)
			return append(out, src[i+1:]...), true
		}
	}
	return src, false
}

func prependLog(logs []model.Log, l model.Log) []model.Log {
	out := make([]model.Log, 0, len(logs)+1)
	out = append(out, l)
	return append(out, logs...)
}
