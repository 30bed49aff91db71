package ledger

import (
	"fmt"
	"time"

	"github.com/madtung/sanghak2/internal/model"
)

// IsSlotReserved 候选区间 [start, start+units) 是否与同一房间同一天的任一预约重叠。
// 比较的是时间段索引区间，部分重叠同样视为冲突。
func (e *Engine) IsSlotReserved(s State, room int, date, start string, units int) bool {
	from, ok := e.slots.IndexOf(start)
	if !ok || units <= 0 {
		return false
	}
	to := from + units
	if to > e.slots.Len() {
		to = e.slots.Len()
	}

	for _, r := range s.StudyRoomReservations {
		if r.RoomNumber != room || r.Date != date {
			continue
		}
		rFrom, rTo, ok := e.slots.Span(r.StartTime, r.EndTime)
		if !ok {
			continue
		}
		if max(from, rFrom) < min(to, rTo) {
			return true
		}
	}
	return false
}

// RoomBooking 学习室预约请求。ID 由调用方生成。
type RoomBooking struct {
	ID            string
	Room          int
	Date          string
	StartTime     string
	DurationUnits int
	Student       model.Student
	Attendees     int
}

// BookStudyRoom 插入前再次检查冲突，成功时追加共同日志
func (e *Engine) BookStudyRoom(s State, b RoomBooking, now time.Time) (State, model.StudyRoomReservation, error) {
	if b.Room < 1 || b.Room > e.roomCount {
		return s, model.StudyRoomReservation{}, ErrRoomNotFound
	}
	if !e.slots.IsStartSlot(b.StartTime) {
		return s, model.StudyRoomReservation{}, ErrInvalidSlot
	}
	if b.DurationUnits <= 0 {
		return s, model.StudyRoomReservation{}, ErrInvalidDuration
	}
	if e.IsSlotReserved(s, b.Room, b.Date, b.StartTime, b.DurationUnits) {
		return s, model.StudyRoomReservation{}, ErrRoomSlotTaken
	}

	end, err := e.slots.EndSlot(b.StartTime, b.DurationUnits)
	if err != nil {
		return s, model.StudyRoomReservation{}, err
	}

	res := model.StudyRoomReservation{
		ID:             b.ID,
		RoomNumber:     b.Room,
		StudentBarcode: b.Student.Barcode,
		Date:           b.Date,
		StartTime:      b.StartTime,
		EndTime:        end,
		Attendees:      b.Attendees,
	}

	next := s
	next.StudyRoomReservations = appendCopy(s.StudyRoomReservations, res)
	next.Logs = prependLog(s.Logs, model.NewGroupLog(
		FormatTimestamp(now), b.Student, b.Date,
		fmt.Sprintf("%s - %s", b.StartTime, end), b.Attendees,
	))
	return next, res, nil
}

// SlotState 时间表中的单个时间段
type SlotState struct {
	Time   string
	Booked bool
}

// Timetable 某房间某天每个边界的占用情况
func (e *Engine) Timetable(s State, room int, date string) []SlotState {
	booked := make(map[int]bool)
	for _, r := range s.RoomReservations(room, date) {
		from, to, ok := e.slots.Span(r.StartTime, r.EndTime)
		if !ok {
			continue
		}
		for i := from; i < to; i++ {
			booked[i] = true
		}
	}

	all := e.slots.All()
	out := make([]SlotState, len(all))
	for i, t := range all {
		out[i] = SlotState{Time: t, Booked: booked[i]}
	}
	return out
}
