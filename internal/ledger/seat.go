package ledger

import (
	"time"

	"github.com/madtung/sanghak2/internal/model"
)

// LoginMethod 学生身份识别方式
type LoginMethod string

const (
	LoginByBarcode   LoginMethod = "barcode"
	LoginByStudentID LoginMethod = "student_id"
)

// Identify 先按条码、再按学号识别学生
func (s State) Identify(input string) (model.Student, LoginMethod, error) {
	if st, ok := s.FindStudentByBarcode(input); ok {
		return st, LoginByBarcode, nil
	}
	if st, ok := s.FindStudentByStudentID(input); ok {
		return st, LoginByStudentID, nil
	}
	return model.Student{}, "", ErrStudentNotFound
}

// CheckIn 入室请求
type CheckIn struct {
	Seat          model.SeatID
	Student       model.Student
	StartTime     string
	DurationUnits int
}

// CheckIn 校验并创建座位预约，同时追加入室日志。
// 校验与插入在同一步内完成：座位空闲、学生未持有其他座位。
func (e *Engine) CheckIn(s State, req CheckIn, now time.Time) (State, model.SeatReservation, error) {
	if req.DurationUnits <= 0 {
		return s, model.SeatReservation{}, ErrInvalidDuration
	}
	seat, ok := s.FindSeat(req.Seat)
	if !ok || seat.Type != model.SeatKindSeat {
		return s, model.SeatReservation{}, ErrSeatNotFound
	}
	if !e.slots.IsStartSlot(req.StartTime) {
		return s, model.SeatReservation{}, ErrInvalidSlot
	}
	if _, held := s.FindActiveReservation(req.Student.Barcode); held {
		return s, model.SeatReservation{}, ErrAlreadySeated
	}
	if _, taken := s.SeatOccupant(req.Seat); taken {
		return s, model.SeatReservation{}, ErrSeatOccupied
	}

	end, err := e.slots.EndSlot(req.StartTime, req.DurationUnits)
	if err != nil {
		return s, model.SeatReservation{}, err
	}

	res := model.SeatReservation{
		SeatNumber:     req.Seat,
		StudentBarcode: req.Student.Barcode,
		StartTime:      req.StartTime,
		EndTime:        end,
	}

	next := s
	next.SeatReservations = appendCopy(s.SeatReservations, res)
	next.Logs = prependLog(s.Logs, model.NewCheckInLog(FormatTimestamp(now), req.Student, e.slots.Hours(req.DurationUnits)))
	return next, res, nil
}

// Checkout 退室结果
type Checkout struct {
	Reservation model.SeatReservation
	StudentID   string
	Name        string
}

// CheckoutBySeat 按座位退室。credential 等于占用者条码或管理员密码（明文比较）时成功。
func (e *Engine) CheckoutBySeat(s State, seat model.SeatID, credential string, now time.Time) (State, Checkout, error) {
	res, ok := s.SeatOccupant(seat)
	if !ok {
		return s, Checkout{}, ErrReservationNotFound
	}
	if credential != res.StudentBarcode && credential != s.AdminPassword {
		return s, Checkout{}, ErrCheckoutDenied
	}
	return e.checkout(s, res, now)
}

// CheckoutByBarcode 按条码直接退室（忘记座位号时使用）
func (e *Engine) CheckoutByBarcode(s State, barcode string, now time.Time) (State, Checkout, error) {
	res, ok := s.FindActiveReservation(barcode)
	if !ok {
		return s, Checkout{}, ErrReservationNotFound
	}
	return e.checkout(s, res, now)
}

func (e *Engine) checkout(s State, res model.SeatReservation, now time.Time) (State, Checkout, error) {
	st, ok := s.FindStudentByBarcode(res.StudentBarcode)
	if !ok {
		st = unknownStudent(res.StudentBarcode)
	}
	out := Checkout{Reservation: res, StudentID: st.StudentID, Name: st.Name}

	next := s
	next.SeatReservations, _ = removeFirst(s.SeatReservations, func(r model.SeatReservation) bool {
		return r.SeatNumber == res.SeatNumber
	})
	next.Logs = prependLog(s.Logs, model.NewCheckOutLog(FormatTimestamp(now), out.StudentID, out.Name))
	return next, out, nil
}

// Occupancy 座位占用情况（用于现况看板）
type Occupancy struct {
	Reservation model.SeatReservation
	Student     model.Student
	Remaining   Remaining
}

// Occupancies 按座位编号索引的占用情况。
// 学生已从名册删除的预约仍算占用，学号与姓名显示为 N/A（与退室日志一致）。
func (e *Engine) Occupancies(s State, now time.Time) map[model.SeatID]Occupancy {
	out := make(map[model.SeatID]Occupancy, len(s.SeatReservations))
	for _, r := range s.SeatReservations {
		st, ok := s.FindStudentByBarcode(r.StudentBarcode)
		if !ok {
			st = unknownStudent(r.StudentBarcode)
		}
		out[r.SeatNumber] = Occupancy{
			Reservation: r,
			Student:     st,
			Remaining:   e.slots.Remaining(now, r.EndTime),
		}
	}
	return out
}

// unknownStudent 名册中已删除的学生
func unknownStudent(barcode string) model.Student {
	return model.Student{StudentID: "N/A", Name: "N/A", Barcode: barcode}
}
