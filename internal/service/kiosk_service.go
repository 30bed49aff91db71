package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
	"github.com/madtung/sanghak2/pkg/queue"
)

// ── 入退室模块业务错误 ──

var (
	ErrDurationExceedsLimit = errors.New("학번으로 입실한 경우 예약 시간이 제한됩니다. 학생증 바코드를 이용해주세요")
)

// KioskService 键盘机入室/退室业务接口
type KioskService interface {
	Slots(ctx context.Context) *dto.SlotsResponse
	// Identify 按条码或学号识别学生
	Identify(ctx context.Context, req *dto.IdentifyRequest) (*dto.IdentifyResponse, error)
	CheckIn(ctx context.Context, req *dto.CheckInRequest) (*dto.SeatReservationResponse, error)
	// CheckoutBySeat 按座位退室（本人条码或管理员密码）
	CheckoutBySeat(ctx context.Context, seat string, req *dto.SeatCheckoutRequest) (*dto.CheckoutResponse, error)
	// Checkout 按条码退室
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type kioskService struct {
	ledger *Ledger
	events *EventSink
	logger *zap.Logger
}

// NewKioskService 创建 KioskService 实例
func NewKioskService(l *Ledger, events *EventSink, logger *zap.Logger) KioskService {
	return &kioskService{ledger: l, events: events, logger: logger}
}

// ────────────────────── Slots ──────────────────────

func (s *kioskService) Slots(_ context.Context) *dto.SlotsResponse {
	slots := s.ledger.Engine.Slots()
	now := s.ledger.Now()
	return &dto.SlotsResponse{
		Today:        now.Format(dateLayout),
		Slots:        slots.All(),
		StartSlots:   slots.StartSlots(),
		DefaultStart: slots.DefaultStart(now),
		SlotMinutes:  slots.SlotMinutes(),
	}
}

// ────────────────────── Identify ──────────────────────

func (s *kioskService) Identify(_ context.Context, req *dto.IdentifyRequest) (*dto.IdentifyResponse, error) {
	st := s.ledger.Store.Snapshot()
	student, method, err := st.Identify(strings.TrimSpace(req.Input))
	if err != nil {
		return nil, err
	}

	resp := &dto.IdentifyResponse{
		Student: toStudentResponse(student),
		Method:  string(method),
	}
	if method == ledger.LoginByStudentID {
		resp.MaxDurationUnits = s.ledger.Kiosk.StudentIDMaxUnits
	}
	if res, ok := st.FindActiveReservation(student.Barcode); ok {
		resp.ActiveSeat = res.SeatNumber.String()
	}
	return resp, nil
}

// ────────────────────── CheckIn ──────────────────────

func (s *kioskService) CheckIn(ctx context.Context, req *dto.CheckInRequest) (*dto.SeatReservationResponse, error) {
	var (
		student model.Student
		res     model.SeatReservation
	)
	now := s.ledger.Now()

	_, err := s.ledger.Store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		var (
			method ledger.LoginMethod
			err    error
		)
		student, method, err = st.Identify(strings.TrimSpace(req.Input))
		if err != nil {
			return st, err
		}
		if method == ledger.LoginByStudentID && req.DurationUnits > s.ledger.Kiosk.StudentIDMaxUnits {
			return st, ErrDurationExceedsLimit
		}

		var next ledger.State
		next, res, err = s.ledger.Engine.CheckIn(st, ledger.CheckIn{
			Seat:          model.SeatID(strings.TrimSpace(req.SeatNumber)),
			Student:       student,
			StartTime:     req.StartTime,
			DurationUnits: req.DurationUnits,
		}, now)
		return next, err
	}, func(ledger.State) {
		s.events.Emit(queue.LedgerEvent{
			Type:       queue.EventCheckIn,
			StudentID:  student.StudentID,
			Name:       student.Name,
			Seat:       res.SeatNumber.String(),
			StartTime:  res.StartTime,
			EndTime:    res.EndTime,
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.SeatReservationResponse{
		SeatNumber:    res.SeatNumber.String(),
		StudentID:     student.StudentID,
		Name:          student.Name,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		DurationHours: s.ledger.Engine.Slots().Hours(req.DurationUnits),
	}, nil
}

// ────────────────────── Checkout ──────────────────────

func (s *kioskService) CheckoutBySeat(ctx context.Context, seat string, req *dto.SeatCheckoutRequest) (*dto.CheckoutResponse, error) {
	now := s.ledger.Now()
	return s.checkout(ctx, now, func(st ledger.State) (ledger.State, ledger.Checkout, error) {
		return s.ledger.Engine.CheckoutBySeat(st, model.SeatID(strings.TrimSpace(seat)), req.Credential, now)
	})
}

func (s *kioskService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	now := s.ledger.Now()
	return s.checkout(ctx, now, func(st ledger.State) (ledger.State, ledger.Checkout, error) {
		return s.ledger.Engine.CheckoutByBarcode(st, strings.TrimSpace(req.Barcode), now)
	})
}

func (s *kioskService) checkout(
	ctx context.Context,
	now time.Time,
	op func(ledger.State) (ledger.State, ledger.Checkout, error),
) (*dto.CheckoutResponse, error) {
	var out ledger.Checkout
	_, err := s.ledger.Store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		var (
			next ledger.State
			err  error
		)
		next, out, err = op(st)
		return next, err
	}, func(ledger.State) {
		s.events.Emit(queue.LedgerEvent{
			Type:       queue.EventCheckOut,
			StudentID:  out.StudentID,
			Name:       out.Name,
			Seat:       out.Reservation.SeatNumber.String(),
			StartTime:  out.Reservation.StartTime,
			EndTime:    out.Reservation.EndTime,
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		SeatNumber: out.Reservation.SeatNumber.String(),
		StudentID:  out.StudentID,
		Name:       out.Name,
	}, nil
}

// ── 转换 ──

func toStudentResponse(st model.Student) dto.StudentResponse {
	return dto.StudentResponse{StudentID: st.StudentID, Name: st.Name, Barcode: st.Barcode}
}
