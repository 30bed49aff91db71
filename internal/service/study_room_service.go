package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
	"github.com/madtung/sanghak2/pkg/queue"
)

// ── 共同学习室模块业务错误 ──

var (
	ErrDateOutOfWindow  = errors.New("예약 가능한 날짜가 아닙니다 (오늘부터 7일 이내)")
	ErrInvalidAttendees = errors.New("이용 인원은 2명 이상 8명 이하여야 합니다")
)

const (
	minAttendees = 2
	maxAttendees = 8
)

// StudyRoomService 共同学习室预约业务接口
type StudyRoomService interface {
	Timetable(ctx context.Context, room int, date string) (*dto.TimetableResponse, error)
	// Availability 检查 [start, start+units) 是否空闲
	Availability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
	Create(ctx context.Context, req *dto.CreateStudyRoomReservationRequest) (*dto.StudyRoomReservationResponse, error)
	// List 指定日期（为空时为今天）的全部预约，按房间、开始时间排序
	List(ctx context.Context, date string) []dto.StudyRoomReservationResponse
}

type studyRoomService struct {
	ledger *Ledger
	events *EventSink
	logger *zap.Logger
}

// NewStudyRoomService 创建 StudyRoomService 实例
func NewStudyRoomService(l *Ledger, events *EventSink, logger *zap.Logger) StudyRoomService {
	return &studyRoomService{ledger: l, events: events, logger: logger}
}

func (s *studyRoomService) checkRoom(room int) error {
	if room < 1 || room > s.ledger.Engine.RoomCount() {
		return ledger.ErrRoomNotFound
	}
	return nil
}

func (s *studyRoomService) dateOrToday(date string) string {
	if date == "" {
		return s.ledger.Today()
	}
	return date
}

// ────────────────────── Timetable ──────────────────────

func (s *studyRoomService) Timetable(_ context.Context, room int, date string) (*dto.TimetableResponse, error) {
	if err := s.checkRoom(room); err != nil {
		return nil, err
	}
	date = s.dateOrToday(date)

	states := s.ledger.Engine.Timetable(s.ledger.Store.Snapshot(), room, date)
	slots := make([]dto.SlotStateResponse, len(states))
	for i, st := range states {
		slots[i] = dto.SlotStateResponse{Time: st.Time, Booked: st.Booked}
	}
	return &dto.TimetableResponse{Room: room, Date: date, Slots: slots}, nil
}

// ────────────────────── Availability ──────────────────────

func (s *studyRoomService) Availability(_ context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if err := s.checkRoom(req.Room); err != nil {
		return nil, err
	}
	slots := s.ledger.Engine.Slots()
	if !slots.IsStartSlot(req.StartTime) {
		return nil, ledger.ErrInvalidSlot
	}
	end, err := slots.EndSlot(req.StartTime, req.DurationUnits)
	if err != nil {
		return nil, err
	}

	taken := s.ledger.Engine.IsSlotReserved(s.ledger.Store.Snapshot(), req.Room, req.Date, req.StartTime, req.DurationUnits)
	return &dto.AvailabilityResponse{Available: !taken, EndTime: end}, nil
}

// ────────────────────── Create ──────────────────────

func (s *studyRoomService) Create(ctx context.Context, req *dto.CreateStudyRoomReservationRequest) (*dto.StudyRoomReservationResponse, error) {
	if req.Attendees < minAttendees || req.Attendees > maxAttendees {
		return nil, ErrInvalidAttendees
	}
	if !s.ledger.InBookingWindow(req.Date) {
		return nil, ErrDateOutOfWindow
	}

	var (
		student model.Student
		res     model.StudyRoomReservation
	)
	now := s.ledger.Now()

	_, err := s.ledger.Store.Mutate(ctx, func(st ledger.State) (ledger.State, error) {
		// 学习室预约只接受学生证条码
		var ok bool
		student, ok = st.FindStudentByBarcode(strings.TrimSpace(req.Barcode))
		if !ok {
			return st, ledger.ErrStudentNotFound
		}

		var (
			next ledger.State
			err  error
		)
		next, res, err = s.ledger.Engine.BookStudyRoom(st, ledger.RoomBooking{
			ID:            uuid.New().String(),
			Room:          req.Room,
			Date:          req.Date,
			StartTime:     req.StartTime,
			DurationUnits: req.DurationUnits,
			Student:       student,
			Attendees:     req.Attendees,
		}, now)
		return next, err
	}, func(ledger.State) {
		s.events.Emit(queue.LedgerEvent{
			Type:       queue.EventRoomBooked,
			StudentID:  student.StudentID,
			Name:       student.Name,
			Room:       res.RoomNumber,
			Date:       res.Date,
			StartTime:  res.StartTime,
			EndTime:    res.EndTime,
			Attendees:  res.Attendees,
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toStudyRoomReservationResponse(res, student, true)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *studyRoomService) List(_ context.Context, date string) []dto.StudyRoomReservationResponse {
	st := s.ledger.Store.Snapshot()
	return studyRoomResponses(st, st.RoomReservations(0, s.dateOrToday(date)))
}

// ── 转换 ──

func studyRoomResponses(st ledger.State, list []model.StudyRoomReservation) []dto.StudyRoomReservationResponse {
	out := make([]dto.StudyRoomReservationResponse, 0, len(list))
	for _, r := range list {
		student, ok := st.FindStudentByBarcode(r.StudentBarcode)
		out = append(out, toStudyRoomReservationResponse(r, student, ok))
	}
	return out
}

func toStudyRoomReservationResponse(r model.StudyRoomReservation, student model.Student, known bool) dto.StudyRoomReservationResponse {
	resp := dto.StudyRoomReservationResponse{
		ID:        r.ID,
		Room:      r.RoomNumber,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Attendees: r.Attendees,
	}
	if known {
		resp.StudentID = student.StudentID
		resp.Name = student.Name
	}
	return resp
}
