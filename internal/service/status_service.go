package service

import (
	"context"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
)

// StatusService 现况看板
type StatusService interface {
	Status(ctx context.Context) *dto.StatusResponse
	Seats(ctx context.Context) []dto.SeatResponse
}

type statusService struct {
	ledger *Ledger
}

// NewStatusService 创建 StatusService 实例
func NewStatusService(l *Ledger) StatusService {
	return &statusService{ledger: l}
}

func (s *statusService) Status(_ context.Context) *dto.StatusResponse {
	st := s.ledger.Store.Snapshot()
	today := s.ledger.Today()

	seats := s.seats(st)
	resp := &dto.StatusResponse{
		Date:          today,
		Seats:         seats,
		StudyRooms:    studyRoomResponses(st, st.RoomReservations(0, today)),
		Announcements: st.Announcements,
		LogoURL:       st.LogoURL,
	}
	for _, seat := range seats {
		if seat.Type != string(model.SeatKindSeat) {
			continue
		}
		resp.TotalSeats++
		if seat.Occupied {
			resp.OccupiedSeats++
		}
	}
	return resp
}

func (s *statusService) Seats(_ context.Context) []dto.SeatResponse {
	return s.seats(s.ledger.Store.Snapshot())
}

func (s *statusService) seats(st ledger.State) []dto.SeatResponse {
	occ := s.ledger.Engine.Occupancies(st, s.ledger.Now())

	out := make([]dto.SeatResponse, 0, len(st.SeatLayout))
	for _, seat := range st.SeatLayout {
		item := dto.SeatResponse{
			ID:     seat.ID.String(),
			X:      seat.X,
			Y:      seat.Y,
			Width:  seat.Width,
			Height: seat.Height,
			Type:   string(seat.Type),
			Text:   seat.Text,
		}
		if o, ok := occ[seat.ID]; ok {
			item.Occupied = true
			item.StudentID = o.Student.StudentID
			item.Name = o.Student.Name
			item.EndTime = o.Reservation.EndTime
			item.Remaining = o.Remaining.String()
			item.Ended = o.Remaining.Ended
		}
		out = append(out, item)
	}
	return out
}
