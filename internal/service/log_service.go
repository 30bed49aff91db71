package service

import (
	"context"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/model"
)

// LogService 日志查询
type LogService interface {
	// List 新的在前，按类别过滤并分页
	List(ctx context.Context, req *dto.LogListRequest) ([]dto.LogResponse, int64)
}

type logService struct {
	ledger *Ledger
}

// NewLogService 创建 LogService 实例
func NewLogService(l *Ledger) LogService {
	return &logService{ledger: l}
}

func (s *logService) List(_ context.Context, req *dto.LogListRequest) ([]dto.LogResponse, int64) {
	logs := s.ledger.Store.Snapshot().LogsOf(model.LogType(req.Type))
	total := int64(len(logs))

	offset := req.GetOffset()
	if offset >= len(logs) {
		return []dto.LogResponse{}, total
	}
	end := offset + req.GetPageSize()
	if end > len(logs) {
		end = len(logs)
	}

	out := make([]dto.LogResponse, 0, end-offset)
	for _, l := range logs[offset:end] {
		out = append(out, dto.LogResponse{
			Type:            string(l.Type),
			Timestamp:       l.Timestamp,
			StudentID:       l.StudentID,
			Name:            l.Name,
			Action:          string(l.Action),
			Duration:        l.Duration,
			ReservationDate: l.ReservationDate,
			ReservationTime: l.ReservationTime,
			Attendees:       l.Attendees,
		})
	}
	return out, total
}
