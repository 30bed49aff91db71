package service

import (
	"go.uber.org/zap"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Kiosk     KioskService
	StudyRoom StudyRoomService
	Status    StatusService
	Student   StudentService
	Log       LogService
	Settings  SettingsService
	Export    ExportService
	Auth      AuthService

	Events *EventSink
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	l *Ledger,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	publisher EventPublisher,
	logger *zap.Logger,
) *Service {
	events := NewEventSink(publisher, logger)
	return &Service{
		Kiosk:     NewKioskService(l, events, logger),
		StudyRoom: NewStudyRoomService(l, events, logger),
		Status:    NewStatusService(l),
		Student:   NewStudentService(l, logger),
		Log:       NewLogService(l),
		Settings:  NewSettingsService(l, logger),
		Export:    NewExportService(l, logger),
		Auth:      NewAuthService(cfg, l, jwtMgr, blacklist, logger),
		Events:    events,
	}
}
