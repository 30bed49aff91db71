package handler

import "github.com/madtung/sanghak2/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Kiosk     *KioskHandler
	StudyRoom *StudyRoomHandler
	Status    *StatusHandler
	Student   *StudentHandler
	Log       *LogHandler
	Settings  *SettingsHandler
	Export    *ExportHandler
	Auth      *AuthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Kiosk:     NewKioskHandler(svc.Kiosk),
		StudyRoom: NewStudyRoomHandler(svc.StudyRoom),
		Status:    NewStatusHandler(svc.Status),
		Student:   NewStudentHandler(svc.Student),
		Log:       NewLogHandler(svc.Log),
		Settings:  NewSettingsHandler(svc.Settings),
		Export:    NewExportHandler(svc.Export),
		Auth:      NewAuthHandler(svc.Auth),
	}
}
