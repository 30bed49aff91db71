package dto

// ── 共同学习室 DTO ──

// DateQuery 按日期查询
type DateQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// SlotStateResponse 时间表中的单个时间段
type SlotStateResponse struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

// TimetableResponse 房间时间表
type TimetableResponse struct {
	Room  int                 `json:"room"`
	Date  string              `json:"date"`
	Slots []SlotStateResponse `json:"slots"`
}

// AvailabilityRequest 空闲检查
type AvailabilityRequest struct {
	Room          int    `json:"room"           binding:"required,min=1"`
	Date          string `json:"date"           binding:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time"     binding:"required,len=5"`
	DurationUnits int    `json:"duration_units" binding:"required,min=1"`
}

// AvailabilityResponse 空闲检查结果
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	EndTime   string `json:"end_time"`
}

// CreateStudyRoomReservationRequest 创建学习室预约（仅限学生证条码）
type CreateStudyRoomReservationRequest struct {
	Room          int    `json:"room"           binding:"required,min=1"`
	Date          string `json:"date"           binding:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time"     binding:"required,len=5"`
	DurationUnits int    `json:"duration_units" binding:"required,min=1"`
	Barcode       string `json:"barcode"        binding:"required,max=64"`
	Attendees     int    `json:"attendees"      binding:"required,min=2,max=8"`
}

// StudyRoomReservationResponse 学习室预约
type StudyRoomReservationResponse struct {
	ID        string `json:"id"`
	Room      int    `json:"room"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Attendees int    `json:"attendees"`
	StudentID string `json:"student_id,omitempty"`
	Name      string `json:"name,omitempty"`
}
