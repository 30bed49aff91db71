package dto

// LogListRequest 日志列表查询参数
type LogListRequest struct {
	PaginationRequest
	Type string `form:"type" binding:"omitempty,oneof=individual group"`
}

// LogResponse 日志条目
type LogResponse struct {
	Type            string   `json:"type"`
	Timestamp       string   `json:"timestamp"`
	StudentID       string   `json:"student_id"`
	Name            string   `json:"name"`
	Action          string   `json:"action,omitempty"`
	Duration        *float64 `json:"duration,omitempty"`
	ReservationDate string   `json:"reservation_date,omitempty"`
	ReservationTime string   `json:"reservation_time,omitempty"`
	Attendees       int      `json:"attendees,omitempty"`
}
