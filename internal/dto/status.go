package dto

// ── 现况看板 DTO ──

// SeatResponse 座位布局元素及占用情况
type SeatResponse struct {
	ID        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Occupied  bool   `json:"occupied"`
	StudentID string `json:"student_id,omitempty"`
	Name      string `json:"name,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Remaining string `json:"remaining,omitempty"` // "1:05 남음" | "종료"
	Ended     bool   `json:"ended,omitempty"`
}

// StatusResponse 看板数据
type StatusResponse struct {
	Date          string                         `json:"date"`
	Seats         []SeatResponse                 `json:"seats"`
	OccupiedSeats int                            `json:"occupied_seats"`
	TotalSeats    int                            `json:"total_seats"`
	StudyRooms    []StudyRoomReservationResponse `json:"study_rooms"`
	Announcements string                         `json:"announcements"`
	LogoURL       string                         `json:"logo_url"`
}
