package dto

// ── 键盘机（入室/退室）DTO ──

// SlotsResponse 时间段信息
type SlotsResponse struct {
	Today        string   `json:"today"`
	Slots        []string `json:"slots"`
	StartSlots   []string `json:"start_slots"`
	DefaultStart string   `json:"default_start"`
	SlotMinutes  int      `json:"slot_minutes"`
}

// IdentifyRequest 条码或学号识别
type IdentifyRequest struct {
	Input string `json:"input" binding:"required,max=64"`
}

// IdentifyResponse 识别结果
type IdentifyResponse struct {
	Student          StudentResponse `json:"student"`
	Method           string          `json:"method"`             // barcode | student_id
	MaxDurationUnits int             `json:"max_duration_units"` // 0 表示不限（截至闭馆）
	ActiveSeat       string          `json:"active_seat,omitempty"`
}

// CheckInRequest 入室请求
type CheckInRequest struct {
	Input         string `json:"input"          binding:"required,max=64"`
	SeatNumber    string `json:"seat_number"    binding:"required,max=16"`
	StartTime     string `json:"start_time"     binding:"required,len=5"`
	DurationUnits int    `json:"duration_units" binding:"required,min=1"`
}

// SeatReservationResponse 座位预约
type SeatReservationResponse struct {
	SeatNumber    string  `json:"seat_number"`
	StudentID     string  `json:"student_id"`
	Name          string  `json:"name"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
}

// SeatCheckoutRequest 按座位退室：本人条码或管理员密码
type SeatCheckoutRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// CheckoutRequest 按条码退室
type CheckoutRequest struct {
	Barcode string `json:"barcode" binding:"required,max=64"`
}

// CheckoutResponse 退室结果
type CheckoutResponse struct {
	SeatNumber string `json:"seat_number"`
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
}
