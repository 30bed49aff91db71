package model

// SeatReservation 个人座位预约（入室中）。退室时删除。
type SeatReservation struct {
	SeatNumber     SeatID `json:"seatNumber"`
	StudentBarcode string `json:"studentBarcode"`
	StartTime      string `json:"startTime"` // "HH:MM"
	EndTime        string `json:"endTime"`   // "HH:MM"
}

// StudyRoomReservation 共同学习室预约。创建后不再修改。
type StudyRoomReservation struct {
	ID             string `json:"id"`
	RoomNumber     int    `json:"roomNumber"`
	StudentBarcode string `json:"studentBarcode"`
	Date           string `json:"date"`      // YYYY-MM-DD
	StartTime      string `json:"startTime"` // HH:MM
	EndTime        string `json:"endTime"`   // HH:MM
	Attendees      int    `json:"attendees"`
}
