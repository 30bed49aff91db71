package model

// LogType 日志类别
type LogType string

const (
	LogTypeIndividual LogType = "individual" // 个人座位（入室/退室）
	LogTypeGroup      LogType = "group"      // 共同学习室预约
)

// LogAction 个人日志动作
type LogAction string

const (
	ActionCheckIn  LogAction = "check-in"
	ActionCheckOut LogAction = "check-out"
)

// Label 导出与界面显示用的韩文名称
func (a LogAction) Label() string {
	switch a {
	case ActionCheckIn:
		return "입실"
	case ActionCheckOut:
		return "퇴실"
	}
	return string(a)
}

// Log 台账日志（标签联合）。
// Type=individual 时使用 Action/Duration；Type=group 时使用 Reservation*/Attendees。
type Log struct {
	Type      LogType `json:"type"`
	Timestamp string  `json:"timestamp"`
	StudentID string  `json:"studentId"`
	Name      string  `json:"name"`

	Action   LogAction `json:"action,omitempty"`
	Duration *float64  `json:"duration,omitempty"` // 小时

	ReservationDate string `json:"reservationDate,omitempty"`
	ReservationTime string `json:"reservationTime,omitempty"`
	Attendees       int    `json:"attendees,omitempty"`
}

// NewCheckInLog 创建入室日志
func NewCheckInLog(timestamp string, s Student, hours float64) Log {
	return Log{
		Type:      LogTypeIndividual,
		Timestamp: timestamp,
		StudentID: s.StudentID,
		Name:      s.Name,
		Action:    ActionCheckIn,
		Duration:  &hours,
	}
}

// NewCheckOutLog 创建退室日志
func NewCheckOutLog(timestamp, studentID, name string) Log {
	return Log{
		Type:      LogTypeIndividual,
		Timestamp: timestamp,
		StudentID: studentID,
		Name:      name,
		Action:    ActionCheckOut,
	}
}

// NewGroupLog 创建学习室预约日志
func NewGroupLog(timestamp string, s Student, date, timeRange string, attendees int) Log {
	return Log{
		Type:            LogTypeGroup,
		Timestamp:       timestamp,
		StudentID:       s.StudentID,
		Name:            s.Name,
		ReservationDate: date,
		ReservationTime: timeRange,
		Attendees:       attendees,
	}
}
