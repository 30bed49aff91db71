package model

// 台账记录键。每个键对应一份完整的 JSON 快照，整体读写。
const (
	RecordStudents              = "students"
	RecordSeatReservations      = "seat_reservations"
	RecordStudyRoomReservations = "studyroom_reservations"
	RecordLogs                  = "logs"
	RecordAdminPassword         = "admin_password"
	RecordSeatLayout            = "seat_layout"
	RecordLogoURL               = "logo_url"
	RecordAnnouncements         = "announcements"
)

// RecordKeys 全部台账记录键（按加载顺序）
var RecordKeys = []string{
	RecordStudents,
	RecordSeatReservations,
	RecordStudyRoomReservations,
	RecordLogs,
	RecordAdminPassword,
	RecordSeatLayout,
	RecordLogoURL,
	RecordAnnouncements,
}

// Record 台账快照表，对应 ledger_records
type Record struct {
	Key   string `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value string `gorm:"type:text;not null"          json:"value"`
	VersionedModel
}

// TableName 指定表名
func (Record) TableName() string { return "ledger_records" }
