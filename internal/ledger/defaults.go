package ledger

import "github.com/madtung/sanghak2/internal/model"

const gridUnit = 50

// DefaultAnnouncements 初始公告
const DefaultAnnouncements = `<h2>📢 상학재 공지사항</h2><p>첫 방문을 환영합니다. 규칙을 잘 지켜주세요.</p><ul><li>정숙 유지</li><li>음식물 반입 금지</li><li>퇴실 시 자리 정리</li></ul>`

// DefaultLogoURL 初始 Logo（1x1 透明 PNG）
const DefaultLogoURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

type gridItem struct {
	id       string
	row, col int
	rowSpan  int
	colSpan  int
	kind     model.SeatKind
	text     string
}

func seatAt(id string, row, col int) gridItem {
	return gridItem{id: id, row: row, col: col, kind: model.SeatKindSeat}
}

var defaultGrid = []gridItem{
	// 第 1 行
	seatAt("49", 1, 1), seatAt("50", 1, 2), seatAt("51", 1, 3), seatAt("52", 1, 4), seatAt("53", 1, 5),
	seatAt("1", 1, 10), seatAt("2", 1, 11), seatAt("3", 1, 12), seatAt("4", 1, 13), seatAt("5", 1, 14),
	seatAt("6", 1, 15), seatAt("7A", 1, 16),
	// 第 2 行
	seatAt("7B", 2, 16),
	// 第 4 行
	seatAt("48", 4, 1), seatAt("44", 4, 2), seatAt("40", 4, 3), seatAt("36", 4, 4), seatAt("32", 4, 5),
	seatAt("28", 4, 8), seatAt("24", 4, 9), seatAt("20", 4, 10), seatAt("16", 4, 11), seatAt("8", 4, 15),
	// 第 5 行
	seatAt("47", 5, 1), seatAt("43", 5, 2), seatAt("39", 5, 3), seatAt("35", 5, 4), seatAt("31", 5, 5),
	seatAt("27", 5, 8), seatAt("23", 5, 9), seatAt("19", 5, 10), seatAt("15", 5, 11), seatAt("9", 5, 15),
	// 第 6 行
	seatAt("46", 6, 1), seatAt("42", 6, 2), seatAt("38", 6, 3), seatAt("34", 6, 4), seatAt("30", 6, 5),
	seatAt("26", 6, 8), seatAt("22", 6, 9), seatAt("18", 6, 10), seatAt("14", 6, 11), seatAt("10", 6, 15),
	// 第 7 行
	seatAt("45", 7, 1), seatAt("41", 7, 2), seatAt("37", 7, 3), seatAt("33", 7, 4), seatAt("29", 7, 5),
	seatAt("25", 7, 8), seatAt("21", 7, 9), seatAt("17", 7, 10), seatAt("13", 7, 11), seatAt("11", 7, 15),
	// 第 8 行
	seatAt("12", 8, 15),
	// 标签
	{id: "LABEL_SR1", row: 4, col: 6, rowSpan: 2, colSpan: 2, kind: model.SeatKindLabel, text: "공동 학습 1실"},
	{id: "LABEL_SR2", row: 6, col: 6, rowSpan: 2, colSpan: 2, kind: model.SeatKindLabel, text: "공동 학습 2실"},
	{id: "LABEL_T", row: 10, col: 6, rowSpan: 1, colSpan: 2, kind: model.SeatKindLabel, text: "교사 책상"},
}

// DefaultSeatLayout 内置默认布局：座位 1~53（7 号拆分为 7A/7B）+ 3 个标签
func DefaultSeatLayout() []model.Seat {
	out := make([]model.Seat, 0, len(defaultGrid))
	for _, g := range defaultGrid {
		rowSpan, colSpan := g.rowSpan, g.colSpan
		if rowSpan == 0 {
			rowSpan = 1
		}
		if colSpan == 0 {
			colSpan = 1
		}
		out = append(out, model.Seat{
			ID:     model.SeatID(g.id),
			X:      (g.col - 1) * gridUnit,
			Y:      (g.row - 1) * gridUnit,
			Width:  colSpan * gridUnit,
			Height: rowSpan * gridUnit,
			Type:   g.kind,
			Text:   g.text,
		})
	}
	return out
}

// Defaults 记录缺失或损坏时使用的初始状态
func Defaults(adminPassword string) State {
	return State{
		Students:              []model.Student{},
		SeatReservations:      []model.SeatReservation{},
		StudyRoomReservations: []model.StudyRoomReservation{},
		Logs:                  []model.Log{},
		AdminPassword:         adminPassword,
		SeatLayout:            DefaultSeatLayout(),
		LogoURL:               DefaultLogoURL,
		Announcements:         DefaultAnnouncements,
	}
}
