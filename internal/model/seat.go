package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SeatID 座位编号，既可能是数字（12）也可能是字符串（"7A"）。
// 反序列化时同时接受 JSON 字符串与数字；序列化时纯数字编号输出为数字。
type SeatID string

// UnmarshalJSON 接受字符串或数字
func (id *SeatID) UnmarshalJSON(data []byte) error {
	if id == nil {
		return fmt.Errorf("SeatID: nil receiver")
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*id = SeatID(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err == nil {
		*id = SeatID(num.String())
		return nil
	}

	return fmt.Errorf("SeatID: expected string or number, got %s", string(data))
}

// MarshalJSON 纯数字编号输出为 JSON 数字
func (id SeatID) MarshalJSON() ([]byte, error) {
	if id.isNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id SeatID) String() string { return string(id) }

func (id SeatID) isNumeric() bool {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SeatKind 布局元素类型
type SeatKind string

const (
	SeatKindSeat  SeatKind = "seat"
	SeatKindLabel SeatKind = "label"
)

// Seat 座位布局元素（座位或文字标签），坐标单位为像素
type Seat struct {
	ID     SeatID   `json:"id"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Type   SeatKind `json:"type"`
	Text   string   `json:"text,omitempty"`
}
