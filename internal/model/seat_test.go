package model

import (
	"encoding/json"
	"testing"
)

func TestSeatID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want SeatID
	}{
		{`12`, "12"},
		{`"7A"`, "7A"},
		{`" 5 "`, "5"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id SeatID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Fatalf("解析 %s 失败: %v", tt.in, err)
		}
		if id != tt.want {
			t.Errorf("解析 %s 期望 %q，实际 %q", tt.in, tt.want, id)
		}
	}

	var id SeatID
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Error("布尔值应解析失败")
	}
}

func TestSeatID_MarshalJSON(t *testing.T) {
	res := []SeatReservation{
		{SeatNumber: "12", StudentBarcode: "B1", StartTime: "09:00", EndTime: "10:00"},
		{SeatNumber: "7A", StudentBarcode: "B2", StartTime: "09:00", EndTime: "10:00"},
		{SeatNumber: "05", StudentBarcode: "B3", StartTime: "09:00", EndTime: "10:00"},
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if _, ok := raw[0]["seatNumber"].(float64); !ok {
		t.Errorf("纯数字编号应输出为数字，实际 %T", raw[0]["seatNumber"])
	}
	if v, ok := raw[1]["seatNumber"].(string); !ok || v != "7A" {
		t.Errorf("7A 应输出为字符串，实际 %v", raw[1]["seatNumber"])
	}
	if _, ok := raw[2]["seatNumber"].(string); !ok {
		t.Error("前导零编号应保持字符串")
	}
}
