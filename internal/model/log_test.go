package model

import "testing"

func TestLogAction_Label(t *testing.T) {
	tests := []struct {
		action LogAction
		want   string
	}{
		{ActionCheckIn, "입실"},
		{ActionCheckOut, "퇴실"},
		{LogAction("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.action.Label(); got != tt.want {
			t.Errorf("%s 期望 %q，实际 %q", tt.action, tt.want, got)
		}
	}
}
