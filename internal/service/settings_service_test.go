package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
)

func TestSettingsService_ChangePassword(t *testing.T) {
	env := setupTestLedger()
	svc := NewSettingsService(env.ledger, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.ChangeAdminPasswordRequest
		want error
	}{
		{"过短", dto.ChangeAdminPasswordRequest{NewPassword: "123", ConfirmPassword: "123"}, ledger.ErrPasswordTooShort},
		{"不一致", dto.ChangeAdminPasswordRequest{NewPassword: "2468", ConfirmPassword: "2469"}, ledger.ErrPasswordMismatch},
		{"成功", dto.ChangeAdminPasswordRequest{NewPassword: "2468", ConfirmPassword: "2468"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ChangePassword(ctx, &tt.req); !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际 %v", tt.want, err)
			}
		})
	}

	if env.repo.value("admin_password") != `"2468"` {
		t.Errorf("新密码应已持久化，实际 %s", env.repo.value("admin_password"))
	}
}

func TestSettingsService_Layout(t *testing.T) {
	env := setupTestLedger()
	svc := NewSettingsService(env.ledger, zap.NewNop())
	ctx := context.Background()

	x, y := 123, 47
	moved, err := svc.MoveLayoutItem(ctx, "7A", &dto.MoveLayoutItemRequest{X: &x, Y: &y})
	if err != nil {
		t.Fatalf("MoveLayoutItem 应成功: %v", err)
	}
	if moved.X != 120 || moved.Y != 50 {
		t.Errorf("坐标应吸附到 10 的倍数，实际 (%d,%d)", moved.X, moved.Y)
	}
	if _, err := svc.MoveLayoutItem(ctx, "99", &dto.MoveLayoutItemRequest{X: &x, Y: &y}); !errors.Is(err, ledger.ErrLayoutItemNotFound) {
		t.Errorf("期望 ErrLayoutItemNotFound，实际 %v", err)
	}

	layout, err := svc.ResetLayout(ctx)
	if err != nil {
		t.Fatalf("ResetLayout 应成功: %v", err)
	}
	for _, seat := range layout {
		if seat.ID == "7A" && seat.X == 120 {
			t.Error("重置后 7A 应回到默认位置")
		}
	}
	if len(svc.Layout(ctx)) != 57 {
		t.Errorf("默认布局应有 57 项，实际 %d", len(svc.Layout(ctx)))
	}
}

func TestSettingsService_AnnouncementsAndLogo(t *testing.T) {
	env := setupTestLedger()
	svc := NewSettingsService(env.ledger, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.SetAnnouncements(ctx, &dto.AnnouncementsRequest{HTML: "<b>시험 기간</b>"}); err != nil {
		t.Fatalf("SetAnnouncements 应成功: %v", err)
	}
	resp, err := svc.SetLogo(ctx, &dto.LogoRequest{URL: " data:image/png;base64,AAAA "})
	if err != nil {
		t.Fatalf("SetLogo 应成功: %v", err)
	}
	if resp.Announcements != "<b>시험 기간</b>" || resp.LogoURL != "data:image/png;base64,AAAA" {
		t.Errorf("设置结果不正确: %+v", resp)
	}
	if got := svc.Get(ctx); *got != *resp {
		t.Errorf("Get 应返回最新设置: %+v", got)
	}
}
