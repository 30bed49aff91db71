package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/pkg/jwt"
)

func setupTestAuthService(blacklist TokenBlacklist) (AuthService, *jwt.Manager) {
	env := setupTestLedger()
	cfg := &config.Config{Auth: config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-tests",
		AccessTokenTTL: 2 * time.Hour,
	}}
	mgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, env.ledger, mgr, blacklist, zap.NewNop()), mgr
}

func TestAuthService_Login(t *testing.T) {
	svc, mgr := setupTestAuthService(nil)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.AdminLoginRequest{Password: "1111"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.ExpiresIn != 7200 {
		t.Errorf("期望 ExpiresIn=7200，实际 %d", resp.ExpiresIn)
	}
	claims, err := mgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("签发的 Token 应可解析: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("期望角色 admin，实际 %s", claims.Role)
	}

	if _, err := svc.Login(ctx, &dto.AdminLoginRequest{Password: "1112"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	bl := &mockBlacklist{}
	svc, mgr := setupTestAuthService(bl)

	_, claims, err := mgr.GenerateAccessToken(adminSubject, RoleAdmin)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	if bl.jti != claims.ID {
		t.Errorf("期望 JTI %s 进入黑名单，实际 %s", claims.ID, bl.jti)
	}
	if bl.ttl <= 0 || bl.ttl > 2*time.Hour {
		t.Errorf("黑名单 TTL 不正确: %v", bl.ttl)
	}
}

func TestAuthService_Logout_NoBlacklist(t *testing.T) {
	svc, mgr := setupTestAuthService(nil)
	_, claims, _ := mgr.GenerateAccessToken(adminSubject, RoleAdmin)
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Errorf("未启用 Redis 时登出不应报错: %v", err)
	}
}
