package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("관리자 비밀번호가 올바르지 않습니다")

const (
	RoleAdmin    = "admin"
	adminSubject = "admin"
)

// TokenBlacklist 登出后作废 Token（Redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 管理员认证接口
type AuthService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authService struct {
	cfg       *config.Config
	ledger    *Ledger
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例；blacklist 可为 nil（不启用 Redis 时登出仅由客户端丢弃 Token）
func NewAuthService(
	cfg *config.Config,
	l *Ledger,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		ledger:    l,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(_ context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	// 明文比较
	if !s.ledger.Store.Snapshot().VerifyAdminPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.jwtMgr.GenerateAccessToken(adminSubject, RoleAdmin)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.Auth.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}
