package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/model"
)

// SettingsService 站点设置：管理员密码、座位布局、公告、Logo
type SettingsService interface {
	ChangePassword(ctx context.Context, req *dto.ChangeAdminPasswordRequest) error
	Layout(ctx context.Context) []model.Seat
	MoveLayoutItem(ctx context.Context, id string, req *dto.MoveLayoutItemRequest) (*model.Seat, error)
	ResetLayout(ctx context.Context) ([]model.Seat, error)
	Get(ctx context.Context) *dto.SettingsResponse
	SetAnnouncements(ctx context.Context, req *dto.AnnouncementsRequest) (*dto.SettingsResponse, error)
	SetLogo(ctx context.Context, req *dto.LogoRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	ledger *Ledger
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(l *Ledger, logger *zap.Logger) SettingsService {
	return &settingsService{ledger: l, logger: logger}
}

// ────────────────────── 密码 ──────────────────────

func (s *settingsService) ChangePassword(ctx context.Context, req *dto.ChangeAdminPasswordRequest) error {
	_, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		return s.ledger.Engine.ChangeAdminPassword(cur, req.NewPassword, req.ConfirmPassword)
	})
	if err == nil {
		s.logger.Info("管理员密码已修改")
	}
	return err
}

// ────────────────────── 布局 ──────────────────────

func (s *settingsService) Layout(_ context.Context) []model.Seat {
	return s.ledger.Store.Snapshot().SeatLayout
}

func (s *settingsService) MoveLayoutItem(ctx context.Context, id string, req *dto.MoveLayoutItemRequest) (*model.Seat, error) {
	var moved model.Seat
	_, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		var (
			next ledger.State
			err  error
		)
		next, moved, err = s.ledger.Engine.MoveLayoutItem(cur, model.SeatID(strings.TrimSpace(id)), *req.X, *req.Y)
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

func (s *settingsService) ResetLayout(ctx context.Context) ([]model.Seat, error) {
	next, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		return s.ledger.Engine.ResetLayout(cur), nil
	})
	if err != nil {
		return nil, err
	}
	return next.SeatLayout, nil
}

// ────────────────────── 公告 / Logo ──────────────────────

func (s *settingsService) Get(_ context.Context) *dto.SettingsResponse {
	return toSettingsResponse(s.ledger.Store.Snapshot())
}

func (s *settingsService) SetAnnouncements(ctx context.Context, req *dto.AnnouncementsRequest) (*dto.SettingsResponse, error) {
	next, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		return s.ledger.Engine.SetAnnouncements(cur, req.HTML), nil
	})
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(next), nil
}

func (s *settingsService) SetLogo(ctx context.Context, req *dto.LogoRequest) (*dto.SettingsResponse, error) {
	next, err := s.ledger.Store.Mutate(ctx, func(cur ledger.State) (ledger.State, error) {
		return s.ledger.Engine.SetLogoURL(cur, strings.TrimSpace(req.URL)), nil
	})
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(next), nil
}

func toSettingsResponse(st ledger.State) *dto.SettingsResponse {
	return &dto.SettingsResponse{Announcements: st.Announcements, LogoURL: st.LogoURL}
}
