package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/response"
)

// SettingsHandler 站点设置 HTTP 处理器
type SettingsHandler struct {
	svc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// ChangePassword PUT /api/v1/admin/password
func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangeAdminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), &req); err != nil {
		handleSettingsError(c, err)
		return
	}
	response.OK(c, nil)
}

// Layout GET /api/v1/admin/layout
func (h *SettingsHandler) Layout(c *gin.Context) {
	response.OK(c, h.svc.Layout(c.Request.Context()))
}

// MoveLayoutItem PUT /api/v1/admin/layout/:id
func (h *SettingsHandler) MoveLayoutItem(c *gin.Context) {
	var req dto.MoveLayoutItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	seat, err := h.svc.MoveLayoutItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleSettingsError(c, err)
		return
	}
	response.OK(c, seat)
}

// ResetLayout POST /api/v1/admin/layout/reset
func (h *SettingsHandler) ResetLayout(c *gin.Context) {
	layout, err := h.svc.ResetLayout(c.Request.Context())
	if err != nil {
		handleSettingsError(c, err)
		return
	}
	response.OK(c, layout)
}

// Get GET /api/v1/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	response.OK(c, h.svc.Get(c.Request.Context()))
}

// SetAnnouncements PUT /api/v1/admin/announcements
func (h *SettingsHandler) SetAnnouncements(c *gin.Context) {
	var req dto.AnnouncementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.SetAnnouncements(c.Request.Context(), &req)
	if err != nil {
		handleSettingsError(c, err)
		return
	}
	response.OK(c, resp)
}

// SetLogo PUT /api/v1/admin/logo
func (h *SettingsHandler) SetLogo(c *gin.Context) {
	var req dto.LogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.SetLogo(c.Request.Context(), &req)
	if err != nil {
		handleSettingsError(c, err)
		return
	}
	response.OK(c, resp)
}

func handleSettingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrPasswordTooShort),
		errors.Is(err, ledger.ErrPasswordMismatch):
		response.BadRequest(c, 23002, err.Error())
	case errors.Is(err, ledger.ErrLayoutItemNotFound):
		response.NotFound(c, 23003, err.Error())
	default:
		handleCommonError(c, err)
	}
}
