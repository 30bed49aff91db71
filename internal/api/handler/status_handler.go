package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/response"
)

// StatusHandler 现况看板
type StatusHandler struct {
	svc service.StatusService
}

// NewStatusHandler 创建 StatusHandler
func NewStatusHandler(svc service.StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// Status GET /api/v1/status
func (h *StatusHandler) Status(c *gin.Context) {
	response.OK(c, h.svc.Status(c.Request.Context()))
}

// Seats GET /api/v1/seats
func (h *StatusHandler) Seats(c *gin.Context) {
	response.OK(c, h.svc.Seats(c.Request.Context()))
}
