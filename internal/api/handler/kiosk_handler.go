package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/response"
)

// KioskHandler 入室/退室 HTTP 处理器
type KioskHandler struct {
	svc service.KioskService
}

// NewKioskHandler 创建 KioskHandler
func NewKioskHandler(svc service.KioskService) *KioskHandler {
	return &KioskHandler{svc: svc}
}

// Slots 时间段序列与默认开始时间
// GET /api/v1/slots
func (h *KioskHandler) Slots(c *gin.Context) {
	response.OK(c, h.svc.Slots(c.Request.Context()))
}

// Identify 识别学生
// POST /api/v1/kiosk/identify
func (h *KioskHandler) Identify(c *gin.Context) {
	var req dto.IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.Identify(c.Request.Context(), &req)
	if err != nil {
		handleKioskError(c, err)
		return
	}
	response.OK(c, resp)
}

// CheckIn 入室
// POST /api/v1/kiosk/check-in
func (h *KioskHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.CheckIn(c.Request.Context(), &req)
	if err != nil {
		handleKioskError(c, err)
		return
	}
	response.Created(c, resp)
}

// CheckoutBySeat 按座位退室
// POST /api/v1/kiosk/seats/:seat/checkout
func (h *KioskHandler) CheckoutBySeat(c *gin.Context) {
	var req dto.SeatCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.CheckoutBySeat(c.Request.Context(), c.Param("seat"), &req)
	if err != nil {
		handleKioskError(c, err)
		return
	}
	response.OK(c, resp)
}

// Checkout 按条码退室
// POST /api/v1/kiosk/checkout
func (h *KioskHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.Checkout(c.Request.Context(), &req)
	if err != nil {
		handleKioskError(c, err)
		return
	}
	response.OK(c, resp)
}

func handleKioskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrStudentNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, ledger.ErrAlreadySeated):
		response.Conflict(c, 20002, err.Error())
	case errors.Is(err, ledger.ErrSeatOccupied):
		response.Conflict(c, 20003, err.Error())
	case errors.Is(err, ledger.ErrSeatNotFound):
		response.NotFound(c, 20004, err.Error())
	case errors.Is(err, ledger.ErrInvalidDuration),
		errors.Is(err, service.ErrDurationExceedsLimit):
		response.BadRequest(c, 20005, err.Error())
	case errors.Is(err, ledger.ErrInvalidSlot):
		response.BadRequest(c, 20006, err.Error())
	case errors.Is(err, ledger.ErrReservationNotFound):
		response.NotFound(c, 20007, err.Error())
	case errors.Is(err, ledger.ErrCheckoutDenied):
		response.Forbidden(c, 20008, err.Error())
	default:
		handleCommonError(c, err)
	}
}
