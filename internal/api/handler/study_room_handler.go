package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/response"
)

// StudyRoomHandler 共同学习室 HTTP 处理器
type StudyRoomHandler struct {
	svc service.StudyRoomService
}

// NewStudyRoomHandler 创建 StudyRoomHandler
func NewStudyRoomHandler(svc service.StudyRoomService) *StudyRoomHandler {
	return &StudyRoomHandler{svc: svc}
}

// Timetable 房间时间表
// GET /api/v1/study-rooms/:room/timetable?date=YYYY-MM-DD
func (h *StudyRoomHandler) Timetable(c *gin.Context) {
	room, err := strconv.Atoi(c.Param("room"))
	if err != nil {
		badRequest(c)
		return
	}
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.Timetable(c.Request.Context(), room, q.Date)
	if err != nil {
		handleStudyRoomError(c, err)
		return
	}
	response.OK(c, resp)
}

// Availability 空闲检查
// POST /api/v1/study-rooms/availability
func (h *StudyRoomHandler) Availability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.Availability(c.Request.Context(), &req)
	if err != nil {
		handleStudyRoomError(c, err)
		return
	}
	response.OK(c, resp)
}

// Create 创建预约
// POST /api/v1/study-rooms/reservations
func (h *StudyRoomHandler) Create(c *gin.Context) {
	var req dto.CreateStudyRoomReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleStudyRoomError(c, err)
		return
	}
	response.Created(c, resp)
}

// List 指定日期的预约
// GET /api/v1/study-rooms/reservations?date=YYYY-MM-DD
func (h *StudyRoomHandler) List(c *gin.Context) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c)
		return
	}
	response.OK(c, h.svc.List(c.Request.Context(), q.Date))
}

func handleStudyRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrRoomSlotTaken):
		response.Conflict(c, 21001, err.Error())
	case errors.Is(err, service.ErrDateOutOfWindow):
		response.BadRequest(c, 21002, err.Error())
	case errors.Is(err, ledger.ErrRoomNotFound):
		response.NotFound(c, 21003, err.Error())
	case errors.Is(err, service.ErrInvalidAttendees):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, ledger.ErrStudentNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, ledger.ErrInvalidDuration):
		response.BadRequest(c, 20005, err.Error())
	case errors.Is(err, ledger.ErrInvalidSlot):
		response.BadRequest(c, 20006, err.Error())
	default:
		handleCommonError(c, err)
	}
}
