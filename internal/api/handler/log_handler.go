package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/response"
)

// LogHandler 日志查询 HTTP 处理器
type LogHandler struct {
	svc service.LogService
}

// NewLogHandler 创建 LogHandler
func NewLogHandler(svc service.LogService) *LogHandler {
	return &LogHandler{svc: svc}
}

// List 日志列表（新的在前）
// GET /api/v1/admin/logs?type=individual|group&page=1&page_size=20
func (h *LogHandler) List(c *gin.Context) {
	var req dto.LogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c)
		return
	}

	list, total := h.svc.List(c.Request.Context(), &req)
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}
