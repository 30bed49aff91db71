package handler

import (
	"bytes"
	"context"

	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportLogs 导出日志
// GET /api/v1/admin/logs/export
func (h *ExportHandler) ExportLogs(c *gin.Context) {
	h.send(c, h.exportSvc.ExportLogs)
}

// ExportRoster 导出学生名册
// GET /api/v1/admin/students/export
func (h *ExportHandler) ExportRoster(c *gin.Context) {
	h.send(c, h.exportSvc.ExportRoster)
}

func (h *ExportHandler) send(c *gin.Context, export func(context.Context) (*bytes.Buffer, string, error)) {
	buf, filename, err := export(c.Request.Context())
	if err != nil {
		// ErrExportGenerateFail 及其他错误均为服务端问题
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, filename, response.XLSXContentType, buf.Bytes())
}
