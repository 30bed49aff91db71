package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/dto"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/response"
)

// StudentHandler 学生名册（管理员）HTTP 处理器
type StudentHandler struct {
	svc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(svc service.StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

// List GET /api/v1/admin/students
func (h *StudentHandler) List(c *gin.Context) {
	response.OK(c, h.svc.List(c.Request.Context()))
}

// Create POST /api/v1/admin/students
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 22001, ledger.ErrStudentFieldsRequired.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleStudentError(c, err)
		return
	}
	response.Created(c, resp)
}

// Update PUT /api/v1/admin/students/:barcode
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("barcode"), &req)
	if err != nil {
		handleStudentError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete DELETE /api/v1/admin/students/:barcode
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("barcode")); err != nil {
		handleStudentError(c, err)
		return
	}
	response.OK(c, nil)
}

// Import 从 Excel 导入名册
// POST /api/v1/admin/students/import (multipart/form-data, field="file")
func (h *StudentHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "엑셀 파일을 업로드해주세요")
		return
	}
	defer file.Close()

	resp, err := h.svc.Import(c.Request.Context(), file)
	if err != nil {
		handleStudentError(c, err)
		return
	}
	response.OK(c, resp)
}

func handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrStudentFieldsRequired):
		response.BadRequest(c, 22001, err.Error())
	case errors.Is(err, ledger.ErrDuplicateBarcode):
		response.Conflict(c, 22002, err.Error())
	case errors.Is(err, ledger.ErrStudentNotFound):
		response.NotFound(c, 22003, err.Error())
	case errors.Is(err, service.ErrImportBadHeader):
		response.BadRequest(c, 22004, service.ErrImportBadHeader.Error())
	case errors.Is(err, service.ErrImportUnreadable):
		response.BadRequest(c, 22004, service.ErrImportUnreadable.Error())
	default:
		handleCommonError(c, err)
	}
}
