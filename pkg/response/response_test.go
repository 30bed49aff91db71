package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestOKPage_TotalPages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKPage(c, []int{1, 2}, 41, 2, 20)

	var resp struct {
		Data PageData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.Pagination.TotalPages != 3 {
		t.Errorf("期望 3 页，实际 %d", resp.Data.Pagination.TotalPages)
	}
}

func TestAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "자율학습실_로그_2026-10-16.xlsx", XLSXContentType, []byte("PK"))

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") || strings.Contains(cd, "자") {
		t.Errorf("文件名应被编码，实际 %s", cd)
	}
	if w.Header().Get("Content-Type") != XLSXContentType {
		t.Errorf("Content-Type 不正确: %s", w.Header().Get("Content-Type"))
	}
}

func TestErrorShortcuts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		write  func(c *gin.Context)
		status int
		code   int
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, 10001, "bad") }, http.StatusBadRequest, 10001},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, 10002, "auth") }, http.StatusUnauthorized, 10002},
		{"Forbidden", func(c *gin.Context) { Forbidden(c, 20008, "denied") }, http.StatusForbidden, 20008},
		{"NotFound", func(c *gin.Context) { NotFound(c, 20004, "seat") }, http.StatusNotFound, 20004},
		{"Conflict", func(c *gin.Context) { Conflict(c, 40901, "retry") }, http.StatusConflict, 40901},
		{"TooManyRequests", func(c *gin.Context) { TooManyRequests(c, 10004, "slow") }, http.StatusTooManyRequests, 10004},
		{"InternalError", InternalError, http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("解析响应失败: %v", err)
			}
			if w.Code != tt.status || resp.Code != tt.code {
				t.Errorf("期望 %d/%d，实际 %d/%d", tt.status, tt.code, w.Code, resp.Code)
			}
		})
	}
}
