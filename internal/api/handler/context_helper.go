package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/pkg/jwt"
	"github.com/madtung/sanghak2/pkg/response"
)

// ClaimsKey JWT 中间件写入上下文的声明键
const ClaimsKey = "claims"

// MustGetClaims 从 Gin 上下文中安全提取管理员声明。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		response.Unauthorized(c, 10002, "인증이 필요합니다")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "인증이 필요합니다")
		return nil, false
	}
	return claims, true
}

// ── 公共错误处理 ──

func badRequest(c *gin.Context) {
	response.BadRequest(c, 10001, "입력값을 확인해주세요")
}

// handleCommonError 各模块未匹配到的错误
func handleCommonError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrLedgerConflict) {
		response.Conflict(c, 40901, err.Error())
		return
	}
	response.InternalError(c)
}
