package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/internal/api/handler"
	"github.com/madtung/sanghak2/internal/api/middleware"
	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/internal/ws"
	"github.com/madtung/sanghak2/pkg/jwt"
)

// Deps 路由依赖。Redis 未启用时 Tokens 与 Limiter 为 nil。
type Deps struct {
	JWT     *jwt.Manager
	Tokens  middleware.TokenChecker
	Limiter middleware.Limiter
	Hub     *ws.StatusHub
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 现况看板推送 ──
	if deps.Hub != nil {
		r.GET("/ws/status", ws.StatusHandler(deps.Hub, ws.NewUpgrader(cfg.Server.CORS.AllowOrigins)))
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/slots", h.Kiosk.Slots)
		v1.GET("/status", h.Status.Status)
		v1.GET("/seats", h.Status.Seats)

		// 键盘机（无需认证）
		kiosk := v1.Group("/kiosk")
		{
			kiosk.POST("/identify", h.Kiosk.Identify)
			kiosk.POST("/check-in", h.Kiosk.CheckIn)
			// 凭证可为管理员密码，按 IP 限流
			kiosk.POST("/seats/:seat/checkout",
				middleware.RateLimit(deps.Limiter, cfg.Auth.CheckoutRateLimit, time.Minute),
				h.Kiosk.CheckoutBySeat)
			kiosk.POST("/checkout", h.Kiosk.Checkout)
		}

		// 共同学习室
		rooms := v1.Group("/study-rooms")
		{
			rooms.GET("/:room/timetable", h.StudyRoom.Timetable)
			rooms.POST("/availability", h.StudyRoom.Availability)
			rooms.POST("/reservations", h.StudyRoom.Create)
			rooms.GET("/reservations", h.StudyRoom.List)
		}

		// 管理员登录（按 IP 限流）
		v1.POST("/admin/login",
			middleware.RateLimit(deps.Limiter, cfg.Auth.LoginRateLimit, time.Minute),
			h.Auth.Login)

		// 需要管理员认证的路由
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(deps.JWT, deps.Tokens), middleware.RoleAuth(service.RoleAdmin))
		{
			admin.POST("/logout", h.Auth.Logout)

			students := admin.Group("/students")
			{
				students.GET("", h.Student.List)
				students.POST("", h.Student.Create)
				students.POST("/import", h.Student.Import)
				students.GET("/export", h.Export.ExportRoster)
				students.PUT("/:barcode", h.Student.Update)
				students.DELETE("/:barcode", h.Student.Delete)
			}

			admin.GET("/logs", h.Log.List)
			admin.GET("/logs/export", h.Export.ExportLogs)

			admin.PUT("/password", h.Settings.ChangePassword)
			admin.GET("/layout", h.Settings.Layout)
			admin.PUT("/layout/:id", h.Settings.MoveLayoutItem)
			admin.POST("/layout/reset", h.Settings.ResetLayout)
			admin.GET("/settings", h.Settings.Get)
			admin.PUT("/announcements", h.Settings.SetAnnouncements)
			admin.PUT("/logo", h.Settings.SetLogo)
		}
	}

	return r
}
