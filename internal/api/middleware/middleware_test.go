package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/internal/api/handler"
	"github.com/madtung/sanghak2/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mocks ──

type mockChecker struct {
	revoked map[string]bool
	err     error
}

func (m *mockChecker) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], m.err
}

type mockLimiter struct {
	calls int
	err   error
	keys  []string
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	m.calls++
	m.keys = append(m.keys, key)
	return m.calls <= limit, m.err
}

func newJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{JWTSecret: "middleware-test-secret-key", AccessTokenTTL: time.Hour})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ──

func TestJWTAuth(t *testing.T) {
	mgr := newJWT()
	token, claims, err := mgr.GenerateAccessToken("admin", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	checker := &mockChecker{revoked: map[string]bool{}}

	r := gin.New()
	r.GET("/admin", JWTAuth(mgr, checker), RoleAuth("admin"), func(c *gin.Context) {
		if _, ok := c.Get(handler.ClaimsKey); !ok {
			t.Error("expected claims in context")
		}
		c.Status(http.StatusOK)
	})

	req := func(header string) *http.Request {
		rq := httptest.NewRequest("GET", "/admin", nil)
		if header != "" {
			rq.Header.Set("Authorization", header)
		}
		return rq
	}

	if w := serve(r, req("Bearer "+token)); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := serve(r, req("")); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", w.Code)
	}
	if w := serve(r, req("Token "+token)); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad scheme, got %d", w.Code)
	}
	if w := serve(r, req("Bearer garbage")); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token, got %d", w.Code)
	}

	// 登出后的 Token 被拒绝
	checker.revoked[claims.ID] = true
	if w := serve(r, req("Bearer "+token)); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", w.Code)
	}

	// Redis 出错时放行
	checker.err = errors.New("redis down")
	checker.revoked = map[string]bool{}
	if w := serve(r, req("Bearer "+token)); w.Code != http.StatusOK {
		t.Errorf("expected 200 when redis fails, got %d", w.Code)
	}
}

func TestJWTAuth_NilChecker(t *testing.T) {
	mgr := newJWT()
	token, _, _ := mgr.GenerateAccessToken("admin", "admin")

	r := gin.New()
	r.GET("/admin", JWTAuth(mgr, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	rq := httptest.NewRequest("GET", "/admin", nil)
	rq.Header.Set("Authorization", "Bearer "+token)
	if w := serve(r, rq); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRoleAuth_Forbidden(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { c.Set("role", "kiosk") }, RoleAuth("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	if w := serve(r, httptest.NewRequest("GET", "/x", nil)); w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	lim := &mockLimiter{}
	r := gin.New()
	r.POST("/login", RateLimit(lim, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := serve(r, httptest.NewRequest("POST", "/login", nil)); w.Code != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
	if w := serve(r, httptest.NewRequest("POST", "/login", nil)); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if !strings.HasSuffix(lim.keys[0], ":/login") {
		t.Errorf("unexpected key: %s", lim.keys[0])
	}
}

func TestRateLimit_Degrades(t *testing.T) {
	r := gin.New()
	r.POST("/nil", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/err", RateLimit(&mockLimiter{err: errors.New("down")}, 0, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/nil", "/nil", "/err", "/err"} {
		if w := serve(r, httptest.NewRequest("POST", path, nil)); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := serve(r, httptest.NewRequest("GET", "/", nil))
	if id := w.Header().Get(requestIDHeader); id == "" || id != w.Body.String() {
		t.Errorf("expected generated id in header and context, got %q / %q", id, w.Body.String())
	}

	rq := httptest.NewRequest("GET", "/", nil)
	rq.Header.Set(requestIDHeader, "kiosk-1")
	if w := serve(r, rq); w.Header().Get(requestIDHeader) != "kiosk-1" {
		t.Errorf("expected incoming id preserved, got %q", w.Header().Get(requestIDHeader))
	}

	rq = httptest.NewRequest("GET", "/", nil)
	rq.Header.Set(requestIDHeader, strings.Repeat("x", requestIDMaxLen+1))
	if w := serve(r, rq); len(w.Header().Get(requestIDHeader)) > requestIDMaxLen {
		t.Error("expected overlong id to be replaced")
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := serve(r, httptest.NewRequest("POST", "/", strings.NewReader("small"))); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := serve(r, httptest.NewRequest("POST", "/", strings.NewReader("way too large body"))); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

// ── CORS ──

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://kiosk.local/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rq := httptest.NewRequest("GET", "/", nil)
	rq.Header.Set("Origin", "http://kiosk.local")
	if w := serve(r, rq); w.Header().Get("Access-Control-Allow-Origin") != "http://kiosk.local" {
		t.Error("expected allowed origin to be echoed")
	}

	rq = httptest.NewRequest("GET", "/", nil)
	rq.Header.Set("Origin", "http://evil.example")
	if w := serve(r, rq); w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected unknown origin to be ignored")
	}

	rq = httptest.NewRequest("OPTIONS", "/", nil)
	if w := serve(r, rq); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
}
