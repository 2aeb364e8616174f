package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"main/config"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func testRateLimitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Window:         15 * time.Minute,
		OwnerLimit:     500,
		UserLimit:      300,
		AnonymousLimit: 100,
		PaymentLimit:   50,
		BypassPaths: []string{
			"/api/health",
			"/api/status",
			"/api/auth/validate-token",
			"/api/auth/google-callback",
		},
	}
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.Use(rl.Middleware())
	api.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/hotels", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterUserCeiling(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	rl := NewRateLimiter(testRateLimitConfig())
	router := newLimitedRouter(rl)

	token, err := services.GenerateToken("user-1", "user")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	for i := 1; i <= 300; i++ {
		w := doRequest(router, "/api/hotels", token)
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i, w.Code)
		}
	}

	w := doRequest(router, "/api/hotels", token)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Request 301: expected status 429, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if errMsg, ok := response["error"].(string); !ok || errMsg == "" {
		t.Error("Expected a role-specific error message in the 429 body")
	}

	if w.Header().Get("X-RateLimit-Limit") != "300" {
		t.Errorf("Expected X-RateLimit-Limit 300, got %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("Expected X-RateLimit-Remaining 0, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	if w.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("Expected X-RateLimit-Reset header to be set")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	rl := NewRateLimiter(testRateLimitConfig())
	router := newLimitedRouter(rl)

	now := time.Now()
	rl.now = func() time.Time { return now }

	token, _ := services.GenerateToken("user-1", "user")

	for i := 0; i < 300; i++ {
		doRequest(router, "/api/hotels", token)
	}
	if w := doRequest(router, "/api/hotels", token); w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 once ceiling is reached, got %d", w.Code)
	}

	// Advance past the window; the counter starts over
	now = now.Add(15*time.Minute + time.Second)
	if w := doRequest(router, "/api/hotels", token); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 after window reset, got %d", w.Code)
	}
}

func TestRateLimiterRetryAfterUsesLimiterClock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	cfg := testRateLimitConfig()
	cfg.AnonymousLimit = 1
	rl := NewRateLimiter(cfg)
	router := newLimitedRouter(rl)

	// Pin the limiter clock well behind the wall clock; retry_after must
	// come from the same clock the window was opened on
	base := time.Now().Add(-24 * time.Hour)
	rl.now = func() time.Time { return base }

	doRequest(router, "/api/hotels", "")
	w := doRequest(router, "/api/hotels", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}

	var response struct {
		Data struct {
			RetryAfterSeconds int `json:"retry_after_seconds"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if got := response.Data.RetryAfterSeconds; got <= 0 || got > int(cfg.Window.Seconds()) {
		t.Errorf("Expected retry_after_seconds within (0, %d], got %d", int(cfg.Window.Seconds()), got)
	}
}

func TestRateLimiterAdminBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	cfg := testRateLimitConfig()
	cfg.AnonymousLimit = 2
	rl := NewRateLimiter(cfg)
	router := newLimitedRouter(rl)

	token, _ := services.GenerateToken("admin-1", "admin")

	for i := 1; i <= 1000; i++ {
		w := doRequest(router, "/api/hotels", token)
		if w.Code != http.StatusOK {
			t.Fatalf("Admin request %d: expected status 200, got %d", i, w.Code)
		}
	}
}

func TestRateLimiterBadCredentialIsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	cfg := testRateLimitConfig()
	cfg.AnonymousLimit = 3
	rl := NewRateLimiter(cfg)
	router := newLimitedRouter(rl)

	// A token with a bad signature shares the anonymous window with
	// requests carrying no credential at all
	for i := 1; i <= 2; i++ {
		if w := doRequest(router, "/api/hotels", "not-a-real-token"); w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := doRequest(router, "/api/hotels", ""); w.Code != http.StatusOK {
		t.Fatalf("Expected bare request to consume the shared anonymous window, got %d", w.Code)
	}
	if w := doRequest(router, "/api/hotels", "not-a-real-token"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 for fourth anonymous request, got %d", w.Code)
	}
}

func TestRateLimiterBypassPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	cfg := testRateLimitConfig()
	cfg.AnonymousLimit = 1
	rl := NewRateLimiter(cfg)
	router := newLimitedRouter(rl)

	// Exhaust the anonymous window
	doRequest(router, "/api/hotels", "")
	if w := doRequest(router, "/api/hotels", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected anonymous window exhausted, got %d", w.Code)
	}

	// Diagnostic paths stay reachable
	for i := 0; i < 5; i++ {
		if w := doRequest(router, "/api/health", ""); w.Code != http.StatusOK {
			t.Fatalf("Expected bypass path to remain reachable, got %d", w.Code)
		}
	}
}

func TestRateLimiterPerCallerKeying(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	cfg := testRateLimitConfig()
	cfg.UserLimit = 2
	cfg.PerCaller = true
	rl := NewRateLimiter(cfg)
	router := newLimitedRouter(rl)

	tokenA, _ := services.GenerateToken("user-a", "user")
	tokenB, _ := services.GenerateToken("user-b", "user")

	doRequest(router, "/api/hotels", tokenA)
	doRequest(router, "/api/hotels", tokenA)
	if w := doRequest(router, "/api/hotels", tokenA); w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected caller A to be limited, got %d", w.Code)
	}

	// Caller B has their own window
	if w := doRequest(router, "/api/hotels", tokenB); w.Code != http.StatusOK {
		t.Fatalf("Expected caller B unaffected by caller A's window, got %d", w.Code)
	}
}

func TestPaymentRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	cfg := testRateLimitConfig()
	cfg.PaymentLimit = 3
	rl := NewRateLimiter(cfg)

	router := gin.New()
	router.POST("/api/payments/orders", rl.PaymentMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	userToken, _ := services.GenerateToken("user-1", "user")
	adminToken, _ := services.GenerateToken("admin-1", "admin")

	post := func(token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	for i := 1; i <= 3; i++ {
		if w := post(userToken); w.Code != http.StatusCreated {
			t.Fatalf("Payment request %d: expected 201, got %d", i, w.Code)
		}
	}
	if w := post(userToken); w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected payment ceiling to reject, got %d", w.Code)
	}

	// Admins skip the payment ceiling too
	if w := post(adminToken); w.Code != http.StatusCreated {
		t.Fatalf("Expected admin to bypass payment ceiling, got %d", w.Code)
	}
}
