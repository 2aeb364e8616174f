package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"main/config"
	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// rateWindow is one counting interval. The whole window resets when it
// elapses; counts do not decay continuously.
type rateWindow struct {
	windowStart time.Time
	count       int
}

// RateLimiter gates /api/ traffic with a per-role request ceiling over a
// fixed window. Admins bypass it entirely, as does a small set of
// diagnostic paths. A narrower ceiling stacks on top for payment-order
// creation. Constructed once at startup and shared by reference.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	bypass map[string]struct{}

	mu            sync.Mutex
	windows       map[string]*rateWindow
	paymentWindow rateWindow

	// now is swappable in tests.
	now func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	bypass := make(map[string]struct{}, len(cfg.BypassPaths))
	for _, p := range cfg.BypassPaths {
		bypass[p] = struct{}{}
	}
	return &RateLimiter{
		cfg:     cfg,
		bypass:  bypass,
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// roleLimit returns the ceiling for a role; 0 means unlimited.
func (rl *RateLimiter) roleLimit(role string) int {
	switch role {
	case model.RoleAdmin:
		return 0
	case model.RoleHotelOwner:
		return rl.cfg.OwnerLimit
	case model.RoleUser:
		return rl.cfg.UserLimit
	default:
		return rl.cfg.AnonymousLimit
	}
}

func roleMessage(role string) string {
	switch role {
	case model.RoleHotelOwner:
		return "Request limit reached for hotel owner accounts. Please retry after the window resets."
	case model.RoleUser:
		return "Request limit reached for your account. Please retry after the window resets."
	default:
		return "Too many requests from unauthenticated clients. Sign in or retry later."
	}
}

// resolveCaller classifies the request. Credential failures are never
// surfaced here; they degrade the caller to anonymous.
func resolveCaller(c *gin.Context) (userID, role string) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else if cookie, err := c.Cookie("access_token"); err == nil {
		tokenString = cookie
	}

	claims, err := services.ParseToken(tokenString)
	if err != nil || !model.ValidRole(claims.Role) {
		return "", model.RoleAnonymous
	}
	return claims.UserID, claims.Role
}

// windowKey implements the role-only default keying; every caller sharing
// a role shares one ceiling unless PerCaller is set.
func (rl *RateLimiter) windowKey(role, userID, clientIP string) string {
	if !rl.cfg.PerCaller {
		return role
	}
	identity := userID
	if identity == "" {
		identity = clientIP
	}
	return role + ":" + identity
}

// take charges one request against the keyed window and reports whether it
// is within limit, along with remaining slots and the reset time.
func (rl *RateLimiter) take(key string, limit int) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok {
		w = &rateWindow{windowStart: now}
		rl.windows[key] = w
	}

	if now.Sub(w.windowStart) >= rl.cfg.Window {
		w.windowStart = now
		w.count = 0
	}

	w.count++
	reset = w.windowStart.Add(rl.cfg.Window)
	remaining = limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= limit, remaining, reset
}

// takePayment charges the stacked payment-creation window.
func (rl *RateLimiter) takePayment() (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.paymentWindow.windowStart) >= rl.cfg.Window {
		rl.paymentWindow.windowStart = now
		rl.paymentWindow.count = 0
	}

	rl.paymentWindow.count++
	reset = rl.paymentWindow.windowStart.Add(rl.cfg.Window)
	remaining = rl.cfg.PaymentLimit - rl.paymentWindow.count
	if remaining < 0 {
		remaining = 0
	}
	return rl.paymentWindow.count <= rl.cfg.PaymentLimit, remaining, reset
}

func setRateHeaders(c *gin.Context, limit, remaining int, reset time.Time) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
}

// Middleware is the admission gate applied to the /api group.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exempt := rl.bypass[c.Request.URL.Path]; exempt {
			c.Next()
			return
		}

		userID, role := resolveCaller(c)
		if userID != "" {
			c.Set("rate_user_id", userID)
		}

		if role == model.RoleAdmin {
			c.Next()
			return
		}

		limit := rl.roleLimit(role)
		key := rl.windowKey(role, userID, c.ClientIP())

		allowed, remaining, reset := rl.take(key, limit)
		setRateHeaders(c, limit, remaining, reset)

		if !allowed {
			utils.TrackRateLimitRejection(role)
			utils.TooManyRequests(c, roleMessage(role), gin.H{
				"retry_after_seconds": int(reset.Sub(rl.now()).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// PaymentMiddleware stacks the narrower payment-order-creation ceiling on
// top of the role ceiling. Attach it to the payment-creation route only.
func (rl *RateLimiter) PaymentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		_, role := resolveCaller(c)
		if role == model.RoleAdmin {
			c.Next()
			return
		}

		allowed, remaining, reset := rl.takePayment()
		setRateHeaders(c, rl.cfg.PaymentLimit, remaining, reset)

		if !allowed {
			utils.TrackRateLimitRejection("payment")
			utils.TooManyRequests(c,
				fmt.Sprintf("Payment order limit of %d per window reached. Please retry after the window resets.", rl.cfg.PaymentLimit),
				gin.H{
					"retry_after_seconds": int(reset.Sub(rl.now()).Seconds()),
				})
			c.Abort()
			return
		}

		c.Next()
	}
}
