package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/model"

	"github.com/gin-gonic/gin"
)

func testContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestRecordRequestFiltering(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		expected bool
	}{
		{"Mutating verb kept", http.MethodPost, "/api/bookings", true},
		{"Delete kept", http.MethodDelete, "/api/hotels/h1", true},
		{"Plain read dropped", http.MethodGet, "/api/hotels", false},
		{"Admin read kept", http.MethodGet, "/api/admin/dashboard", true},
		{"Auth read kept", http.MethodGet, "/api/auth/validate-token", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewActivityLogger()
			c, _ := testContext(tt.method, tt.path)

			logger.RecordRequest(c, http.StatusOK, 5*time.Millisecond)

			if got := logger.Len() == 1; got != tt.expected {
				t.Errorf("Expected recorded=%v for %s %s, got %v", tt.expected, tt.method, tt.path, got)
			}
		})
	}
}

func TestRecordRequestCapturesFields(t *testing.T) {
	logger := NewActivityLogger()
	c, _ := testContext(http.MethodPost, "/api/bookings?debug=1")
	c.Request.Header.Set("User-Agent", "test-agent")
	c.Set("user_id", "u1")
	c.Params = gin.Params{{Key: "id", Value: "b42"}}

	logger.RecordRequest(c, http.StatusCreated, 12*time.Millisecond)

	entries := logger.Query("", "", 10)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ActorID != "u1" {
		t.Errorf("Expected actor u1, got %q", entry.ActorID)
	}
	if entry.StatusCode != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", entry.StatusCode)
	}
	if entry.DurationMs != 12 {
		t.Errorf("Expected 12ms duration, got %d", entry.DurationMs)
	}
	if entry.PathParams["id"] != "b42" {
		t.Errorf("Expected path param id=b42, got %v", entry.PathParams)
	}
	if entry.QueryParams["debug"] != "1" {
		t.Errorf("Expected query param debug=1, got %v", entry.QueryParams)
	}
	if entry.UserAgent != "test-agent" {
		t.Errorf("Expected user agent recorded, got %q", entry.UserAgent)
	}
}

func TestRecordRequestActorFallback(t *testing.T) {
	logger := NewActivityLogger()

	// No auth middleware ran, but the rate limiter resolved a token
	c, _ := testContext(http.MethodPost, "/api/auth/login")
	c.Set("rate_user_id", "u9")
	logger.RecordRequest(c, http.StatusOK, time.Millisecond)

	entries := logger.Query("u9", "", 10)
	if len(entries) != 1 {
		t.Fatalf("Expected fallback attribution to u9, got %d entries", len(entries))
	}

	// user_id wins when both are present
	c, _ = testContext(http.MethodPost, "/api/bookings")
	c.Set("user_id", "u1")
	c.Set("rate_user_id", "u9")
	logger.RecordRequest(c, http.StatusCreated, time.Millisecond)

	if got := logger.Query("u1", "POST", 10); len(got) != 1 {
		t.Errorf("Expected user_id to take precedence, got %d entries", len(got))
	}
}

func TestRecordSystemDefaults(t *testing.T) {
	logger := NewActivityLogger()

	logger.RecordSystem(model.ActivityLog{})

	entries := logger.Query("", "", 10)
	if len(entries) != 1 {
		t.Fatalf("Expected explicit entry to always be retained, got %d entries", len(entries))
	}
	entry := entries[0]
	if entry.ActorID != "system" {
		t.Errorf("Expected default actor 'system', got %q", entry.ActorID)
	}
	if entry.Method != "SYSTEM" {
		t.Errorf("Expected default verb 'SYSTEM', got %q", entry.Method)
	}
	if entry.Path != "/internal" {
		t.Errorf("Expected default path '/internal', got %q", entry.Path)
	}
	if entry.Timestamp.IsZero() {
		t.Error("Expected timestamp to be filled in")
	}
	if entry.DurationMs != 0 {
		t.Errorf("Expected zero duration, got %d", entry.DurationMs)
	}
}

func TestFIFOEviction(t *testing.T) {
	logger := NewActivityLogger()

	total := MaxActivityEntries + 5
	for i := 0; i < total; i++ {
		logger.RecordSystem(model.ActivityLog{
			ActorID: fmt.Sprintf("actor-%d", i),
			Method:  "POST",
		})
	}

	if logger.Len() != MaxActivityEntries {
		t.Fatalf("Expected length capped at %d, got %d", MaxActivityEntries, logger.Len())
	}

	// The oldest five entries were evicted; the newest survives
	if got := logger.Query(fmt.Sprintf("actor-%d", total-1), "", 1); len(got) != 1 {
		t.Error("Expected most recent entry to be retained")
	}
	for i := 0; i < 5; i++ {
		if got := logger.Query(fmt.Sprintf("actor-%d", i), "", 1); len(got) != 0 {
			t.Errorf("Expected actor-%d to have been evicted", i)
		}
	}
}

func TestQueryFilters(t *testing.T) {
	logger := NewActivityLogger()

	for i := 0; i < 8; i++ {
		logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "DELETE", Path: fmt.Sprintf("/api/hotels/h%d", i)})
	}
	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "POST"})
	logger.RecordSystem(model.ActivityLog{ActorID: "u2", Method: "DELETE"})

	entries := logger.Query("u1", "DELETE", 5)
	if len(entries) != 5 {
		t.Fatalf("Expected limit of 5 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.ActorID != "u1" || entry.Method != "DELETE" {
			t.Errorf("Unexpected entry in filtered result: %+v", entry)
		}
	}

	// Most recent first
	if entries[0].Path != "/api/hotels/h7" {
		t.Errorf("Expected newest entry first, got %q", entries[0].Path)
	}
}

func TestQueryOrderAfterFiltering(t *testing.T) {
	logger := NewActivityLogger()

	// POST and DELETE survive; the GET outside the audited namespaces is
	// dropped at record time
	cPost, _ := testContext(http.MethodPost, "/api/bookings")
	cPost.Set("user_id", "a")
	logger.RecordRequest(cPost, 201, time.Millisecond)

	cGet, _ := testContext(http.MethodGet, "/api/hotels")
	cGet.Set("user_id", "a")
	logger.RecordRequest(cGet, 200, time.Millisecond)

	cDelete, _ := testContext(http.MethodDelete, "/api/bookings/b1")
	cDelete.Set("user_id", "a")
	logger.RecordRequest(cDelete, 200, time.Millisecond)

	entries := logger.Query("a", "", 10)
	if len(entries) != 2 {
		t.Fatalf("Expected exactly 2 entries, got %d", len(entries))
	}
	if entries[0].Method != "DELETE" || entries[1].Method != "POST" {
		t.Errorf("Expected DELETE then POST (newest first), got %s then %s", entries[0].Method, entries[1].Method)
	}
}

func TestQueryLogins(t *testing.T) {
	logger := NewActivityLogger()

	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "POST", Path: "/api/auth/login", StatusCode: 200})
	logger.RecordSystem(model.ActivityLog{ActorID: "u2", Method: "POST", Path: "/api/auth/login", StatusCode: 401})
	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "POST", Path: "/api/bookings", StatusCode: 201})

	logins := logger.QueryLogins("", 10)
	if len(logins) != 1 {
		t.Fatalf("Expected 1 successful login, got %d", len(logins))
	}
	if logins[0].ActorID != "u1" {
		t.Errorf("Expected login by u1, got %q", logins[0].ActorID)
	}

	if got := logger.QueryLogins("u2", 10); len(got) != 0 {
		t.Errorf("Expected failed login to be excluded, got %d entries", len(got))
	}
}

func TestStatsAndClear(t *testing.T) {
	logger := NewActivityLogger()

	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "POST"})
	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "DELETE"})
	logger.RecordSystem(model.ActivityLog{ActorID: "u2", Method: "GET"})

	stats := logger.Stats()
	if stats.TotalActivities != 3 {
		t.Errorf("Expected 3 activities, got %d", stats.TotalActivities)
	}
	if stats.TotalActors != 2 {
		t.Errorf("Expected 2 distinct actors, got %d", stats.TotalActors)
	}
	if stats.MethodCounts["POST"] != 1 || stats.MethodCounts["DELETE"] != 1 || stats.MethodCounts["GET"] != 1 {
		t.Errorf("Unexpected method histogram: %v", stats.MethodCounts)
	}
	if stats.LastActivity == nil {
		t.Error("Expected last activity timestamp")
	}

	logger.Clear()

	stats = logger.Stats()
	if stats.TotalActivities != 0 || stats.TotalActors != 0 {
		t.Errorf("Expected empty stats after clear, got %+v", stats)
	}
	for method, count := range stats.MethodCounts {
		if count != 0 {
			t.Errorf("Expected zero count for %s after clear, got %d", method, count)
		}
	}
	if stats.LastActivity != nil {
		t.Error("Expected no last activity after clear")
	}
}
