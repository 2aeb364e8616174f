package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/model"
	"main/services"

	"github.com/gin-gonic/gin"
)

func newActivityRouter(logger *services.ActivityLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewActivityHandler(logger)
	router.GET("/api/admin/activities", h.ListActivities)
	router.GET("/api/admin/activities/logins", h.ListLogins)
	router.GET("/api/admin/activities/stats", h.GetStats)
	router.DELETE("/api/admin/activities", h.ClearActivities)
	return router
}

func activityCount(t *testing.T, body []byte, key string) int {
	t.Helper()
	var resp struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	var count int
	if err := json.Unmarshal(resp.Data["count"], &count); err != nil {
		t.Fatalf("Failed to decode count: %v", err)
	}
	_, ok := resp.Data[key]
	if !ok {
		t.Fatalf("Expected %q field in response data", key)
	}
	return count
}

func TestListActivitiesLimitClamp(t *testing.T) {
	logger := services.NewActivityLogger()
	for i := 0; i < 1200; i++ {
		logger.RecordSystem(model.ActivityLog{ActorID: fmt.Sprintf("u%d", i), Method: "POST"})
	}
	router := newActivityRouter(logger)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/activities?limit=5000", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if count := activityCount(t, w.Body.Bytes(), "activities"); count != 1000 {
		t.Errorf("Expected limit clamped to 1000 entries, got %d", count)
	}
}

func TestListActivitiesDefaultAndInvalidLimit(t *testing.T) {
	logger := services.NewActivityLogger()
	for i := 0; i < 80; i++ {
		logger.RecordSystem(model.ActivityLog{Method: "POST"})
	}
	router := newActivityRouter(logger)

	for _, query := range []string{"", "?limit=abc", "?limit=0", "?limit=-3"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/activities"+query, nil)
		router.ServeHTTP(w, req)

		if count := activityCount(t, w.Body.Bytes(), "activities"); count != 50 {
			t.Errorf("Query %q: expected default of 50 entries, got %d", query, count)
		}
	}
}

func TestListActivitiesFilters(t *testing.T) {
	logger := services.NewActivityLogger()
	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "DELETE"})
	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "POST"})
	logger.RecordSystem(model.ActivityLog{ActorID: "u2", Method: "DELETE"})
	router := newActivityRouter(logger)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/activities?actor_id=u1&verb=DELETE", nil)
	router.ServeHTTP(w, req)

	if count := activityCount(t, w.Body.Bytes(), "activities"); count != 1 {
		t.Errorf("Expected 1 filtered entry, got %d", count)
	}
}

func TestListLogins(t *testing.T) {
	logger := services.NewActivityLogger()
	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "POST", Path: "/api/auth/login", StatusCode: 200})
	logger.RecordSystem(model.ActivityLog{ActorID: "u2", Method: "POST", Path: "/api/auth/login", StatusCode: 401})
	router := newActivityRouter(logger)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/activities/logins", nil)
	router.ServeHTTP(w, req)

	if count := activityCount(t, w.Body.Bytes(), "logins"); count != 1 {
		t.Errorf("Expected 1 successful login, got %d", count)
	}
}

func TestStatsAndClearEndpoints(t *testing.T) {
	logger := services.NewActivityLogger()
	logger.RecordSystem(model.ActivityLog{ActorID: "u1", Method: "POST"})
	router := newActivityRouter(logger)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/activities/stats", nil)
	router.ServeHTTP(w, req)

	var statsResp struct {
		Data model.ActivityStats `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &statsResp); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if statsResp.Data.TotalActivities != 1 {
		t.Errorf("Expected 1 activity, got %d", statsResp.Data.TotalActivities)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/activities", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on clear, got %d", w.Code)
	}

	if logger.Len() != 0 {
		t.Errorf("Expected log emptied, got %d entries", logger.Len())
	}
}
