package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"main/model"

	"github.com/gin-gonic/gin"
)

// MaxActivityEntries caps the in-memory log. Once full, the oldest entry
// is dropped on every append (FIFO).
const MaxActivityEntries = 10000

// Automatic records are kept only for mutating verbs or for anything under
// these namespaces; plain reads elsewhere would swamp the log.
var auditNamespaces = []string{"/api/admin", "/api/auth"}

// ActivityLogger keeps a bounded audit trail of state-changing and
// administrative operations. It is process-local and non-durable; one
// instance is constructed at startup and shared through middleware and
// the admin handlers. All methods are safe for concurrent use.
type ActivityLogger struct {
	mu      sync.Mutex
	entries []*model.ActivityLog
}

func NewActivityLogger() *ActivityLogger {
	return &ActivityLogger{
		entries: make([]*model.ActivityLog, 0, 256),
	}
}

func mutatingMethod(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	}
	return false
}

func inAuditNamespace(path string) bool {
	for _, prefix := range auditNamespaces {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// append adds an entry and evicts the oldest one if the cap is exceeded.
func (al *ActivityLogger) append(entry *model.ActivityLog) {
	al.mu.Lock()
	defer al.mu.Unlock()

	al.entries = append(al.entries, entry)
	if len(al.entries) > MaxActivityEntries {
		al.entries = al.entries[1:]
	}
}

// RecordRequest captures a finished request. Pure reads outside the admin
// and auth namespaces are discarded. Recording is best-effort: any panic
// is contained here so it can never fail the request it describes.
func (al *ActivityLogger) RecordRequest(c *gin.Context, status int, elapsed time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: failed to record activity: %v", r)
		}
	}()

	method := c.Request.Method
	path := c.Request.URL.Path

	if !mutatingMethod(method) && !inAuditNamespace(path) {
		return
	}

	entry := &model.ActivityLog{
		Timestamp:  time.Now(),
		Method:     method,
		Path:       path,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		StatusCode: status,
		DurationMs: elapsed.Milliseconds(),
	}

	// Auth middleware sets user_id on protected routes. On public routes
	// the rate limiter's token resolution is the only attribution we have.
	for _, key := range []string{"user_id", "rate_user_id"} {
		if value, exists := c.Get(key); exists {
			if id, ok := value.(string); ok && id != "" {
				entry.ActorID = id
				break
			}
		}
	}

	if params := c.Params; len(params) > 0 {
		entry.PathParams = make(map[string]string, len(params))
		for _, p := range params {
			entry.PathParams[p.Key] = p.Value
		}
	}

	if query := c.Request.URL.Query(); len(query) > 0 {
		entry.QueryParams = make(map[string]string, len(query))
		for key, values := range query {
			if len(values) > 0 {
				entry.QueryParams[key] = values[0]
			}
		}
	}

	al.append(entry)
}

// RecordSystem persists an explicit entry from business logic, filling in
// defaults for missing fields. Explicit entries are never filtered.
func (al *ActivityLogger) RecordSystem(entry model.ActivityLog) {
	if entry.ActorID == "" {
		entry.ActorID = "system"
	}
	if entry.Method == "" {
		entry.Method = "SYSTEM"
	}
	if entry.Path == "" {
		entry.Path = "/internal"
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	al.append(&entry)
}

// Query returns up to limit entries filtered by actor and method, newest
// first. Empty filter values match everything.
func (al *ActivityLogger) Query(actorID, method string, limit int) []*model.ActivityLog {
	al.mu.Lock()
	defer al.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	results := make([]*model.ActivityLog, 0, limit)
	for i := len(al.entries) - 1; i >= 0 && len(results) < limit; i-- {
		entry := al.entries[i]
		if actorID != "" && entry.ActorID != actorID {
			continue
		}
		if method != "" && entry.Method != method {
			continue
		}
		results = append(results, entry)
	}
	return results
}

// QueryLogins returns successful login entries, newest first.
func (al *ActivityLogger) QueryLogins(actorID string, limit int) []*model.ActivityLog {
	al.mu.Lock()
	defer al.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	results := make([]*model.ActivityLog, 0, limit)
	for i := len(al.entries) - 1; i >= 0 && len(results) < limit; i-- {
		entry := al.entries[i]
		if entry.Method != "POST" || entry.Path != "/api/auth/login" {
			continue
		}
		if entry.StatusCode >= 400 {
			continue
		}
		if actorID != "" && entry.ActorID != actorID {
			continue
		}
		results = append(results, entry)
	}
	return results
}

// Stats aggregates the current log contents.
func (al *ActivityLogger) Stats() model.ActivityStats {
	al.mu.Lock()
	defer al.mu.Unlock()

	stats := model.ActivityStats{
		TotalActivities: len(al.entries),
		MethodCounts: map[string]int{
			"GET":    0,
			"POST":   0,
			"PUT":    0,
			"PATCH":  0,
			"DELETE": 0,
		},
	}

	actors := make(map[string]struct{})
	for _, entry := range al.entries {
		if entry.ActorID != "" {
			actors[entry.ActorID] = struct{}{}
		}
		if _, tracked := stats.MethodCounts[entry.Method]; tracked {
			stats.MethodCounts[entry.Method]++
		}
	}
	stats.TotalActors = len(actors)

	if len(al.entries) > 0 {
		last := al.entries[len(al.entries)-1].Timestamp
		stats.LastActivity = &last
	}

	return stats
}

// Clear empties the log. Irreversible.
func (al *ActivityLogger) Clear() {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.entries = al.entries[:0]
}

// Len reports the current number of entries.
func (al *ActivityLogger) Len() int {
	al.mu.Lock()
	defer al.mu.Unlock()
	return len(al.entries)
}
