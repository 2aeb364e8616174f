package model

import "time"

// ActivityLog is one entry of the in-memory audit trail. Entries are
// immutable once appended; the log itself is non-durable and capped.
type ActivityLog struct {
	ActorID     string            `json:"actor_id,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	IPAddress   string            `json:"ip_address"`
	UserAgent   string            `json:"user_agent"`
	StatusCode  int               `json:"status_code,omitempty"`
	PathParams  map[string]string `json:"path_params,omitempty"`
	QueryParams map[string]string `json:"query_params,omitempty"`
	DurationMs  int64             `json:"duration_ms"`
	Note        string            `json:"note,omitempty"`
}

// ActivityStats is the aggregate view served to administrators.
type ActivityStats struct {
	TotalActivities int            `json:"total_activities"`
	TotalActors     int            `json:"total_actors"`
	MethodCounts    map[string]int `json:"method_counts"`
	LastActivity    *time.Time     `json:"last_activity,omitempty"`
}
