package handler

import (
	"strconv"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ActivityHandler exposes the in-memory audit trail to administrators.
type ActivityHandler struct {
	Log *services.ActivityLogger
}

func NewActivityHandler(log *services.ActivityLogger) *ActivityHandler {
	return &ActivityHandler{Log: log}
}

// maxQueryLimit bounds how many entries one request may fetch. Enforced at
// this boundary, not inside the logger.
const maxQueryLimit = 1000

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}
	return limit
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	entries := h.Log.Query(c.Query("actor_id"), c.Query("verb"), parseLimit(c))
	utils.Success(c, gin.H{
		"activities": entries,
		"count":      len(entries),
	})
}

func (h *ActivityHandler) ListLogins(c *gin.Context) {
	entries := h.Log.QueryLogins(c.Query("actor_id"), parseLimit(c))
	utils.Success(c, gin.H{
		"logins": entries,
		"count":  len(entries),
	})
}

func (h *ActivityHandler) GetStats(c *gin.Context) {
	utils.Success(c, h.Log.Stats())
}

func (h *ActivityHandler) ClearActivities(c *gin.Context) {
	h.Log.Clear()
	utils.Success(c, gin.H{"message": "Activity log cleared"})
}
