package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/themobileprof/portfolio-concierge/internal/api/middleware"
	"github.com/themobileprof/portfolio-concierge/internal/db"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
)

// UnansweredLister reads question statistics from the query log
type UnansweredLister interface {
	Unanswered(ctx context.Context, since time.Time, limit int) ([]db.UnansweredQuery, error)
}

// AdminHandler handles the owner's management endpoints
type AdminHandler struct {
	store    *knowledge.Store
	queryLog UnansweredLister
}

// NewAdminHandler creates a new admin handler. queryLog may be nil.
func NewAdminHandler(store *knowledge.Store, queryLog UnansweredLister) *AdminHandler {
	return &AdminHandler{
		store:    store,
		queryLog: queryLog,
	}
}

// Reload re-reads the knowledge record from its configured source
// POST /api/admin/reload
func (h *AdminHandler) Reload(c *gin.Context) {
	rec, err := h.store.Reload(c.Request.Context())
	if err != nil {
		logger := middleware.GetLogger(c)
		logger.Error().Err(err).Msg("admin reload failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "reloaded",
		"summary": knowledge.Summarize(rec),
	})
}

// Unanswered lists the questions visitors asked that ended in the unknown
// refusal, most frequent first
// GET /api/admin/unanswered?days=7&limit=20
func (h *AdminHandler) Unanswered(c *gin.Context) {
	days := 7
	if d, err := strconv.Atoi(c.Query("days")); err == nil && d > 0 && d <= 365 {
		days = d
	}
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	since := time.Now().AddDate(0, 0, -days)
	queries, err := h.queryLog.Unanswered(c.Request.Context(), since, limit)
	if err != nil {
		logger := middleware.GetLogger(c)
		logger.Error().Err(err).Msg("failed to list unanswered queries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve unanswered queries"})
		return
	}
	if queries == nil {
		queries = []db.UnansweredQuery{}
	}

	c.JSON(http.StatusOK, gin.H{
		"since":   since.UTC().Format(time.RFC3339),
		"queries": queries,
	})
}
