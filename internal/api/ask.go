package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/themobileprof/portfolio-concierge/internal/api/middleware"
	"github.com/themobileprof/portfolio-concierge/internal/chat"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
)

// MaxMessageBytes caps the body of an ask request
const MaxMessageBytes = 4 << 10

// AskHandler answers visitor questions over plain HTTP
type AskHandler struct {
	engine  *chat.Engine
	store   *knowledge.Store
	version string
}

// NewAskHandler creates the public handler
func NewAskHandler(engine *chat.Engine, store *knowledge.Store, version string) *AskHandler {
	return &AskHandler{engine: engine, store: store, version: version}
}

// AskRequest is a visitor message
type AskRequest struct {
	Message string `json:"message"`
}

// AskResponse mirrors chat.Reply with the public field names
type AskResponse struct {
	Answer  string           `json:"answer"`
	Source  string           `json:"source"`
	Actions []knowledge.Link `json:"actions"`
	Intent  string           `json:"intent"`
}

// Ask resolves a single message
// POST /api/ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reply := h.engine.Ask(c.Request.Context(), chat.ProcessRequest{
		RequestID:  middleware.GetRequestID(c),
		RemoteAddr: c.ClientIP(),
		Message:    req.Message,
	})

	actions := reply.Actions
	if actions == nil {
		actions = []knowledge.Link{}
	}
	c.JSON(http.StatusOK, AskResponse{
		Answer:  reply.Content,
		Source:  reply.Source,
		Actions: actions,
		Intent:  reply.Intent,
	})
}

// Health reports liveness and whether a record is loaded
// GET /health
func (h *AskHandler) Health(c *gin.Context) {
	rec := h.store.Current()
	if rec == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"version": h.version,
			"error":   knowledge.ErrNoRecord.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        h.version,
		"record_version": rec.Version,
		"loaded_at":      h.store.LoadedAt().UTC().Format(time.RFC3339),
	})
}

// Summary returns section counts of the live record
// GET /api/knowledge/summary
func (h *AskHandler) Summary(c *gin.Context) {
	rec := h.store.Current()
	if rec == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": knowledge.ErrNoRecord.Error()})
		return
	}
	c.JSON(http.StatusOK, knowledge.Summarize(rec))
}
