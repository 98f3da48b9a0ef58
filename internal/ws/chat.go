package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/themobileprof/portfolio-concierge/internal/api/middleware"
	"github.com/themobileprof/portfolio-concierge/internal/chat"
)

const (
	// maxMessageBytes caps a single incoming frame
	maxMessageBytes = 4 << 10
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
)

// ChatHandler handles WebSocket chat connections from the portfolio widget
type ChatHandler struct {
	engine         *chat.Engine
	upgrader       websocket.Upgrader
	messagesPerMin int
	burst          int
	logger         zerolog.Logger
}

// NewChatHandler creates a new chat handler. allowedOrigins follows the same
// rules as the CORS middleware: "*" accepts any origin.
func NewChatHandler(engine *chat.Engine, allowedOrigins []string, messagesPerMin, burst int, logger zerolog.Logger) *ChatHandler {
	h := &ChatHandler{
		engine:         engine,
		messagesPerMin: messagesPerMin,
		burst:          burst,
		logger:         logger.With().Str("component", "ws_chat").Logger(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no Origin
		return origin == "" || set[origin]
	}
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Content string `json:"content"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type    string      `json:"type"` // "message", "error", "done"
	Content string      `json:"content,omitempty"`
	Source  string      `json:"source,omitempty"`
	Actions interface{} `json:"actions,omitempty"`
	Intent  string      `json:"intent,omitempty"`
}

// HandleChat handles WebSocket chat connections
func (h *ChatHandler) HandleChat(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	requestID := middleware.GetRequestID(c)
	remote := c.ClientIP()
	logger := h.logger.With().Str("request_id", requestID).Logger()
	logger.Debug().Msg("websocket connected")

	conn.SetReadLimit(maxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	responder := NewWSResponder(conn)
	go responder.keepAlive(ctx)

	limiter := middleware.NewWebSocketLimiter(h.messagesPerMin, h.burst)

	for {
		var msg IncomingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		if !limiter.Allow() {
			if err := responder.SendError("Too many messages. Please slow down."); err != nil {
				return
			}
			continue
		}

		if _, err := h.engine.ProcessMessage(ctx, chat.ProcessRequest{
			RequestID:  requestID,
			RemoteAddr: remote,
			Message:    msg.Content,
			Responder:  responder,
		}); err != nil {
			logger.Warn().Err(err).Msg("failed to send reply")
			return
		}
	}
}

// WSResponder implements chat.Responder for a WebSocket connection
type WSResponder struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSResponder creates a WebSocket responder
func NewWSResponder(conn *websocket.Conn) *WSResponder {
	return &WSResponder{conn: conn}
}

func (r *WSResponder) write(msg OutgoingMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return r.conn.WriteJSON(msg)
}

// SendMessage sends a resolved answer
func (r *WSResponder) SendMessage(reply chat.Reply) error {
	msg := OutgoingMessage{
		Type:    "message",
		Content: reply.Content,
		Source:  reply.Source,
		Intent:  reply.Intent,
	}
	if len(reply.Actions) > 0 {
		msg.Actions = reply.Actions
	}
	return r.write(msg)
}

// SendError sends an error message
func (r *WSResponder) SendError(message string) error {
	return r.write(OutgoingMessage{Type: "error", Content: message})
}

// SendDone signals the end of a reply
func (r *WSResponder) SendDone() error {
	return r.write(OutgoingMessage{Type: "done"})
}

func (r *WSResponder) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			err := r.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			r.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
