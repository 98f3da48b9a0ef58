package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themobileprof/portfolio-concierge/internal/chat"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge/knowledgetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, perMin, burst int) *httptest.Server {
	t.Helper()
	engine := chat.NewEngine(knowledge.NewStaticStore(knowledgetest.Standard()))
	h := NewChatHandler(engine, []string{"*"}, perMin, burst, zerolog.Nop())

	r := gin.New()
	r.GET("/ws/chat", h.HandleChat)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandleChat_MessageThenDone(t *testing.T) {
	conn := dial(t, newTestServer(t, 60, 10))

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "tell me about the OCR project"}))

	var msg OutgoingMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "message", msg.Type)
	assert.Equal(t, "Projects (case study)", msg.Source)
	assert.Contains(t, msg.Content, knowledgetest.OCROutcome)

	var done OutgoingMessage
	require.NoError(t, conn.ReadJSON(&done))
	assert.Equal(t, "done", done.Type)
}

func TestHandleChat_RateLimited(t *testing.T) {
	conn := dial(t, newTestServer(t, 1, 1))

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "hello"}))
	var msg OutgoingMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "done", msg.Type)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "hello again"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://example.dev"})

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://example.dev", true},
		{"https://evil.example", false},
		{"", true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws/chat", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, check(req), tt.origin)
	}

	assert.True(t, originChecker([]string{"*"})(httptest.NewRequest(http.MethodGet, "/", nil)))
}
