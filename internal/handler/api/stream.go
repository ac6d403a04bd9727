package api

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/pkg/config"
	"court-grid/internal/usecase"
	"court-grid/internal/usecase/projection"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamBuffer = 256
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
)

// StreamHandler pushes every store change to websocket clients, one JSON
// frame per change.
type StreamHandler struct {
	engine   usecase.Engine
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewStreamHandler(engine usecase.Engine, cfg config.Config, logger *slog.Logger) *StreamHandler {
	allowed := cfg.CORS.AllowOrigins
	return &StreamHandler{
		engine: engine,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
			},
		},
		logger: logger,
	}
}

// @Summary Change stream
// @Description Websocket; the first frame is the current selection, then one frame per store change
// @Tags stream
// @Router /stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	send := make(chan resdto.ChangeMessage, streamBuffer)
	overflow := make(chan struct{})
	var overflowOnce sync.Once
	unsubscribe := h.engine.Subscribe(func(change projection.Change) {
		msg, err := resdto.FromChange(change)
		if err != nil {
			h.logger.Error("failed to encode store change", "kind", change.Kind, "error", err)
			return
		}
		select {
		case send <- msg:
		default:
			// A client that cannot keep up must resync with GET /grid.
			overflowOnce.Do(func() { close(overflow) })
		}
	})

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, send, overflow, done)
	unsubscribe()
}

func (h *StreamHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) writePump(conn *websocket.Conn, send <-chan resdto.ChangeMessage, overflow, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	sel := resdto.FromSelection(h.engine.Selection())
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(gin.H{"kind": "selection", "selection": sel}); err != nil {
		return
	}

	for {
		select {
		case msg := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-overflow:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "stream overflow"))
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
