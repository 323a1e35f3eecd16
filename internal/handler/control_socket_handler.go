package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ptz-panel/internal/controller"
	"ptz-panel/internal/presets"
	"ptz-panel/internal/types"
)

const pingInterval = 30 * time.Second

// ControlSocketHandler канал управления экрана: открытие сокета монтирует
// обработчик клавиатуры, закрытие - отключает его.
type ControlSocketHandler struct {
	logger      *zap.Logger
	coordinator *controller.Coordinator
	upgrader    websocket.Upgrader

	mu        sync.RWMutex
	listeners map[uint64]*controller.KeyListener
}

// NewControlSocketHandler создает хендлер. Пустой allowedOrigins или "*" разрешает любой Origin.
func NewControlSocketHandler(
	logger *zap.Logger,
	coordinator *controller.Coordinator,
	allowedOrigins []string,
) *ControlSocketHandler {
	return &ControlSocketHandler{
		logger:      logger,
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		listeners: make(map[uint64]*controller.KeyListener),
	}
}

// RegisterRoutes регистрирует маршруты
func (h *ControlSocketHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/ws/control", h.Control)
}

// ActiveListeners количество смонтированных экранов управления
func (h *ControlSocketHandler) ActiveListeners() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// controlSession одно подключение экрана управления
type controlSession struct {
	conn       *websocket.Conn
	listener   *controller.KeyListener
	acks       chan types.ControlAck
	writerDone chan struct{}
}

// Control обрабатывает WebSocket канала управления
func (h *ControlSocketHandler) Control(c *gin.Context) {
	if h.coordinator.Screen() != controller.ScreenControl {
		c.JSON(http.StatusConflict, response("error", "camera is not configured", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	session := &controlSession{
		conn:       conn,
		listener:   h.coordinator.ControlScreen().Mount(),
		acks:       make(chan types.ControlAck, 16),
		writerDone: make(chan struct{}),
	}
	h.register(session.listener)

	h.logger.Info("Control screen mounted",
		zap.Uint64("listener_id", session.listener.ID()),
		zap.String("client_ip", c.ClientIP()))

	done := make(chan struct{})
	go h.writeMessages(session, done)

	h.readMessages(session)

	close(done)
	<-session.writerDone
	session.listener.Unmount()
	h.unregister(session.listener)
	conn.Close()

	h.logger.Info("Control screen unmounted",
		zap.Uint64("listener_id", session.listener.ID()))
}

func (h *ControlSocketHandler) register(l *controller.KeyListener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners[l.ID()] = l
}

func (h *ControlSocketHandler) unregister(l *controller.KeyListener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, l.ID())
}

// readMessages читает события клавиатуры и кликов до закрытия сокета
func (h *ControlSocketHandler) readMessages(session *controlSession) {
	for {
		messageType, message, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		ack := h.handleMessage(session, message)
		select {
		case session.acks <- ack:
		case <-session.writerDone:
			return
		}
	}
}

func (h *ControlSocketHandler) handleMessage(session *controlSession, message []byte) types.ControlAck {
	ack := types.ControlAck{Type: types.MessageAck}

	var msg types.ControlMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		ack.Error = "invalid message"
		return ack
	}

	switch msg.Type {
	case types.MessageKeyDown:
		ack.Zone, ack.Handled = session.listener.KeyDown(msg.Key)
	case types.MessageClick:
		if !presets.Valid(msg.Zone) {
			ack.Error = fmt.Sprintf("unknown zone: %d", msg.Zone)
			return ack
		}
		h.coordinator.ControlScreen().Press(msg.Zone, controller.SourceClick)
		ack.Zone, ack.Handled = msg.Zone, true
	default:
		ack.Error = fmt.Sprintf("unknown message type: %q", msg.Type)
	}
	return ack
}

// writeMessages единственный писатель в сокет: подтверждения и ping
func (h *ControlSocketHandler) writeMessages(session *controlSession, done <-chan struct{}) {
	defer close(session.writerDone)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ack := <-session.acks:
			if err := session.conn.WriteJSON(ack); err != nil {
				h.logger.Warn("WebSocket write error", zap.Error(err))
				session.conn.Close()
				return
			}
		case <-ticker.C:
			if err := session.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				session.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}
