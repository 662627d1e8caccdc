package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/hugohenrick/billing-dashboard/internal/feed"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

// FeedController entrega as alterações das coleções via WebSocket
type FeedController struct {
	hub      *feed.Hub
	upgrader websocket.Upgrader
	recorder Recorder
	logger   logger.Logger
}

// NewFeedController cria o controller. allowedOrigins vazio ou com "*" aceita qualquer origem.
func NewFeedController(hub *feed.Hub, allowedOrigins []string, recorder Recorder, logger logger.Logger) *FeedController {
	return &FeedController{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		recorder: recorderOrNop(recorder),
		logger:   logger,
	}
}

// Stream abre o feed de alterações do usuário
// @Summary Feed de alterações
// @Description Conexão WebSocket que recebe um evento JSON a cada alteração em clientes, faturas, pagamentos ou perfil. O token pode ser enviado em access_token.
// @Tags feed
// @Security BearerAuth
// @Param access_token query string false "Token JWT"
// @Success 101
// @Failure 401 {object} dto.ErrorResponse
// @Router /feed [get]
func (c *FeedController) Stream(ctx *gin.Context) {
	ownerID := owner.GetOwnerID(ctx)

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Warn("erro ao abrir conexão WebSocket", "error", err)
		return
	}
	defer conn.Close()

	events, cancel := c.hub.Subscribe(ownerID)
	defer cancel()

	c.recorder.FeedSubscribed(1)
	defer c.recorder.FeedSubscribed(-1)
	c.logger.Debug("feed conectado", "owner_id", ownerID, "subscribers", c.hub.Count())

	// O cliente não envia mensagens; a leitura só detecta o fechamento
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(feedPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Warn("erro no feed WebSocket", "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
