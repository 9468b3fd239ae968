package realtime

import (
	"net/http"
	"strings"

	"studiobook/internal/domain"
	"studiobook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts websocket upgrades from allowedOrigins. An empty list or
// "*" allows any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || allowed[origin]
			},
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Subscribe)
}

// Subscribe upgrades to a websocket that streams change events.
// Optional ?studio=studio1,studio2 narrows the stream.
func (h *Handler) Subscribe(c *gin.Context) {
	var studios []domain.Studio
	if raw := c.Query("studio"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			s := domain.Studio(strings.TrimSpace(part))
			if !s.Valid() {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown studio "+string(s))
				return
			}
			studios = append(studios, s)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}

	h.hub.ServeWS(conn, studios)
}
