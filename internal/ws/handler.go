package ws

import (
	"net/http"
	"net/url"
	"strings"

	"job-portal/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Handler upgrades /ws requests and hands the connection to the hub. Clients
// only listen; the feed carries job and application events.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      log.FieldLogger
}

// NewHandler accepts browser connections from publicOrigin only. An empty
// origin accepts any.
func NewHandler(hub *Hub, publicOrigin string, l log.FieldLogger) *Handler {
	if l == nil {
		l = logger.Discard()
	}
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(publicOrigin),
		},
		log: l,
	}
}

func originChecker(publicOrigin string) func(r *http.Request) bool {
	want := strings.TrimRight(publicOrigin, "/")
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if want == "" || origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Scheme+"://"+u.Host, want)
	}
}

func (h *Handler) Handle(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.WithField(logger.ErrorTypeField, logger.ErrorTypeWS).WithError(err).Warn("ws upgrade failed")
			return
		}

		client := NewClient(h.hub, conn)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})(c)
}
