package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"evzone/backend/services/console/internal/appctx"
)

// Server upgrades console requests to live-update sockets.
type Server struct {
	hub          *Hub
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds ws server. Only same-origin upgrades are accepted unless origins lists others.
func NewServer(hub *Hub, writeTimeout time.Duration, origins []string, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &Server{
		hub:          hub,
		logger:       logger,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
	}
}

// HandleWS is HTTP handler for GET /api/ws.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	c, ok := appctx.FromContext(r.Context())
	if !ok {
		http.Error(w, "client context missing", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connection := NewConnection(c.ClientID, conn, s.writeTimeout, s.logger, s.hub.Detach)
	s.hub.Attach(c, connection)
	go connection.Start()
	s.logger.Info("live client connected", zap.String("client_id", c.ClientID))
}
