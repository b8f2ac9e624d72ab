// Package live pushes identity and scope changes to connected browsers.
package live

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/services/console/internal/appctx"
	"evzone/backend/services/console/internal/identity"
)

// Message types sent to browsers.
const (
	TypeIdentity = "identity"
	TypeScope    = "scope"
)

// Message is the JSON frame pushed over the socket.
type Message struct {
	Type     string          `json:"type"`
	Identity *identity.Event `json:"identity,omitempty"`
	Scope    *access.Scope   `json:"scope,omitempty"`
}

type client struct {
	conns   map[*Connection]struct{}
	release []func()
}

// Hub tracks the sockets of each client and fans out its store events.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	logger  *zap.Logger
}

// NewHub builds hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{clients: make(map[string]*client), logger: logger}
}

// Attach registers conn for c. The first connection of a client subscribes to its stores
// and holds the context; the last one to detach undoes both.
func (h *Hub) Attach(c *appctx.Context, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl, ok := h.clients[c.ClientID]
	if !ok {
		cl = &client{conns: make(map[*Connection]struct{})}
		cl.release = []func(){
			c.Hold(),
			c.Identity.Subscribe(func(e identity.Event) {
				h.Broadcast(c.ClientID, Message{Type: TypeIdentity, Identity: &e})
			}),
			c.Scope.Subscribe(func(s access.Scope) {
				h.Broadcast(c.ClientID, Message{Type: TypeScope, Scope: &s})
			}),
		}
		h.clients[c.ClientID] = cl
	}
	cl.conns[conn] = struct{}{}
}

// Detach removes conn.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl, ok := h.clients[conn.ClientID()]
	if !ok {
		return
	}
	delete(cl.conns, conn)
	if len(cl.conns) > 0 {
		return
	}
	for _, release := range cl.release {
		release()
	}
	delete(h.clients, conn.ClientID())
}

// Broadcast sends msg to every socket of clientID.
func (h *Hub) Broadcast(clientID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode live message", zap.Error(err))
		return
	}

	h.mu.Lock()
	cl, ok := h.clients[clientID]
	var conns []*Connection
	if ok {
		conns = make([]*Connection, 0, len(cl.conns))
		for conn := range cl.conns {
			conns = append(conns, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Send(data)
	}
}

// Connections returns the number of open sockets of clientID.
func (h *Hub) Connections(clientID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cl, ok := h.clients[clientID]; ok {
		return len(cl.conns)
	}
	return 0
}
