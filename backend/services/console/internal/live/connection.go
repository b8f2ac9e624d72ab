package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxReadBytes = 4096
)

// Connection is one browser socket of a console client. Incoming messages are discarded.
type Connection struct {
	clientID     string
	ws           *websocket.Conn
	send         chan []byte
	done         chan struct{}
	closeOnce    sync.Once
	logger       *zap.Logger
	writeTimeout time.Duration
	onClose      func(*Connection)
}

// NewConnection builds connection wrapper.
func NewConnection(clientID string, ws *websocket.Conn, writeTimeout time.Duration, logger *zap.Logger, onClose func(*Connection)) *Connection {
	return &Connection{
		clientID:     clientID,
		ws:           ws,
		send:         make(chan []byte, 16),
		done:         make(chan struct{}),
		logger:       logger,
		writeTimeout: writeTimeout,
		onClose:      onClose,
	}
}

// ClientID returns the owning client.
func (c *Connection) ClientID() string {
	return c.clientID
}

// Start launches the write pump and blocks in the read pump.
func (c *Connection) Start() {
	go c.writePump()
	c.readPump()
}

func (c *Connection) readPump() {
	defer c.Close()
	c.ws.SetReadLimit(maxReadBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			c.logger.Debug("live connection read closed", zap.String("client_id", c.clientID), zap.Error(err))
			return
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			_ = c.write(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Send enqueues a message, dropping it when the buffer is full or the connection is closed.
func (c *Connection) Send(msg []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("dropping live message, buffer full", zap.String("client_id", c.clientID))
	}
}

// Close stops both pumps and releases the socket. It is safe to call repeatedly.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
		if c.onClose != nil {
			c.onClose(c)
		}
	})
}

func (c *Connection) write(messageType int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}
