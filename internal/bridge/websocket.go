package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketConn is a Conn over a websocket, for a solver running in another process
type WebSocketConn struct {
	conn *websocket.Conn
	wmu  sync.Mutex // gorilla allows one concurrent writer
}

// Dial connects to a solver websocket endpoint such as ws://localhost:8090/solver.
func Dial(ctx context.Context, url string) (*WebSocketConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &WebSocketConn{conn: conn}, nil
}

// NewWebSocketConn wraps an established connection.
func NewWebSocketConn(conn *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{conn: conn}
}

func (c *WebSocketConn) Send(ctx context.Context, data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
		defer c.conn.SetWriteDeadline(time.Time{})
	}
	return closedOr(c.conn.WriteMessage(websocket.TextMessage, data))
}

// Recv blocks until the next message. The context is not consulted; close
// the connection to stop a pending Recv.
func (c *WebSocketConn) Recv(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := c.conn.ReadMessage()
		if err != nil {
			return nil, closedOr(err)
		}
		if typ == websocket.TextMessage || typ == websocket.BinaryMessage {
			return data, nil
		}
	}
}

// Close sends a close frame and closes the connection.
func (c *WebSocketConn) Close() error {
	c.wmu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.wmu.Unlock()
	return c.conn.Close()
}

func closedOr(err error) error {
	if err == nil {
		return nil
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, websocket.ErrCloseSent) || errors.Is(err, net.ErrClosed) {
		return ErrClosed
	}
	return err
}

// Handler serves w over websocket connections. All connections share the one
// worker, so requests from every client are still run one at a time.
func Handler(w *Worker, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	upgrader := websocket.Upgrader{}

	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			logger.Error("websocket upgrade", "error", err)
			return
		}
		conn := NewWebSocketConn(ws)
		defer conn.Close()

		logger.Info("solver client connected", "remote", r.RemoteAddr)
		if err := w.Serve(r.Context(), conn); err != nil {
			logger.Warn("solver client disconnected", "remote", r.RemoteAddr, "error", err)
			return
		}
		logger.Info("solver client disconnected", "remote", r.RemoteAddr)
	})
}
