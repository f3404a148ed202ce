package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/alexiusacademia/goframe/internal/results"
)

// Client sends requests to a solver context and matches responses by id.
// Each pending request holds a single resolver channel; a response for an id
// nobody waits on any more is dropped.
type Client struct {
	conn   Conn
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]chan Message
	err     error // set once the read loop stops

	seq  atomic.Uint64
	done chan struct{}
}

// NewClient starts reading responses from conn. A nil logger uses slog.Default().
func NewClient(conn Conn, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		conn:    conn,
		logger:  logger,
		pending: map[string]chan Message{},
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// NewID returns a fresh message id.
func (c *Client) NewID() string {
	return "req-" + strconv.FormatUint(c.seq.Add(1), 10)
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		data, err := c.conn.Recv(context.Background())
		if err != nil {
			c.mu.Lock()
			c.err = err
			if errors.Is(err, ErrClosed) {
				c.err = ErrClosed
			}
			c.mu.Unlock()
			return
		}

		msg, err := Decode(data)
		if err != nil {
			c.logger.Warn("dropping malformed response", "error", err)
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[msg.ID]
		delete(c.pending, msg.ID)
		c.mu.Unlock()

		if !ok {
			c.logger.Debug("dropping response without a waiting request", "id", msg.ID, "type", msg.Type)
			continue
		}
		ch <- msg
	}
}

// Call sends msg and waits for the response carrying the same id. When ctx
// ends first the request is abandoned: the solver still completes it and its
// response is discarded.
func (c *Client) Call(ctx context.Context, msg Message) (Message, error) {
	if msg.ID == "" {
		return Message{}, fmt.Errorf("bridge: message has no id")
	}
	data, err := Encode(msg)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s request: %w", msg.Type, err)
	}

	ch := make(chan Message, 1)
	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return Message{}, err
	}
	if _, dup := c.pending[msg.ID]; dup {
		c.mu.Unlock()
		return Message{}, fmt.Errorf("%w: %s", ErrDuplicateID, msg.ID)
	}
	c.pending[msg.ID] = ch
	c.mu.Unlock()

	if err := c.conn.Send(ctx, data); err != nil {
		c.forget(msg.ID)
		return Message{}, fmt.Errorf("send %s request: %w", msg.Type, err)
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		c.forget(msg.ID)
		return Message{}, ctx.Err()
	case <-c.done:
		c.forget(msg.ID)
		// the response may have been delivered just before the loop stopped
		select {
		case resp := <-ch:
			return resp, nil
		default:
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		return Message{}, c.err
	}
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Pending returns the number of requests waiting for a response.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Init asks the solver context to initialize and waits until it is ready.
func (c *Client) Init(ctx context.Context) error {
	resp, err := c.Call(ctx, Message{ID: c.NewID(), Type: KindInit})
	if err != nil {
		return err
	}
	switch resp.Type {
	case KindReady:
		return nil
	case KindError:
		return errorFrom(resp)
	}
	return fmt.Errorf("unexpected %s response to init", resp.Type)
}

// Ping reports whether the solver context is initialized.
func (c *Client) Ping(ctx context.Context) (bool, error) {
	resp, err := c.Call(ctx, Message{ID: c.NewID(), Type: KindPing})
	if err != nil {
		return false, err
	}
	switch resp.Type {
	case KindPong:
		var p PongPayload
		if err := resp.DecodePayload(&p); err != nil {
			return false, err
		}
		return p.Initialized, nil
	case KindError:
		return false, errorFrom(resp)
	}
	return false, fmt.Errorf("unexpected %s response to ping", resp.Type)
}

// Analyze runs one analysis and returns its validated result.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*results.AnalysisResult, error) {
	return c.AnalyzeWithID(ctx, c.NewID(), req)
}

// AnalyzeWithID is Analyze with a caller-chosen message id.
func (c *Client) AnalyzeWithID(ctx context.Context, id string, req AnalyzeRequest) (*results.AnalysisResult, error) {
	msg, err := NewMessage(id, KindAnalyze, req)
	if err != nil {
		return nil, err
	}
	resp, err := c.Call(ctx, msg)
	if err != nil {
		return nil, err
	}
	switch resp.Type {
	case KindResults:
		if len(resp.Payload) == 0 {
			return nil, fmt.Errorf("results message %s has no payload", resp.ID)
		}
		return results.Decode(resp.Payload)
	case KindError:
		return nil, errorFrom(resp)
	}
	return nil, fmt.Errorf("unexpected %s response to analyze", resp.Type)
}

// Close closes the connection. Waiting calls return ErrClosed.
func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.done
	return err
}

func errorFrom(resp Message) error {
	var p ErrorPayload
	if err := resp.DecodePayload(&p); err != nil {
		return err
	}
	return newSolverError(p)
}
