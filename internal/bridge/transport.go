package bridge

import (
	"context"
	"sync"
)

// Conn carries encoded messages across the isolation boundary. Only bytes
// cross it, never shared values. Send may be called concurrently; Recv is
// called from a single goroutine.
type Conn interface {
	Send(ctx context.Context, data []byte) error
	Recv(ctx context.Context) ([]byte, error)
	Close() error
}

// pipeBuffer is the number of messages each direction holds before Send blocks
const pipeBuffer = 16

type pipe struct {
	closed chan struct{}
	once   sync.Once
}

type pipeEnd struct {
	p   *pipe
	in  <-chan []byte
	out chan<- []byte
}

// Pipe returns the two ends of an in-process connection. Closing either end
// closes both.
func Pipe() (Conn, Conn) {
	p := &pipe{closed: make(chan struct{})}
	ab := make(chan []byte, pipeBuffer)
	ba := make(chan []byte, pipeBuffer)
	return &pipeEnd{p: p, in: ba, out: ab}, &pipeEnd{p: p, in: ab, out: ba}
}

func (e *pipeEnd) Send(ctx context.Context, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	select {
	case <-e.p.closed:
		return ErrClosed
	default:
	}

	select {
	case e.out <- cp:
		return nil
	case <-e.p.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *pipeEnd) Recv(ctx context.Context) ([]byte, error) {
	select {
	case data := <-e.in:
		return data, nil
	case <-e.p.closed:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *pipeEnd) Close() error {
	e.p.once.Do(func() { close(e.p.closed) })
	return nil
}
