// Package pipelinetest provides an in-memory websocket connection for
// exercising relay sessions without a network.
package pipelinetest

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Message is one websocket message read from or written to a FakeConn.
type Message struct {
	Type int
	Data []byte
}

// FakeConn scripts inbound messages and records writes.
type FakeConn struct {
	inbound chan Message

	closed     chan struct{}
	closeOnce  sync.Once
	closeCalls atomic.Int32

	remote     chan struct{}
	remoteOnce sync.Once
	remoteErr  error

	gate chan struct{}

	mu       sync.Mutex
	writes   []Message
	writeErr error
}

func NewFakeConn() *FakeConn {
	return &FakeConn{
		inbound: make(chan Message, 1024),
		closed:  make(chan struct{}),
		remote:  make(chan struct{}),
	}
}

// PushText queues a text message for ReadMessage.
func (c *FakeConn) PushText(data string) {
	c.inbound <- Message{Type: websocket.TextMessage, Data: []byte(data)}
}

// PushBinary queues a binary message for ReadMessage.
func (c *FakeConn) PushBinary(data []byte) {
	c.inbound <- Message{Type: websocket.BinaryMessage, Data: data}
}

// CloseRemote makes ReadMessage return err once queued messages are consumed.
func (c *FakeConn) CloseRemote(err error) {
	c.remoteOnce.Do(func() {
		c.remoteErr = err
		close(c.remote)
	})
}

// HoldWrites blocks every write until ReleaseWrites is called.
func (c *FakeConn) HoldWrites() {
	c.mu.Lock()
	c.gate = make(chan struct{})
	c.mu.Unlock()
}

func (c *FakeConn) ReleaseWrites() {
	c.mu.Lock()
	gate := c.gate
	c.gate = nil
	c.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// FailWrites makes every later write return err.
func (c *FakeConn) FailWrites(err error) {
	c.mu.Lock()
	c.writeErr = err
	c.mu.Unlock()
}

func (c *FakeConn) ReadMessage() (int, []byte, error) {
	select {
	case <-c.closed:
		return 0, nil, net.ErrClosed
	default:
	}
	select {
	case m := <-c.inbound:
		return m.Type, m.Data, nil
	default:
	}
	select {
	case m := <-c.inbound:
		return m.Type, m.Data, nil
	case <-c.remote:
		return 0, nil, c.remoteErr
	case <-c.closed:
		return 0, nil, net.ErrClosed
	}
}

func (c *FakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	gate := c.gate
	c.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-c.closed:
			return net.ErrClosed
		}
	}

	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	c.writes = append(c.writes, Message{Type: messageType, Data: buf})
	return nil
}

func (c *FakeConn) Close() error {
	c.closeCalls.Add(1)
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// CloseCalls returns how many times Close was called.
func (c *FakeConn) CloseCalls() int {
	return int(c.closeCalls.Load())
}

// IsClosed reports whether Close has been called.
func (c *FakeConn) IsClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Writes returns a copy of every successful write so far.
func (c *FakeConn) Writes() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.writes))
	copy(out, c.writes)
	return out
}

// WritesOfType filters Writes by websocket message type.
func (c *FakeConn) WritesOfType(messageType int) []Message {
	var out []Message
	for _, m := range c.Writes() {
		if m.Type == messageType {
			out = append(out, m)
		}
	}
	return out
}

// ErrRemoteGone is a convenient error for CloseRemote.
var ErrRemoteGone = errors.New("remote went away")
