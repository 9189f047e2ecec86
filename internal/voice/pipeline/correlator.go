package pipeline

import (
	"context"
	"sync"
)

// StreamCorrelator hands the call's stream id from the telephony receiver to
// the parts of the session that address outbound messages. It can be set once.
type StreamCorrelator struct {
	once  sync.Once
	ready chan struct{}
	value string
}

func NewStreamCorrelator() *StreamCorrelator {
	return &StreamCorrelator{ready: make(chan struct{})}
}

// Set stores id and reports whether this call was the one that stored it.
func (c *StreamCorrelator) Set(id string) bool {
	stored := false
	c.once.Do(func() {
		c.value = id
		stored = true
		close(c.ready)
	})
	return stored
}

// Wait blocks until the id is set or ctx is done.
func (c *StreamCorrelator) Wait(ctx context.Context) (string, error) {
	select {
	case <-c.ready:
		return c.value, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *StreamCorrelator) Value() (string, bool) {
	select {
	case <-c.ready:
		return c.value, true
	default:
		return "", false
	}
}
