package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"callbridge/internal/metrics"
	"callbridge/internal/observability"
	"callbridge/internal/voice/audio"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTransportDecode     = errors.New("telephony message could not be decoded")
	ErrTransportClosed     = errors.New("telephony connection lost")
	ErrBackendClosed       = errors.New("agent connection lost")
	ErrStreamIDUnavailable = errors.New("stream id not yet known")
	ErrSessionStarted      = errors.New("session already started")
)

// Config tunes one relay session.
type Config struct {
	FramesPerChunk    int           // Telephony frames per chunk sent to the agent
	FrameBytes        int           // Size of one telephony frame
	QueueCapacity     int           // Chunks buffered between receiver and transmitter
	KeepAliveInterval time.Duration // Idle time before a keep-alive; zero disables
	DrainTimeout      time.Duration // Longest wait for queued audio to reach the agent at teardown
}

func DefaultConfig() Config {
	return Config{
		FramesPerChunk:    20,
		FrameBytes:        audio.TwilioFrameBytes,
		QueueCapacity:     64,
		KeepAliveInterval: 5 * time.Second,
		DrainTimeout:      2 * time.Second,
	}
}

// ChunkThreshold is the exact size of every chunk forwarded mid-call.
func (c Config) ChunkThreshold() int {
	return c.FramesPerChunk * c.FrameBytes
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FramesPerChunk <= 0 {
		c.FramesPerChunk = def.FramesPerChunk
	}
	if c.FrameBytes <= 0 {
		c.FrameBytes = def.FrameBytes
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = def.QueueCapacity
	}
	if c.KeepAliveInterval < 0 {
		c.KeepAliveInterval = 0
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = def.DrainTimeout
	}
	return c
}

// Stats are running totals for one session.
type Stats struct {
	InboundBytes    int64
	ChunksForwarded int64
	BytesForwarded  int64
	OutboundFrames  int64
	BargeIns        int64
	KeepAlives      int64
	StartTime       time.Time
	EndTime         time.Time
}

// Session relays one call between a telephony media stream and an agent.
type Session struct {
	id        string
	telephony Conn
	agent     Conn
	logger    *observability.Logger
	metrics   *metrics.Metrics
	config    Config

	correlator *StreamCorrelator
	sender     *TelephonySender
	queue      chan []byte
	state      stateMachine
	started    atomic.Bool

	transmitterDone chan struct{}
	agentCloseOnce  sync.Once

	stats Stats
	mu    sync.RWMutex
}

func NewSession(telephony, agent Conn, logger *observability.Logger, m *metrics.Metrics, config Config) *Session {
	config = config.withDefaults()
	correlator := NewStreamCorrelator()
	return &Session{
		id:              uuid.New().String(),
		telephony:       telephony,
		agent:           agent,
		logger:          logger,
		metrics:         m,
		config:          config,
		correlator:      correlator,
		sender:          NewTelephonySender(telephony, correlator),
		queue:           make(chan []byte, config.QueueCapacity),
		transmitterDone: make(chan struct{}),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	return s.state.load()
}

// StreamID returns the call's stream id once the start event has arrived.
func (s *Session) StreamID() (string, bool) {
	return s.correlator.Value()
}

func (s *Session) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := s.stats
	if stats.EndTime.IsZero() {
		stats.EndTime = time.Now()
	}
	return stats
}

// Run relays audio until the call stops or either side goes away. Both
// connections are closed before it returns. A clean stop returns nil.
func (s *Session) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrSessionStarted
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "session_id", Value: s.id})
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.stats.StartTime = time.Now()
	s.mu.Unlock()
	s.metrics.SessionsActive.Inc()
	s.logger.Info(ctx, "Starting call session")

	var g errgroup.Group
	g.Go(func() error { return s.receiveTelephony(runCtx, cancel) })
	g.Go(func() error { return s.transmitToAgent(runCtx, cancel) })
	g.Go(func() error { return s.receiveFromAgent(runCtx, cancel) })
	g.Go(func() error {
		<-runCtx.Done()
		s.state.advance(StateClosing)
		// Closing telephony unblocks its reader; the agent side waits for the
		// transmitter to drain what was already queued, but no longer than
		// DrainTimeout. A stalled agent write is unblocked by the close.
		_ = s.sender.Close()
		drain := time.NewTimer(s.config.DrainTimeout)
		defer drain.Stop()
		select {
		case <-s.transmitterDone:
			s.closeAgent(true)
		case <-drain.C:
			s.logger.Warn(ctx, "Agent write stalled at teardown, closing without drain")
			s.closeAgent(false)
		}
		return nil
	})

	err := g.Wait()
	s.finish(ctx, err)
	return err
}

func (s *Session) finish(ctx context.Context, err error) {
	s.state.advance(StateClosed)

	s.mu.Lock()
	s.stats.EndTime = time.Now()
	duration := s.stats.EndTime.Sub(s.stats.StartTime)
	s.mu.Unlock()

	outcome := classify(err)
	s.metrics.SessionsActive.Dec()
	s.metrics.SessionsTotal.WithLabelValues(outcome).Inc()
	s.metrics.SessionDuration.Observe(duration.Seconds())

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "outcome", Value: outcome},
		observability.Field{Key: "duration_ms", Value: duration.Milliseconds()},
	)
	if err != nil {
		s.logger.Error(ctx, "Call session ended with error", err)
		return
	}
	s.logger.Info(ctx, "Call session ended")
}

func classify(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCompleted
	case errors.Is(err, ErrTransportDecode):
		return metrics.OutcomeDecodeError
	case errors.Is(err, ErrBackendClosed):
		return metrics.OutcomeBackendClosed
	default:
		return metrics.OutcomeTransportError
	}
}

// closeAgent closes the agent connection once. The close frame is only
// written when no other write can be in flight.
func (s *Session) closeAgent(graceful bool) {
	s.agentCloseOnce.Do(func() {
		if graceful {
			_ = s.agent.WriteMessage(websocket.CloseMessage, normalClosure())
		}
		_ = s.agent.Close()
	})
}

func (s *Session) addStats(update func(*Stats)) {
	s.mu.Lock()
	update(&s.stats)
	s.mu.Unlock()
}

func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
