package pipeline

import (
	"context"
	"errors"
	"time"

	"callbridge/internal/clients/deepgram"
	"callbridge/internal/observability"

	"github.com/gorilla/websocket"
)

// transmitToAgent writes queued chunks to the agent unmodified.
func (s *Session) transmitToAgent(ctx context.Context, cancel context.CancelFunc) error {
	defer close(s.transmitterDone)
	defer cancel()
	defer s.state.advance(StateClosing)

	var keepAlive <-chan time.Time
	if s.config.KeepAliveInterval > 0 {
		ticker := time.NewTicker(s.config.KeepAliveInterval)
		defer ticker.Stop()
		keepAlive = ticker.C
	}
	lastWrite := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.drainQueue(ctx)
			return nil

		case chunk := <-s.queue:
			if err := s.writeChunk(chunk); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return wrap(ErrBackendClosed, err)
			}
			lastWrite = time.Now()

		case <-keepAlive:
			if time.Since(lastWrite) < s.config.KeepAliveInterval {
				continue
			}
			if err := s.agent.WriteMessage(websocket.TextMessage, deepgram.KeepAliveMessage); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return wrap(ErrBackendClosed, err)
			}
			lastWrite = time.Now()
			s.metrics.KeepAlivesSent.Inc()
			s.addStats(func(st *Stats) { st.KeepAlives++ })
		}
	}
}

func (s *Session) writeChunk(chunk []byte) error {
	if err := s.agent.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
		return err
	}
	s.metrics.ChunksForwarded.Inc()
	s.addStats(func(st *Stats) {
		st.ChunksForwarded++
		st.BytesForwarded += int64(len(chunk))
	})
	return nil
}

// drainQueue forwards chunks that were queued before shutdown without
// waiting for more.
func (s *Session) drainQueue(ctx context.Context) {
	for {
		select {
		case chunk := <-s.queue:
			if err := s.writeChunk(chunk); err != nil {
				s.logger.InfoWithError(ctx, "Dropping queued audio after agent write failure", err)
				return
			}
		default:
			return
		}
	}
}

// receiveFromAgent relays agent speech to the call and acts on agent events.
func (s *Session) receiveFromAgent(ctx context.Context, cancel context.CancelFunc) error {
	defer cancel()
	defer s.state.advance(StateClosing)

	streamSid, err := s.correlator.Wait(ctx)
	if err != nil {
		return nil
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "stream_sid", Value: streamSid})
	s.state.advance(StateActive)

	for {
		messageType, data, err := s.agent.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return wrap(ErrBackendClosed, err)
		}

		switch messageType {
		case websocket.TextMessage:
			if err := s.handleAgentEvent(ctx, data); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return wrap(ErrTransportClosed, err)
			}

		case websocket.BinaryMessage:
			if err := s.sender.SendMedia(data); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return wrap(ErrTransportClosed, err)
			}
			s.metrics.OutboundFrames.Inc()
			s.addStats(func(st *Stats) { st.OutboundFrames++ })
		}
	}
}

// handleAgentEvent only returns an error when writing to the call fails.
func (s *Session) handleAgentEvent(ctx context.Context, data []byte) error {
	event, err := deepgram.DecodeEvent(data)
	if err != nil {
		var decodeErr *deepgram.DecodeError
		if errors.As(err, &decodeErr) {
			s.metrics.AgentDecodeErrors.Inc()
			s.logger.InfoWithError(ctx, "Skipping undecodable agent event", err)
			return nil
		}
		return err
	}
	s.metrics.AgentEvents.WithLabelValues(event.EventType()).Inc()

	switch e := event.(type) {
	case deepgram.UserStartedSpeaking:
		// Clear is written before the next agent message is read, so no
		// later audio can overtake it.
		if err := s.sender.SendClear(); err != nil {
			return err
		}
		s.metrics.BargeIns.Inc()
		s.addStats(func(st *Stats) { st.BargeIns++ })
		s.logger.Debug(ctx, "Caller started speaking, playback cleared")

	case deepgram.ConversationText:
		s.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "role", Value: e.Role},
			observability.Field{Key: "content", Value: e.Content},
		), "Conversation turn")

	case deepgram.Welcome:
		s.logger.Info(observability.WithFields(ctx, observability.Field{Key: "agent_request_id", Value: e.RequestID}), "Agent session opened")

	case deepgram.Warning:
		s.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "code", Value: e.Code}), "Agent warning: "+e.Description)

	case deepgram.Error:
		s.logger.Error(ctx, "Agent reported an error", errors.New(e.Code+": "+e.Description))

	case deepgram.Unknown:
		s.logger.Debug(ctx, "Unhandled agent event "+e.Type)

	default:
		s.logger.Debug(ctx, "Agent event "+event.EventType())
	}
	return nil
}
