package pipeline

import (
	"context"
	"errors"
	"io"

	"callbridge/internal/observability"
	"callbridge/internal/voicecall/twilio"

	"github.com/gorilla/websocket"
)

// receiveTelephony decodes caller messages, regroups caller audio into
// fixed-size chunks and queues them for the agent.
func (s *Session) receiveTelephony(ctx context.Context, cancel context.CancelFunc) error {
	defer cancel()
	defer s.state.advance(StateClosing)

	threshold := s.config.ChunkThreshold()
	buffer := make([]byte, 0, threshold*2)

	for {
		messageType, data, err := s.telephony.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if isClosedByPeer(err) || errors.Is(err, io.EOF) {
				s.logger.Info(ctx, "Telephony connection closed without stop")
				return nil
			}
			return wrap(ErrTransportClosed, err)
		}
		if messageType != websocket.TextMessage {
			s.logger.Debug(ctx, "Ignoring non-text telephony message")
			continue
		}

		msg, err := twilio.DecodeInbound(data)
		if err != nil {
			return wrap(ErrTransportDecode, err)
		}

		switch msg.Event {
		case twilio.EventConnected:
			s.logger.Debug(ctx, "Telephony stream connected")

		case twilio.EventStart:
			streamSid := msg.Start.StreamSid
			if !s.correlator.Set(streamSid) {
				s.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "duplicate_stream_sid", Value: streamSid}),
					"Duplicate start event ignored")
				continue
			}
			ctx = observability.WithFields(ctx, observability.Field{Key: "stream_sid", Value: streamSid})
			s.state.advance(StateStreamIdentified)
			s.logger.Info(ctx, "Telephony stream started")

		case twilio.EventMedia:
			if msg.Media.Track != "" && msg.Media.Track != twilio.TrackInbound {
				continue
			}
			payload, err := msg.Media.Audio()
			if err != nil {
				return wrap(ErrTransportDecode, err)
			}
			s.metrics.InboundBytes.Add(float64(len(payload)))
			s.addStats(func(st *Stats) { st.InboundBytes += int64(len(payload)) })

			buffer = append(buffer, payload...)
			for len(buffer) >= threshold {
				chunk := make([]byte, threshold)
				copy(chunk, buffer)
				buffer = append(buffer[:0], buffer[threshold:]...)
				if !s.enqueue(ctx, chunk) {
					return nil
				}
			}

		case twilio.EventStop:
			if len(buffer) > 0 {
				chunk := make([]byte, len(buffer))
				copy(chunk, buffer)
				s.enqueue(ctx, chunk)
			}
			s.logger.Info(ctx, "Telephony stream stopped")
			return nil

		default:
			s.logger.Debug(ctx, "Ignoring telephony event "+msg.Event)
		}
	}
}

// enqueue blocks while the queue is full. It reports false if the session
// ended first.
func (s *Session) enqueue(ctx context.Context, chunk []byte) bool {
	select {
	case s.queue <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
