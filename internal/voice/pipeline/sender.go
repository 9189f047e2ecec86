package pipeline

import (
	"errors"
	"sync"

	"callbridge/internal/voicecall/twilio"

	"github.com/gorilla/websocket"
)

var ErrSenderClosed = errors.New("telephony sender closed")

// TelephonySender writes media and clear messages back to the call. Writes
// are serialized; the connection is closed exactly once.
type TelephonySender struct {
	conn       Conn
	correlator *StreamCorrelator

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

func NewTelephonySender(conn Conn, correlator *StreamCorrelator) *TelephonySender {
	return &TelephonySender{conn: conn, correlator: correlator}
}

// SendMedia wraps one agent audio frame in a media envelope.
func (s *TelephonySender) SendMedia(payload []byte) error {
	streamSid, ok := s.correlator.Value()
	if !ok {
		return ErrStreamIDUnavailable
	}
	msg, err := twilio.EncodeMedia(streamSid, payload)
	if err != nil {
		return err
	}
	return s.write(msg)
}

// SendClear tells the call to drop any audio it has buffered for playback.
func (s *TelephonySender) SendClear() error {
	streamSid, ok := s.correlator.Value()
	if !ok {
		return ErrStreamIDUnavailable
	}
	msg, err := twilio.EncodeClear(streamSid)
	if err != nil {
		return err
	}
	return s.write(msg)
}

func (s *TelephonySender) write(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSenderClosed
	}
	return s.conn.WriteMessage(websocket.TextMessage, msg)
}

// Close sends a close frame when no write is in flight, then closes the
// connection. Later calls return the first result.
func (s *TelephonySender) Close() error {
	s.closeOnce.Do(func() {
		if s.mu.TryLock() {
			s.closed = true
			_ = s.conn.WriteMessage(websocket.CloseMessage, normalClosure())
			s.mu.Unlock()
		}
		s.closeErr = s.conn.Close()
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	})
	return s.closeErr
}
