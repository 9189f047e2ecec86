package pipeline

import (
	"github.com/gorilla/websocket"
)

// Conn is the message-oriented subset of *websocket.Conn a session needs.
// ReadMessage may run concurrently with one writer and with Close.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

func normalClosure() []byte {
	return websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
}

// isClosedByPeer reports whether err is an orderly close from the other side.
func isClosedByPeer(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
