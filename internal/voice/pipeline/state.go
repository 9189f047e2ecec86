package pipeline

import "sync/atomic"

// State is the lifecycle phase of a session. Phases only move forward.
type State int32

const (
	StateConnecting State = iota
	StateStreamIdentified
	StateActive
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateStreamIdentified:
		return "stream_identified"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type stateMachine struct {
	current atomic.Int32
}

func (m *stateMachine) load() State {
	return State(m.current.Load())
}

// advance moves to next if it is later than the current state.
func (m *stateMachine) advance(next State) bool {
	for {
		cur := m.current.Load()
		if State(cur) >= next {
			return false
		}
		if m.current.CompareAndSwap(cur, int32(next)) {
			return true
		}
	}
}
