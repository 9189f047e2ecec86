package deepgram

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Server event types.
const (
	TypeWelcome              = "Welcome"
	TypeSettingsApplied      = "SettingsApplied"
	TypeConversationText     = "ConversationText"
	TypeUserStartedSpeaking  = "UserStartedSpeaking"
	TypeAgentThinking        = "AgentThinking"
	TypeAgentStartedSpeaking = "AgentStartedSpeaking"
	TypeAgentAudioDone       = "AgentAudioDone"
	TypePromptUpdated        = "PromptUpdated"
	TypeSpeakUpdated         = "SpeakUpdated"
	TypeInjectionRefused     = "InjectionRefused"
	TypeWarning              = "Warning"
	TypeError                = "Error"
)

// Event is one decoded control message from the agent.
type Event interface {
	EventType() string
}

type Welcome struct {
	RequestID string `json:"request_id"`
}

type SettingsApplied struct{}

type ConversationText struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type UserStartedSpeaking struct{}

type AgentThinking struct {
	Content string `json:"content"`
}

type AgentStartedSpeaking struct {
	TotalLatency float64 `json:"total_latency"`
	TTSLatency   float64 `json:"tts_latency"`
	TTTLatency   float64 `json:"ttt_latency"`
}

type AgentAudioDone struct{}

type PromptUpdated struct{}

type SpeakUpdated struct{}

type InjectionRefused struct {
	Message string `json:"message"`
}

type Warning struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}

type Error struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}

// Unknown carries any event type this client does not model yet.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (Welcome) EventType() string              { return TypeWelcome }
func (SettingsApplied) EventType() string      { return TypeSettingsApplied }
func (ConversationText) EventType() string     { return TypeConversationText }
func (UserStartedSpeaking) EventType() string  { return TypeUserStartedSpeaking }
func (AgentThinking) EventType() string        { return TypeAgentThinking }
func (AgentStartedSpeaking) EventType() string { return TypeAgentStartedSpeaking }
func (AgentAudioDone) EventType() string       { return TypeAgentAudioDone }
func (PromptUpdated) EventType() string        { return TypePromptUpdated }
func (SpeakUpdated) EventType() string         { return TypeSpeakUpdated }
func (InjectionRefused) EventType() string     { return TypeInjectionRefused }
func (Warning) EventType() string              { return TypeWarning }
func (Error) EventType() string                { return TypeError }
func (u Unknown) EventType() string            { return u.Type }

var ErrUndecodableEvent = errors.New("undecodable agent event")

// DecodeError reports a text frame that could not be turned into an Event.
type DecodeError struct {
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %v", ErrUndecodableEvent, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", ErrUndecodableEvent, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrUndecodableEvent, e.Err}
}

// DecodeEvent classifies a text frame by its "type" discriminator.
func DecodeEvent(data []byte) (Event, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &DecodeError{Err: err}
	}

	switch envelope.Type {
	case "":
		return nil, &DecodeError{Err: errors.New("missing type")}
	case TypeWelcome:
		return decodeAs[Welcome](envelope.Type, data)
	case TypeSettingsApplied:
		return SettingsApplied{}, nil
	case TypeConversationText:
		return decodeAs[ConversationText](envelope.Type, data)
	case TypeUserStartedSpeaking:
		return UserStartedSpeaking{}, nil
	case TypeAgentThinking:
		return decodeAs[AgentThinking](envelope.Type, data)
	case TypeAgentStartedSpeaking:
		return decodeAs[AgentStartedSpeaking](envelope.Type, data)
	case TypeAgentAudioDone:
		return AgentAudioDone{}, nil
	case TypePromptUpdated:
		return PromptUpdated{}, nil
	case TypeSpeakUpdated:
		return SpeakUpdated{}, nil
	case TypeInjectionRefused:
		return decodeAs[InjectionRefused](envelope.Type, data)
	case TypeWarning:
		return decodeAs[Warning](envelope.Type, data)
	case TypeError:
		return decodeAs[Error](envelope.Type, data)
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return Unknown{Type: envelope.Type, Raw: raw}, nil
	}
}

func decodeAs[T Event](eventType string, data []byte) (Event, error) {
	var event T
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, &DecodeError{Type: eventType, Err: err}
	}
	return event, nil
}
