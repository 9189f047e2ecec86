package twilio

import (
	"encoding/json"
	"errors"
	"fmt"

	"callbridge/internal/voice/audio"
)

// Twilio Media Streams event names.
const (
	EventConnected = "connected"
	EventStart     = "start"
	EventMedia     = "media"
	EventStop      = "stop"
	EventMark      = "mark"
	EventDTMF      = "dtmf"
	EventClear     = "clear"

	TrackInbound  = "inbound"
	TrackOutbound = "outbound"
)

// ErrMalformedMessage is returned for frames that are not valid media stream messages.
var ErrMalformedMessage = errors.New("malformed media stream message")

// InboundMessage is any message Twilio sends over the media stream websocket.
type InboundMessage struct {
	Event          string        `json:"event"`
	SequenceNumber string        `json:"sequenceNumber,omitempty"`
	StreamSid      string        `json:"streamSid,omitempty"`
	Protocol       string        `json:"protocol,omitempty"`
	Start          *StartPayload `json:"start,omitempty"`
	Media          *MediaPayload `json:"media,omitempty"`
	Stop           *StopPayload  `json:"stop,omitempty"`
	Mark           *MarkPayload  `json:"mark,omitempty"`
}

type StartPayload struct {
	StreamSid        string            `json:"streamSid"`
	AccountSid       string            `json:"accountSid"`
	CallSid          string            `json:"callSid"`
	Tracks           []string          `json:"tracks"`
	CustomParameters map[string]string `json:"customParameters"`
	MediaFormat      MediaFormat       `json:"mediaFormat"`
}

type MediaFormat struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

type MediaPayload struct {
	Track     string `json:"track"`
	Chunk     string `json:"chunk"`
	Timestamp string `json:"timestamp"`
	Payload   string `json:"payload"`
}

// Audio decodes the base64 payload.
func (m *MediaPayload) Audio() ([]byte, error) {
	data, err := audio.Base64ToBytes(m.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: media payload: %w", ErrMalformedMessage, err)
	}
	return data, nil
}

type StopPayload struct {
	AccountSid string `json:"accountSid"`
	CallSid    string `json:"callSid"`
}

type MarkPayload struct {
	Name string `json:"name"`
}

// DecodeInbound parses one websocket frame and checks the fields each event needs.
func DecodeInbound(data []byte) (InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return InboundMessage{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch msg.Event {
	case "":
		return InboundMessage{}, fmt.Errorf("%w: missing event", ErrMalformedMessage)
	case EventStart:
		if msg.Start == nil {
			return InboundMessage{}, fmt.Errorf("%w: start without payload", ErrMalformedMessage)
		}
		if msg.Start.StreamSid == "" {
			msg.Start.StreamSid = msg.StreamSid
		}
		if msg.Start.StreamSid == "" {
			return InboundMessage{}, fmt.Errorf("%w: start without streamSid", ErrMalformedMessage)
		}
	case EventMedia:
		if msg.Media == nil {
			return InboundMessage{}, fmt.Errorf("%w: media without payload", ErrMalformedMessage)
		}
	}
	return msg, nil
}

type outboundMedia struct {
	Event     string             `json:"event"`
	StreamSid string             `json:"streamSid"`
	Media     outboundMediaChunk `json:"media"`
}

type outboundMediaChunk struct {
	Payload string `json:"payload"`
}

type outboundClear struct {
	Event     string `json:"event"`
	StreamSid string `json:"streamSid"`
}

// EncodeMedia wraps raw agent audio into a media message addressed to streamSid.
func EncodeMedia(streamSid string, payload []byte) ([]byte, error) {
	return json.Marshal(outboundMedia{
		Event:     EventMedia,
		StreamSid: streamSid,
		Media:     outboundMediaChunk{Payload: audio.BytesToBase64(payload)},
	})
}

// EncodeClear builds the message that makes Twilio drop buffered playback.
func EncodeClear(streamSid string) ([]byte, error) {
	return json.Marshal(outboundClear{Event: EventClear, StreamSid: streamSid})
}
