// Package audio describes the raw audio formats relayed between the phone
// network and the speech agent. Payloads are never transcoded here.
package audio

import (
	"encoding/base64"
	"time"
)

const (
	EncodingMuLaw    = "mulaw"
	EncodingLinear16 = "linear16"

	// ContainerNone asks the agent for headerless frames.
	ContainerNone = "none"

	// TwilioFrameBytes is one 20ms media frame of 8kHz mono mu-law.
	TwilioFrameBytes = 160
)

// Format is a codec descriptor shared by the telephony and agent sides.
type Format struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
	Container  string `json:"container,omitempty"`
}

// MuLaw8k is the native Twilio media stream format.
var MuLaw8k = Format{Encoding: EncodingMuLaw, SampleRate: 8000}

// BytesPerSecond returns the byte rate of a mono stream in this format.
func (f Format) BytesPerSecond() int {
	switch f.Encoding {
	case EncodingLinear16:
		return f.SampleRate * 2
	default:
		return f.SampleRate
	}
}

// Duration returns how much audio n bytes of this format hold.
func (f Format) Duration(n int) time.Duration {
	rate := f.BytesPerSecond()
	if rate == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(rate)
}

// WithContainer returns a copy of f with the container set.
func (f Format) WithContainer(container string) Format {
	f.Container = container
	return f
}

func Base64ToBytes(base64String string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64String)
}

func BytesToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
