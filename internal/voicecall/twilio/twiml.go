package twilio

import (
	"sort"

	"github.com/twilio/twilio-go/twiml"
)

// StreamTwiML returns the TwiML that connects a call to a bidirectional media
// stream at streamURL. Parameters are delivered back in the start event.
func StreamTwiML(streamURL string, parameters map[string]string) (string, error) {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	inner := make([]twiml.Element, 0, len(names))
	for _, name := range names {
		inner = append(inner, twiml.VoiceParameter{Name: name, Value: parameters[name]})
	}

	stream := twiml.VoiceStream{
		Url:           streamURL,
		InnerElements: inner,
	}
	connect := twiml.VoiceConnect{
		InnerElements: []twiml.Element{stream},
	}
	return twiml.Voice([]twiml.Element{connect})
}
