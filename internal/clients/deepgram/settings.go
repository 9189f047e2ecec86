package deepgram

import "callbridge/internal/voice/audio"

const MessageTypeSettings = "Settings"

// KeepAliveMessage keeps the agent socket open through silence.
var KeepAliveMessage = []byte(`{"type":"KeepAlive"}`)

// Settings is the first message of every agent session.
type Settings struct {
	Type  string        `json:"type"`
	Audio AudioSettings `json:"audio"`
	Agent AgentSettings `json:"agent"`
}

type AudioSettings struct {
	Input  audio.Format `json:"input"`
	Output audio.Format `json:"output"`
}

type AgentSettings struct {
	Listen   ListenSettings `json:"listen"`
	Think    ThinkSettings  `json:"think"`
	Speak    SpeakSettings  `json:"speak"`
	Greeting string         `json:"greeting,omitempty"`
}

type Provider struct {
	Type  string `json:"type"`
	Model string `json:"model"`
}

type ListenSettings struct {
	Provider Provider `json:"provider"`
}

type ThinkSettings struct {
	Provider Provider `json:"provider"`
	Prompt   string   `json:"prompt"`
}

type SpeakSettings struct {
	Provider Provider `json:"provider"`
}

// NewSettings fills in the message type and Deepgram-hosted listen/speak providers.
func NewSettings(input, output audio.Format, listenModel string, think Provider, prompt, speakModel, greeting string) Settings {
	return Settings{
		Type:  MessageTypeSettings,
		Audio: AudioSettings{Input: input, Output: output},
		Agent: AgentSettings{
			Listen:   ListenSettings{Provider: Provider{Type: "deepgram", Model: listenModel}},
			Think:    ThinkSettings{Provider: think, Prompt: prompt},
			Speak:    SpeakSettings{Provider: Provider{Type: "deepgram", Model: speakModel}},
			Greeting: greeting,
		},
	}
}
