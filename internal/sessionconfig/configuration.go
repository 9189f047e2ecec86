package sessionconfig

import (
	"net/url"

	"callbridge/internal/voice/audio"
)

// SessionContext is what is known about a call before its configuration is built.
type SessionContext struct {
	Variant string
	CallSID string
	From    string
	To      string
	Query   url.Values
}

// Models selects the agent's listen, think and speak providers.
type Models struct {
	Listen        string
	ThinkProvider string
	Think         string
	Speak         string
}

func DefaultModels() Models {
	return Models{
		Listen:        "nova-3",
		ThinkProvider: "open_ai",
		Think:         "gpt-4.1",
		Speak:         "aura-2-odysseus-en",
	}
}

func (m Models) withDefaults(def Models) Models {
	if m.Listen == "" {
		m.Listen = def.Listen
	}
	if m.ThinkProvider == "" {
		m.ThinkProvider = def.ThinkProvider
	}
	if m.Think == "" {
		m.Think = def.Think
	}
	if m.Speak == "" {
		m.Speak = def.Speak
	}
	return m
}

// Configuration is the resolved, immutable agent setup for one call.
type Configuration struct {
	Variant  string
	Input    audio.Format
	Output   audio.Format
	Models   Models
	Prompt   string
	Greeting string

	// FallbackReason is empty when the prompt was built normally.
	FallbackReason string
}

// UsedFallback reports whether the prompt is a fallback.
func (c Configuration) UsedFallback() bool {
	return c.FallbackReason != ""
}
