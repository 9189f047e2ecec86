package sessionconfig

import (
	"callbridge/internal/observability"
	"callbridge/internal/voice/audio"
)

const (
	VariantTwilio  = "twilio"
	VariantGeneric = "generic"
)

const (
	DefaultGreeting       = "Hello! How can I help you today?"
	DefaultFallbackPrompt = "You are a friendly voice assistant talking on the phone. " +
		"Keep every answer short and conversational, ask one question at a time, " +
		"and never read out lists or markup."
)

const coachPrompt = `You are a personal productivity coach on a phone call with the person whose diary and calendar follow.
Speak naturally and briefly. Use the diary to reflect on how recent days went and the calendar to help plan what comes next.
Ask one question at a time and wait for the answer. If a section says it is unavailable, do not mention it.`

const coachFallbackPrompt = `You are a personal productivity coach on a phone call.
Their diary and calendar are unavailable right now, so ask how their day went and what they plan next.
Speak naturally and briefly and ask one question at a time.`

const coachGreeting = "Hey! Ready for a quick check-in on your day?"

const genericPrompt = `You are a helpful voice assistant answering a phone call.
Answer questions clearly in one or two sentences. If you do not know something, say so.`

// Profile is the static recipe for one configuration variant.
type Profile struct {
	Name           string
	Prompt         PromptBuilder
	FallbackPrompt string
	Greeting       string
	Models         Models
	Input          audio.Format
	Output         audio.Format
}

// CoachProfile builds prompts from the user's diary and calendar.
func CoachProfile(models Models, logger *observability.Logger, sources ...ContextSource) Profile {
	return Profile{
		Name:           VariantTwilio,
		Prompt:         NewSectionPromptBuilder(coachPrompt, logger, sources...),
		FallbackPrompt: coachFallbackPrompt,
		Greeting:       coachGreeting,
		Models:         models,
	}
}

// GenericProfile uses a fixed prompt with no personal context.
func GenericProfile(models Models) Profile {
	return Profile{
		Name:     VariantGeneric,
		Prompt:   StaticPrompt(genericPrompt),
		Greeting: DefaultGreeting,
		Models:   models,
	}
}
