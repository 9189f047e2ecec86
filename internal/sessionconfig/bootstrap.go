package sessionconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"callbridge/internal/metrics"
	"callbridge/internal/observability"
	"callbridge/internal/voice/audio"
)

const defaultTimeout = 3 * time.Second

// Fallback reasons reported on Configuration and in metrics.
const (
	ReasonError   = "error"
	ReasonTimeout = "timeout"
	ReasonEmpty   = "empty"
	ReasonPanic   = "panic"
)

var errBuilderPanicked = errors.New("prompt builder panicked")

// Bootstrapper turns a SessionContext into a Configuration. It always
// produces a usable configuration; collaborator failures only swap in the
// profile's fallback prompt.
type Bootstrapper struct {
	profiles       map[string]Profile
	defaultVariant string
	timeout        time.Duration
	logger         *observability.Logger
	metrics        *metrics.Metrics
}

// NewBootstrapper registers profiles by name. The first profile is used for
// calls that name no known variant.
func NewBootstrapper(logger *observability.Logger, m *metrics.Metrics, timeout time.Duration, profiles ...Profile) *Bootstrapper {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	b := &Bootstrapper{
		profiles: make(map[string]Profile, len(profiles)),
		timeout:  timeout,
		logger:   logger,
		metrics:  m,
	}
	for i, p := range profiles {
		if i == 0 {
			b.defaultVariant = p.Name
		}
		b.profiles[p.Name] = p
	}
	return b
}

func (b *Bootstrapper) HasVariant(variant string) bool {
	_, ok := b.profiles[variant]
	return ok
}

func (b *Bootstrapper) DefaultVariant() string {
	return b.defaultVariant
}

// Build resolves the configuration for a call. It never fails.
func (b *Bootstrapper) Build(ctx context.Context, sc SessionContext) Configuration {
	profile, ok := b.profiles[sc.Variant]
	if !ok {
		if sc.Variant != "" {
			b.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "variant", Value: sc.Variant}),
				"Unknown variant, using default profile")
		}
		profile = b.profiles[b.defaultVariant]
		sc.Variant = b.defaultVariant
	}

	cfg := Configuration{
		Variant:  sc.Variant,
		Input:    profile.Input,
		Output:   profile.Output,
		Models:   profile.Models.withDefaults(DefaultModels()),
		Greeting: profile.Greeting,
	}
	if cfg.Input == (audio.Format{}) {
		cfg.Input = audio.MuLaw8k
	}
	if cfg.Output == (audio.Format{}) {
		cfg.Output = audio.MuLaw8k.WithContainer(audio.ContainerNone)
	}
	if strings.TrimSpace(cfg.Greeting) == "" {
		cfg.Greeting = DefaultGreeting
	}

	prompt, reason, err := b.buildPrompt(ctx, profile, sc)
	if reason != "" {
		b.logger.InfoWithError(observability.WithFields(ctx,
			observability.Field{Key: "variant", Value: sc.Variant},
			observability.Field{Key: "reason", Value: reason},
		), "Using fallback prompt", err)
		b.metrics.BootstrapFallbacks.WithLabelValues(sc.Variant, reason).Inc()

		prompt = profile.FallbackPrompt
		if strings.TrimSpace(prompt) == "" {
			prompt = DefaultFallbackPrompt
		}
	}
	cfg.Prompt = prompt
	cfg.FallbackReason = reason
	return cfg
}

type promptResult struct {
	prompt string
	err    error
}

// buildPrompt runs the profile's builder under the timeout. A non-empty
// reason means the prompt must not be used.
func (b *Bootstrapper) buildPrompt(ctx context.Context, profile Profile, sc SessionContext) (string, string, error) {
	if profile.Prompt == nil {
		return "", ReasonEmpty, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	results := make(chan promptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- promptResult{err: fmt.Errorf("%w: %v", errBuilderPanicked, r)}
			}
		}()
		prompt, err := profile.Prompt.BuildPrompt(ctx, sc)
		results <- promptResult{prompt: prompt, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ReasonTimeout, ctx.Err()
	case res := <-results:
		switch {
		case errors.Is(res.err, errBuilderPanicked):
			return "", ReasonPanic, res.err
		case res.err != nil:
			return "", ReasonError, res.err
		case strings.TrimSpace(res.prompt) == "":
			return "", ReasonEmpty, nil
		}
		return res.prompt, "", nil
	}
}
