package processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"callbridge/internal/clients/deepgram"
	"callbridge/internal/metrics"
	"callbridge/internal/observability"
	"callbridge/internal/sessionconfig"
	"callbridge/internal/voice/pipeline"
	"callbridge/internal/voicecall/twilio"

	"github.com/gorilla/websocket"
)

var (
	ErrUnknownVariant    = errors.New("unknown configuration variant")
	ErrTelephonyDisabled = errors.New("outbound calling is not configured")
	ErrPublicURLMissing  = errors.New("public base url is not configured")
	ErrAgentUnavailable  = errors.New("speech agent unavailable")
)

type VoiceCallProcessor struct {
	bootstrapper  *sessionconfig.Bootstrapper
	agent         AgentConnector
	calls         CallPlacer
	publicBaseURL string
	bridge        pipeline.Config
	logger        *observability.Logger
	metrics       *metrics.Metrics
}

// NewVoiceCallProcessor wires a processor. calls may be nil when outbound
// calling is not configured.
func NewVoiceCallProcessor(
	bootstrapper *sessionconfig.Bootstrapper,
	agent AgentConnector,
	calls CallPlacer,
	publicBaseURL string,
	bridge pipeline.Config,
	logger *observability.Logger,
	m *metrics.Metrics,
) *VoiceCallProcessor {
	return &VoiceCallProcessor{
		bootstrapper:  bootstrapper,
		agent:         agent,
		calls:         calls,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		bridge:        bridge,
		logger:        logger,
		metrics:       m,
	}
}

// ResolveVariant maps an empty variant to the default and rejects unknown ones.
func (p *VoiceCallProcessor) ResolveVariant(variant string) (string, error) {
	if variant == "" {
		return p.bootstrapper.DefaultVariant(), nil
	}
	if !p.bootstrapper.HasVariant(variant) {
		return "", fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	return variant, nil
}

// HandleStream bridges an accepted media stream connection to a new agent
// session and blocks until the call ends. conn is always closed.
func (p *VoiceCallProcessor) HandleStream(ctx context.Context, conn pipeline.Conn, sc sessionconfig.SessionContext) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "variant", Value: sc.Variant})
	if sc.CallSID != "" {
		ctx = observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: sc.CallSID})
	}

	cfg := p.bootstrapper.Build(ctx, sc)

	agentConn, err := p.agent.Connect(ctx, settingsFor(cfg))
	if err != nil {
		p.logger.Error(ctx, "failed to connect to speech agent", err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "agent unavailable"))
		_ = conn.Close()
		return fmt.Errorf("%w: %w", ErrAgentUnavailable, err)
	}

	session := pipeline.NewSession(conn, agentConn, p.logger, p.metrics, p.bridge)
	return session.Run(ctx)
}

// AnswerTwiML returns the TwiML that connects an answered call to the media
// stream for variant. host is used when no public base url is configured.
func (p *VoiceCallProcessor) AnswerTwiML(variant, host string) (string, error) {
	variant, err := p.ResolveVariant(variant)
	if err != nil {
		return "", err
	}
	streamURL, err := p.streamURL(variant, host)
	if err != nil {
		return "", err
	}
	return twilio.StreamTwiML(streamURL, map[string]string{"variant": variant})
}

// PlaceCall dials to and connects the answered call to variant's media stream.
func (p *VoiceCallProcessor) PlaceCall(ctx context.Context, to, variant string) (string, error) {
	if p.calls == nil {
		return "", ErrTelephonyDisabled
	}
	if p.publicBaseURL == "" {
		return "", ErrPublicURLMissing
	}

	doc, err := p.AnswerTwiML(variant, "")
	if err != nil {
		return "", err
	}
	return p.calls.PlaceCall(ctx, to, doc)
}

func (p *VoiceCallProcessor) streamURL(variant, host string) (string, error) {
	base := p.publicBaseURL
	if base == "" {
		if host == "" {
			return "", ErrPublicURLMissing
		}
		base = "https://" + host
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid public base url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	default:
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/media/" + url.PathEscape(variant)
	return u.String(), nil
}

func settingsFor(cfg sessionconfig.Configuration) deepgram.Settings {
	return deepgram.NewSettings(
		cfg.Input,
		cfg.Output,
		cfg.Models.Listen,
		deepgram.Provider{Type: cfg.Models.ThinkProvider, Model: cfg.Models.Think},
		cfg.Prompt,
		cfg.Models.Speak,
		cfg.Greeting,
	)
}
