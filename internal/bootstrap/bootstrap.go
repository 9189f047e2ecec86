package bootstrap

import (
	"context"
	"fmt"
	"time"

	"callbridge/internal/clients/deepgram"
	"callbridge/internal/clients/googlecalendar"
	redisClient "callbridge/internal/clients/redis"
	twilioClient "callbridge/internal/clients/twilio"
	"callbridge/internal/config"
	"callbridge/internal/metrics"
	"callbridge/internal/observability"
	"callbridge/internal/ratelimit"
	"callbridge/internal/reminders"
	"callbridge/internal/sessionconfig"
	"callbridge/internal/store"
	"callbridge/internal/voice/pipeline"
	voiceCallHandler "callbridge/internal/voicecall/handler"
	voiceCallProcessor "callbridge/internal/voicecall/processor"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/api/option"
)

const (
	diaryFallback    = "Diary: unavailable right now."
	calendarFallback = "Calendar: unavailable right now."
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger   *observability.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// Optional backing services, nil when not configured
	Store *store.Store
	Redis *redisClient.Client

	// Handlers
	VoiceCallHandler voiceCallHandler.Handler
	CallRateLimiter  *ratelimit.Service

	// Workers, nil when not configured
	ReminderWorker *reminders.Worker
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.NewMetrics(deps.Registry)

	// Initialize optional diary store
	if cfg.Database.Enabled() {
		s, err := store.New(cfg.Database.ConnectionString(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.Store = &s
		if err := deps.Store.EnsureSchema(ctx); err != nil {
			deps.Cleanup()
			return nil, fmt.Errorf("failed to ensure diary schema: %w", err)
		}
	}

	// Initialize optional prompt section cache
	var err error
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	var calendarClient *googlecalendar.Client
	if cfg.Context.CalendarID != "" {
		var opts []option.ClientOption
		if cfg.Context.GoogleCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Context.GoogleCredentialsFile))
		}
		calendarClient, err = googlecalendar.NewClient(ctx, cfg.Context.CalendarID, logger, opts...)
		if err != nil {
			deps.Cleanup()
			return nil, fmt.Errorf("failed to create calendar client: %w", err)
		}
	}

	sources := contextSources(ctx, cfg, deps, calendarClient, logger)

	// Initialize configuration profiles; the first one is the default variant
	models := sessionconfig.Models{
		Listen:        cfg.Agent.ListenModel,
		ThinkProvider: cfg.Agent.ThinkProvider,
		Think:         cfg.Agent.ThinkModel,
		Speak:         cfg.Agent.SpeakModel,
	}
	bootstrapper := sessionconfig.NewBootstrapper(
		logger,
		deps.Metrics,
		cfg.Context.CollaboratorTimeout,
		sessionconfig.CoachProfile(models, logger, sources...),
		sessionconfig.GenericProfile(models),
	)

	// Initialize agent and telephony clients
	agentClient := deepgram.NewClient(deepgram.Options{
		URL:            cfg.Agent.URL,
		APIKey:         cfg.Agent.APIKey,
		DialAttempts:   cfg.Agent.DialAttempts,
		DialRetryDelay: cfg.Agent.DialRetryDelay,
	}, logger)

	var calls voiceCallProcessor.CallPlacer
	if cfg.Twilio.Enabled() {
		calls = twilioClient.NewClient(cfg.Twilio, logger)
	} else {
		logger.Info(ctx, "Twilio credentials not set, outbound calling disabled")
	}

	// Initialize voice call processor and handler
	bridge := pipeline.Config{
		FramesPerChunk:    cfg.Bridge.FramesPerChunk,
		QueueCapacity:     cfg.Bridge.QueueCapacity,
		KeepAliveInterval: cfg.Bridge.KeepAliveInterval,
		DrainTimeout:      cfg.Bridge.DrainTimeout,
	}
	voiceProcessor := voiceCallProcessor.NewVoiceCallProcessor(
		bootstrapper,
		voiceCallProcessor.DeepgramConnector{Client: agentClient},
		calls,
		cfg.Server.PublicBaseURL,
		bridge,
		logger,
		deps.Metrics,
	)
	deps.VoiceCallHandler = voiceCallHandler.New(voiceProcessor, logger)
	deps.CallRateLimiter = ratelimit.NewService(deps.Redis, cfg.Server.CallsPerMinute, time.Minute, logger)

	// Initialize optional reminder calls
	switch {
	case !cfg.Reminder.Enabled():
	case calendarClient == nil || calls == nil:
		logger.Warn(ctx, "Reminder number set but calendar or Twilio is not configured, reminder calls disabled")
	default:
		deps.ReminderWorker = reminders.New(calendarClient, voiceProcessor, reminders.Options{
			PhoneNumber: cfg.Reminder.PhoneNumber,
			Variant:     cfg.Reminder.Variant,
			Advance:     cfg.Reminder.Advance,
			Interval:    cfg.Reminder.CheckInterval,
		}, logger)
	}

	return deps, nil
}

func contextSources(ctx context.Context, cfg *config.Config, deps *Dependencies, calendarClient *googlecalendar.Client, logger *observability.Logger) []sessionconfig.ContextSource {
	var sources []sessionconfig.ContextSource

	if deps.Store != nil && cfg.Context.DiaryUserID != "" {
		sources = append(sources, sessionconfig.NewDiarySource(
			deps.Store,
			cfg.Context.DiaryUserID,
			cfg.Context.DiaryDays,
			cfg.Context.DiaryMaxEntries,
			diaryFallback,
		))
	} else {
		logger.Info(ctx, "Diary store not configured, coach prompt will omit diary context")
	}

	if calendarClient != nil {
		sources = append(sources, sessionconfig.NewCalendarSource(calendarClient, calendarFallback))
	} else {
		logger.Info(ctx, "Calendar not configured, coach prompt will omit calendar context")
	}

	if deps.Redis == nil {
		return sources
	}
	cached := make([]sessionconfig.ContextSource, len(sources))
	for i, source := range sources {
		cached[i] = sessionconfig.NewCachedSource(source, deps.Redis, cfg.Redis.CacheTTL, logger)
	}
	return cached
}

// Cleanup releases resources held by dependencies
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close redis client", err)
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close database", err)
		}
	}
	d.Logger.Info(ctx, "Dependencies cleaned up")
}
