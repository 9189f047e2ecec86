package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

const defaultAgentURL = "wss://agent.deepgram.com/v1/agent/converse"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Agent    AgentConfig
	Bridge   BridgeConfig
	Twilio   TwilioConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Context  ContextSourcesConfig
	Reminder ReminderConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	// PublicBaseURL is the externally reachable https origin Twilio uses for
	// webhooks; media stream URLs are derived from it.
	PublicBaseURL string
	WebAppURI     string
	// CallsPerMinute limits outbound call requests per client, 0 disables
	CallsPerMinute int
}

// AgentConfig holds the speech-agent backend settings
type AgentConfig struct {
	URL            string
	APIKey         string
	ListenModel    string
	ThinkProvider  string
	ThinkModel     string
	SpeakModel     string
	DialAttempts   int
	DialRetryDelay time.Duration
}

// BridgeConfig holds the per-call relay tuning knobs
type BridgeConfig struct {
	FramesPerChunk    int
	QueueCapacity     int
	KeepAliveInterval time.Duration
	DrainTimeout      time.Duration
}

// TwilioConfig holds credentials for placing outbound calls
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// Enabled reports whether outbound calling is configured.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.PhoneNumber != ""
}

// RedisConfig holds Redis connection settings for the prompt context cache
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

// DatabaseConfig holds database connection settings for the diary store
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// Enabled reports whether a diary database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != "" && c.Name != ""
}

// ContextSourcesConfig holds settings for the prompt context collaborators
type ContextSourcesConfig struct {
	DiaryUserID           string
	DiaryDays             int
	DiaryMaxEntries       int
	CalendarID            string
	GoogleCredentialsFile string
	CollaboratorTimeout   time.Duration
}

// ReminderConfig holds settings for calendar reminder calls
type ReminderConfig struct {
	PhoneNumber   string
	Advance       time.Duration
	CheckInterval time.Duration
	// Variant selects the agent persona for reminder calls, empty uses the default
	Variant string
}

// Enabled reports whether reminder calls have a destination.
func (c ReminderConfig) Enabled() bool {
	return c.PhoneNumber != ""
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}
	var err error

	// Server configuration
	if cfg.Server.Port, err = intEnv("PORT", 5000); err != nil {
		return nil, err
	}
	cfg.Server.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")
	if cfg.Server.CallsPerMinute, err = intEnv("CALLS_PER_MINUTE", 5); err != nil {
		return nil, err
	}

	// Agent configuration
	if cfg.Agent.APIKey, err = requireEnv("DEEPGRAM_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Agent.URL = getEnvWithDefault("DEEPGRAM_AGENT_URL", defaultAgentURL)
	cfg.Agent.ListenModel = getEnvWithDefault("AGENT_LISTEN_MODEL", "nova-3")
	cfg.Agent.ThinkProvider = getEnvWithDefault("AGENT_THINK_PROVIDER", "open_ai")
	cfg.Agent.ThinkModel = getEnvWithDefault("AGENT_THINK_MODEL", "gpt-4.1")
	cfg.Agent.SpeakModel = getEnvWithDefault("AGENT_SPEAK_MODEL", "aura-2-odysseus-en")
	if cfg.Agent.DialAttempts, err = intEnv("AGENT_DIAL_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.Agent.DialRetryDelay, err = secondsEnv("AGENT_DIAL_RETRY_SECONDS", 1); err != nil {
		return nil, err
	}

	// Bridge configuration
	if cfg.Bridge.FramesPerChunk, err = intEnv("BRIDGE_CHUNK_FRAMES", 20); err != nil {
		return nil, err
	}
	if cfg.Bridge.QueueCapacity, err = intEnv("BRIDGE_QUEUE_CAPACITY", 64); err != nil {
		return nil, err
	}
	if cfg.Bridge.KeepAliveInterval, err = secondsEnv("BRIDGE_KEEPALIVE_SECONDS", 5); err != nil {
		return nil, err
	}
	if cfg.Bridge.DrainTimeout, err = secondsEnv("BRIDGE_DRAIN_SECONDS", 2); err != nil {
		return nil, err
	}

	// Twilio configuration, optional
	cfg.Twilio.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.Twilio.PhoneNumber = os.Getenv("TWILIO_PHONE_NUMBER")

	// Redis configuration, optional
	cfg.Redis.Enabled = os.Getenv("REDIS_ENABLED") == "true"
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.CacheTTL, err = secondsEnv("PROMPT_CACHE_TTL_SECONDS", 600); err != nil {
		return nil, err
	}

	// Database configuration, optional
	cfg.Database.Host = os.Getenv("DB_HOST")
	cfg.Database.Username = os.Getenv("DB_USERNAME")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = os.Getenv("DB_NAME")

	// Context sources
	cfg.Context.DiaryUserID = os.Getenv("DIARY_USER_ID")
	if cfg.Context.DiaryDays, err = intEnv("DIARY_DAYS", 4); err != nil {
		return nil, err
	}
	if cfg.Context.DiaryMaxEntries, err = intEnv("DIARY_MAX_ENTRIES", 100); err != nil {
		return nil, err
	}
	cfg.Context.CalendarID = os.Getenv("GOOGLE_CALENDAR_ID")
	cfg.Context.GoogleCredentialsFile = os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if cfg.Context.CollaboratorTimeout, err = secondsEnv("COLLABORATOR_TIMEOUT_SECONDS", 3); err != nil {
		return nil, err
	}

	// Reminder calls, optional
	cfg.Reminder.PhoneNumber = os.Getenv("REMINDER_PHONE_NUMBER")
	advanceMinutes, err := intEnv("REMINDER_ADVANCE_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	cfg.Reminder.Advance = time.Duration(advanceMinutes) * time.Minute
	if cfg.Reminder.CheckInterval, err = secondsEnv("REMINDER_CHECK_SECONDS", 30); err != nil {
		return nil, err
	}
	cfg.Reminder.Variant = os.Getenv("REMINDER_VARIANT")

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := getEnvWithDefault(key, strconv.Itoa(defaultValue))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return value, nil
}

func secondsEnv(key string, defaultSeconds int) (time.Duration, error) {
	seconds, err := intEnv(key, defaultSeconds)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}
