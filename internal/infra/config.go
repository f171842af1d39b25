package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Config is the single, fully resolved configuration struct. It is built
// once before any component is constructed; nothing else reads the
// environment.
type Config struct {
	Port        string
	PostgresURL string

	// Host is the public base URL used in one-time check-in/alert links.
	Host string

	JobsAPIToken  string
	SessionSecret string

	SlackBotToken            string
	SlackSigningSecret       string
	SlackOrganizationChannel string
	SlackMonitoringChannel   string
	SlackAdministratorUserID string

	GoogleGeocodingAPIToken string

	ShortWindow  time.Duration
	LongWindow   time.Duration
	RemindWindow time.Duration
	NotifyWindow time.Duration

	RequestCheckInOrganizationChannel bool
	RequestCheckInDirectMessage       bool
	RequestAlertOrganizationChannel   bool
	RequestAlertDirectMessage         bool

	FilterRestricted      bool
	FilterUltraRestricted bool

	// RiskRule selects the at-risk predicate: "" for the per-workflow
	// defaults, "strict" for the rule that also requires ability to work
	// and no support request.
	RiskRule string

	FanoutConcurrency int

	SMTP SMTPConfig
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        envOrDefault("PORT", "3000"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		Host:        os.Getenv("HOST"),

		JobsAPIToken:  os.Getenv("JOBS_API_TOKEN"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		SlackBotToken:            os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret:       os.Getenv("SLACK_SIGNING_SECRET"),
		SlackOrganizationChannel: os.Getenv("SLACK_ORGANIZATION_CHANNEL_ID"),
		SlackMonitoringChannel:   os.Getenv("SLACK_MONITORING_CHANNEL_ID"),
		SlackAdministratorUserID: os.Getenv("SLACK_ADMINISTRATOR_USER_ID"),

		GoogleGeocodingAPIToken: os.Getenv("GOOGLE_GEOCODING_API_TOKEN"),

		ShortWindow:  envHours("RECENCY_SHORT_WINDOW_HOURS", 24),
		LongWindow:   envHours("RECENCY_LONG_WINDOW_HOURS", 168),
		RemindWindow: envHours("REMIND_AFTER_HOURS", 24),
		NotifyWindow: envHours("NOTIFY_AFTER_HOURS", 24),

		RequestCheckInOrganizationChannel: envBool("REQUEST_CHECK_IN_ORGANIZATION_CHANNEL", true),
		RequestCheckInDirectMessage:       envBool("REQUEST_CHECK_IN_DIRECT_MESSAGE", true),
		RequestAlertOrganizationChannel:   envBool("REQUEST_ALERT_ORGANIZATION_CHANNEL", true),
		RequestAlertDirectMessage:         envBool("REQUEST_ALERT_DIRECT_MESSAGE", true),

		FilterRestricted:      envBool("FILTER_RESTRICTED", true),
		FilterUltraRestricted: envBool("FILTER_ULTRA_RESTRICTED", true),

		RiskRule: os.Getenv("RISK_RULE"),

		FanoutConcurrency: envInt("FANOUT_CONCURRENCY", 4),

		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	required := map[string]string{
		"POSTGRES_URL":                  cfg.PostgresURL,
		"HOST":                          cfg.Host,
		"JOBS_API_TOKEN":                cfg.JobsAPIToken,
		"SESSION_SECRET":                cfg.SessionSecret,
		"SLACK_BOT_TOKEN":               cfg.SlackBotToken,
		"SLACK_SIGNING_SECRET":          cfg.SlackSigningSecret,
		"SLACK_ORGANIZATION_CHANNEL_ID": cfg.SlackOrganizationChannel,
		"SLACK_MONITORING_CHANNEL_ID":   cfg.SlackMonitoringChannel,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	if cfg.RiskRule != "" && cfg.RiskRule != "strict" {
		return nil, fmt.Errorf("unknown RISK_RULE %q", cfg.RiskRule)
	}
	if cfg.FanoutConcurrency < 1 {
		return nil, fmt.Errorf("FANOUT_CONCURRENCY must be at least 1")
	}

	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envHours(name string, fallback int) time.Duration {
	return time.Duration(envInt(name, fallback)) * time.Hour
}

func envBool(name string, fallback bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
