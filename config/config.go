package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGoogle = "google"
	ProviderCalDAV = "caldav"

	TokenStoreFile   = "file"
	TokenStoreSQLite = "sqlite"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Calendar backends
	Calendar       CalendarConfig
	GoogleCalendar GoogleCalendarConfig
	CalDAV         CalDAVConfig

	// Scheduling conventions
	Schedule ScheduleConfig

	// Morning digest
	Telegram TelegramConfig
	Digest   DigestConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	RequestsPerMin int
}

type CalendarConfig struct {
	Provider string
	Timezone string
}

type GoogleCalendarConfig struct {
	CredentialsPath   string
	CalendarID        string
	TokenStore        string
	TokenPath         string
	Account           string
	RequestsPerSecond float64
}

type CalDAVConfig struct {
	URL          string
	Username     string
	Password     string
	CalendarPath string
}

type ScheduleConfig struct {
	WeekDays             int
	CatchUpMarker        string
	BirthdayPrefix       string
	BirthdaySuffix       string
	DefaultCadenceMonths int
	JitterDays           int
	NoHistoryMonths      int
	HistoryYears         int
	MaxResults           int64
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

type DigestConfig struct {
	Enabled bool
	Cron    string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/calboss/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/calboss/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return build(v)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.RateLimit.RequestsPerMin = v.GetInt("rate_limit.requests_per_min")

	// Calendar
	cfg.Calendar.Provider = strings.ToLower(v.GetString("calendar.provider"))
	cfg.Calendar.Timezone = v.GetString("calendar.timezone")

	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.TokenStore = strings.ToLower(v.GetString("google_calendar.token_store"))
	cfg.GoogleCalendar.TokenPath = v.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.Account = v.GetString("google_calendar.account")
	cfg.GoogleCalendar.RequestsPerSecond = v.GetFloat64("google_calendar.requests_per_second")
	if googleCreds := v.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	cfg.CalDAV.URL = v.GetString("caldav.url")
	cfg.CalDAV.Username = v.GetString("caldav.username")
	cfg.CalDAV.Password = v.GetString("caldav.password")
	cfg.CalDAV.CalendarPath = v.GetString("caldav.calendar_path")

	// Schedule
	cfg.Schedule.WeekDays = v.GetInt("schedule.week_days")
	cfg.Schedule.CatchUpMarker = v.GetString("schedule.catchup_marker")
	cfg.Schedule.BirthdayPrefix = v.GetString("schedule.birthday_prefix")
	cfg.Schedule.BirthdaySuffix = v.GetString("schedule.birthday_suffix")
	cfg.Schedule.DefaultCadenceMonths = v.GetInt("schedule.default_cadence_months")
	cfg.Schedule.JitterDays = v.GetInt("schedule.jitter_days")
	cfg.Schedule.NoHistoryMonths = v.GetInt("schedule.no_history_months")
	cfg.Schedule.HistoryYears = v.GetInt("schedule.history_years")
	cfg.Schedule.MaxResults = v.GetInt64("schedule.max_results")

	// Digest
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.ChatID = v.GetInt64("telegram.chat_id")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	cfg.Digest.Enabled = v.GetBool("digest.enabled")
	cfg.Digest.Cron = v.GetString("digest.cron")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves the configured calendar timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Calendar.Timezone)
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("calendar.timezone %q: %w", c.Calendar.Timezone, err)
	}

	switch c.Calendar.Provider {
	case ProviderGoogle:
		if c.GoogleCalendar.CredentialsPath == "" {
			return fmt.Errorf("google_calendar.credentials_path is required for provider %q", ProviderGoogle)
		}
		switch c.GoogleCalendar.TokenStore {
		case TokenStoreFile, TokenStoreSQLite:
		default:
			return fmt.Errorf("google_calendar.token_store must be %q or %q, got %q", TokenStoreFile, TokenStoreSQLite, c.GoogleCalendar.TokenStore)
		}
		if c.GoogleCalendar.RequestsPerSecond < 0 {
			return fmt.Errorf("google_calendar.requests_per_second must not be negative")
		}
	case ProviderCalDAV:
		if c.CalDAV.URL == "" {
			return fmt.Errorf("caldav.url is required for provider %q", ProviderCalDAV)
		}
	default:
		return fmt.Errorf("calendar.provider must be %q or %q, got %q", ProviderGoogle, ProviderCalDAV, c.Calendar.Provider)
	}

	s := c.Schedule
	if s.WeekDays <= 0 {
		return fmt.Errorf("schedule.week_days must be positive")
	}
	if strings.TrimSpace(s.CatchUpMarker) == "" {
		return fmt.Errorf("schedule.catchup_marker must not be empty")
	}
	if s.BirthdayPrefix == "" && s.BirthdaySuffix == "" {
		return fmt.Errorf("schedule.birthday_prefix or schedule.birthday_suffix must be set")
	}
	if s.DefaultCadenceMonths <= 0 || s.NoHistoryMonths <= 0 || s.HistoryYears <= 0 {
		return fmt.Errorf("schedule cadence, no-history and history horizons must be positive")
	}
	if s.JitterDays < 0 {
		return fmt.Errorf("schedule.jitter_days must not be negative")
	}
	if s.MaxResults <= 0 {
		return fmt.Errorf("schedule.max_results must be positive")
	}

	if c.Digest.Enabled {
		if c.Digest.Cron == "" {
			return fmt.Errorf("digest.cron is required when the digest is enabled")
		}
		if c.Telegram.BotToken == "" || c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.bot_token and telegram.chat_id are required when the digest is enabled")
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("rate_limit.requests_per_min", 120)

	v.SetDefault("calendar.provider", ProviderGoogle)
	v.SetDefault("calendar.timezone", "America/New_York")

	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("google_calendar.token_store", TokenStoreFile)
	v.SetDefault("google_calendar.token_path", "token.json")
	v.SetDefault("google_calendar.account", "default")
	v.SetDefault("google_calendar.requests_per_second", 5)

	v.SetDefault("schedule.week_days", 7)
	v.SetDefault("schedule.catchup_marker", "[Catch-Up]")
	v.SetDefault("schedule.birthday_prefix", "🎂 ")
	v.SetDefault("schedule.birthday_suffix", "'s Birthday")
	v.SetDefault("schedule.default_cadence_months", 18)
	v.SetDefault("schedule.jitter_days", 60)
	v.SetDefault("schedule.no_history_months", 6)
	v.SetDefault("schedule.history_years", 10)
	v.SetDefault("schedule.max_results", 2500)

	v.SetDefault("digest.enabled", false)
	v.SetDefault("digest.cron", "0 7 * * *")
}
