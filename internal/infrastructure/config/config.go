package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Seed     SeedConfig     `mapstructure:"seed"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CalendarConfig holds the grid rendering parameters served to clients.
// Heights are pixels, widths percentages of the grid.
type CalendarConfig struct {
	WeekStartsOn      int     `mapstructure:"week_starts_on"`
	HourHeight        float64 `mapstructure:"hour_height"`
	MinEventHeight    float64 `mapstructure:"min_event_height"`
	TimeColumnWidth   float64 `mapstructure:"time_column_width"`
	MaxVisibleColumns int     `mapstructure:"max_visible_columns"`
	HideEmptyRows     bool    `mapstructure:"hide_empty_rows"`
	ConstrainEvents   bool    `mapstructure:"constrain_events"`
	MinTime           string  `mapstructure:"min_time"`
	MaxTime           string  `mapstructure:"max_time"`
}

// SeedConfig holds the seed fixture configuration
type SeedConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `mapstructure:"secret"`
	ExpiresIn        time.Duration `mapstructure:"expires_in"`
	RefreshExpiresIn time.Duration `mapstructure:"refresh_expires_in"`
	Issuer           string        `mapstructure:"issuer"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "Daybook")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Calendar defaults
	viper.SetDefault("calendar.week_starts_on", 1) // Monday
	viper.SetDefault("calendar.hour_height", 80)
	viper.SetDefault("calendar.min_event_height", 20)
	viper.SetDefault("calendar.time_column_width", 12)
	viper.SetDefault("calendar.max_visible_columns", 3)
	viper.SetDefault("calendar.hide_empty_rows", false)
	viper.SetDefault("calendar.constrain_events", false)
	viper.SetDefault("calendar.min_time", "00:00")
	viper.SetDefault("calendar.max_time", "23:59")

	// Seed defaults
	viper.SetDefault("seed.path", "config/seed.yaml")
	viper.SetDefault("seed.watch", true)

	// JWT defaults
	viper.SetDefault("jwt.secret", "change-me")
	viper.SetDefault("jwt.expires_in", "24h")
	viper.SetDefault("jwt.refresh_expires_in", "720h")
	viper.SetDefault("jwt.issuer", "daybook-api")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.output", "stdout")
	viper.SetDefault("logger.filename", "")

	// Security defaults
	viper.SetDefault("security.cors_allowed_origins", "*")
	viper.SetDefault("security.rate_limit_requests", 100)
	viper.SetDefault("security.rate_limit_window", "1m")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.debug", "APP_DEBUG")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	viper.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")

	// Calendar
	viper.BindEnv("calendar.week_starts_on", "CALENDAR_WEEK_STARTS_ON")
	viper.BindEnv("calendar.hour_height", "CALENDAR_HOUR_HEIGHT")
	viper.BindEnv("calendar.min_event_height", "CALENDAR_MIN_EVENT_HEIGHT")
	viper.BindEnv("calendar.time_column_width", "CALENDAR_TIME_COLUMN_WIDTH")
	viper.BindEnv("calendar.max_visible_columns", "CALENDAR_MAX_VISIBLE_COLUMNS")
	viper.BindEnv("calendar.hide_empty_rows", "CALENDAR_HIDE_EMPTY_ROWS")
	viper.BindEnv("calendar.constrain_events", "CALENDAR_CONSTRAIN_EVENTS")
	viper.BindEnv("calendar.min_time", "CALENDAR_MIN_TIME")
	viper.BindEnv("calendar.max_time", "CALENDAR_MAX_TIME")

	// Seed
	viper.BindEnv("seed.path", "SEED_PATH")
	viper.BindEnv("seed.watch", "SEED_WATCH")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expires_in", "JWT_EXPIRES_IN")
	viper.BindEnv("jwt.refresh_expires_in", "JWT_REFRESH_EXPIRES_IN")
	viper.BindEnv("jwt.issuer", "JWT_ISSUER")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	viper.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Metrics
	viper.BindEnv("metrics.enabled", "ENABLE_METRICS")
	viper.BindEnv("metrics.path", "METRICS_PATH")
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if cfg.Calendar.WeekStartsOn < 0 || cfg.Calendar.WeekStartsOn > 6 {
		return fmt.Errorf("calendar week_starts_on must be a weekday number 0-6")
	}

	if cfg.Calendar.HourHeight <= 0 {
		return fmt.Errorf("calendar hour_height must be positive")
	}

	if cfg.Calendar.MaxVisibleColumns < 1 {
		return fmt.Errorf("calendar max_visible_columns must be at least 1")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
