package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Auth      AuthConfig
	USDA      USDAConfig
	Workspace WorkspaceConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups authentication settings.
type AuthConfig struct {
	Session SessionConfig
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// USDAConfig configures the FoodData Central client.
type USDAConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	PageSize int
}

// WorkspaceConfig holds the persistence rounding policy.
type WorkspaceConfig struct {
	Decimals int
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	dbURL := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL"))
	cfg.Database = DatabaseConfig{
		URL:             dbURL,
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), strings.TrimSpace(dbURL) == ""),
		MaxIdleConns:    parseIntWithDefault(firstNonEmpty(os.Getenv("DATABASE_MAX_IDLE_CONNS"), os.Getenv("DB_MAX_IDLE_CONNS")), 0),
		MaxOpenConns:    parseIntWithDefault(firstNonEmpty(os.Getenv("DATABASE_MAX_OPEN_CONNS"), os.Getenv("DB_MAX_OPEN_CONNS")), 0),
		ConnMaxLifetime: parseDurationWithDefault(firstNonEmpty(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), os.Getenv("DB_CONN_MAX_LIFETIME")), 0),
		ConnMaxIdleTime: parseDurationWithDefault(firstNonEmpty(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), os.Getenv("DB_CONN_MAX_IDLE_TIME")), 0),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "nutrisync_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), false),
		},
	}

	cfg.USDA = USDAConfig{
		APIKey:   strings.TrimSpace(firstNonEmpty(os.Getenv("USDA_API_KEY"), os.Getenv("FDC_API_KEY"))),
		BaseURL:  firstNonEmpty(os.Getenv("USDA_BASE_URL"), "https://api.nal.usda.gov/fdc/v1"),
		Timeout:  parseDurationWithDefault(os.Getenv("USDA_TIMEOUT"), 15*time.Second),
		PageSize: parseIntWithDefault(os.Getenv("USDA_PAGE_SIZE"), 15),
	}

	cfg.Workspace = WorkspaceConfig{
		Decimals: parseIntWithDefault(os.Getenv("WORKSPACE_DECIMALS"), 2),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Workspace.Decimals < 0 || cfg.Workspace.Decimals > 6 {
		return Config{}, fmt.Errorf("workspace decimals must be between 0 and 6, got %d", cfg.Workspace.Decimals)
	}
	if cfg.USDA.PageSize <= 0 {
		return Config{}, fmt.Errorf("usda page size must be positive, got %d", cfg.USDA.PageSize)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
