package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	APIKey      string // API key for authentication

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int
	DBMinConns int
	DBConnIdle time.Duration
	DBConnLife time.Duration

	// Empty RedisAddr keeps rate limiting in-process
	RedisAddr         string
	RedisPassword     string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// DayBoundaryTZ is an IANA zone name ("Europe/Berlin") or a fixed offset ("UTC+05:30")
	DayBoundaryTZ    string
	DoublerPolicy    string
	SkillCatalogPath string
	ProfileCacheTTL  time.Duration

	StripeWebhookSecret   string
	FounderSlots          int
	FounderReservationTTL time.Duration
	CronReservationSweep  string
	CronFounderGauge      string

	EventLogRetentionDays int
	CronEventLogCleanup   string

	DiscordWebhookID    string
	DiscordWebhookToken string

	CORSAllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For
	TrustedProxies     []string
	WorkerCount        int
	WorkerQueue        int
}

// LoadDatabase reads only the database settings. Maintenance tools use it so
// they run without the server's secrets.
func LoadDatabase() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.loadDatabase()
	return cfg
}

func (c *Config) loadDatabase() {
	c.DBUser = getEnv("DB_USER", "postgres")
	c.DBPassword = getEnv("DB_PASSWORD", "postgres")
	c.DBHost = getEnv("DB_HOST", "localhost")
	c.DBPort = getEnv("DB_PORT", "5432")
	c.DBName = getEnv("DB_NAME", DefaultDBName)
	c.DBMaxConns = getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns)
	c.DBMinConns = getEnvAsInt("DB_MIN_CONNS", DefaultDBMinConns)
	c.DBConnIdle = getEnvAsDuration("DB_MAX_CONN_IDLE", DefaultDBConnIdle)
	c.DBConnLife = getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBConnLife)
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),

		DayBoundaryTZ:    getEnv("DAY_BOUNDARY_TZ", DefaultDayBoundaryTZ),
		DoublerPolicy:    getEnv("DOUBLER_POLICY", DefaultDoublerPolicy),
		SkillCatalogPath: getEnv("SKILL_CATALOG_PATH", ""),
		ProfileCacheTTL:  getEnvAsDuration("PROFILE_CACHE_TTL", DefaultProfileCacheTTL),

		StripeWebhookSecret:   getEnv("STRIPE_WEBHOOK_SECRET", ""),
		FounderSlots:          getEnvAsInt("FOUNDER_SLOTS", DefaultFounderSlots),
		FounderReservationTTL: getEnvAsDuration("FOUNDER_RESERVATION_TTL", DefaultFounderReservationTTL),
		CronReservationSweep:  getEnv("CRON_RESERVATION_SWEEP", DefaultCronReservationSweep),
		CronFounderGauge:      getEnv("CRON_FOUNDER_GAUGE", DefaultCronFounderGauge),

		EventLogRetentionDays: getEnvAsInt("EVENT_LOG_RETENTION_DAYS", DefaultEventLogRetentionDays),
		CronEventLogCleanup:   getEnv("CRON_EVENT_LOG_CLEANUP", DefaultCronEventLogCleanup),

		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		TrustedProxies:     splitList(getEnv("TRUSTED_PROXIES", "")),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueue:        getEnvAsInt("WORKER_QUEUE", DefaultWorkerQueue),
	}
	cfg.loadDatabase()

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, errors.New("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that would otherwise surface as runtime failures
func (c *Config) Validate() error {
	var problems []string

	if c.RateLimitRequests <= 0 {
		problems = append(problems, "RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimitWindow <= 0 {
		problems = append(problems, "RATE_LIMIT_WINDOW must be positive")
	}
	if c.FounderSlots < 0 {
		problems = append(problems, "FOUNDER_SLOTS must not be negative")
	}
	if c.FounderReservationTTL <= 0 {
		problems = append(problems, "FOUNDER_RESERVATION_TTL must be positive")
	}
	if c.DoublerPolicy != DoublerPolicySingle && c.DoublerPolicy != DoublerPolicyStack {
		problems = append(problems, fmt.Sprintf("DOUBLER_POLICY must be %q or %q", DoublerPolicySingle, DoublerPolicyStack))
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.EventLogRetentionDays < 1 {
		problems = append(problems, "EVENT_LOG_RETENTION_DAYS must be at least 1")
	}
	if c.WorkerQueue <= 0 {
		problems = append(problems, "WORKER_QUEUE must be positive")
	}
	if c.DBMinConns > c.DBMaxConns {
		problems = append(problems, "DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DiscordEnabled reports whether announcement webhooks are configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return c.connString(c.DBName)
}

// GetServerConnString points at the maintenance database, for creating and
// dropping DBName
func (c *Config) GetServerConnString() string {
	return c.connString(MaintenanceDBName)
}

func (c *Config) connString(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		dbName,
	)
}
