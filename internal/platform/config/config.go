package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures gateway level configuration.
type Server struct {
	Addr         string
	UpstreamURL  string
	HTTPTimeout  time.Duration
	CookieName   string
	CookieSecure bool
	LogLevel     string
	LogFormat    string
	Metrics      bool
	Audit        AuditConfig
	Kafka        KafkaConfig
}

// AuditConfig selects where console audit events go.
type AuditConfig struct {
	Enabled     bool
	AsyncBuffer int
}

// KafkaConfig configures the audit sink. An empty broker list disables it.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
	ClientID   string
}

// RedisConfig configures the shared state backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultRedisConfig returns pool settings suited to a single console user.
func DefaultRedisConfig(url string) RedisConfig {
	return RedisConfig{
		URL:          url,
		PoolSize:     4,
		MinIdleConns: 0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// PostgresConfig configures the shared state backend when Postgres is chosen.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPostgresConfig returns a small pool for the console.
func DefaultPostgresConfig(dsn string) PostgresConfig {
	return PostgresConfig{
		DSN:             dsn,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// Default upstream when nothing is configured.
const DefaultUpstreamURL = "http://localhost:8000"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:         envOr("RBCONSOLE_ADDR", ":8080"),
		UpstreamURL:  strings.TrimRight(envOr("UPSTREAM_API_URL", DefaultUpstreamURL), "/"),
		HTTPTimeout:  envDuration("HTTP_TIMEOUT", 30*time.Second),
		CookieName:   envOr("TOKEN_COOKIE_NAME", "rb.jwt"),
		CookieSecure: os.Getenv("TOKEN_COOKIE_SECURE") == "true",
		LogLevel:     envOr("LOG_LEVEL", "info"),
		LogFormat:    envOr("LOG_FORMAT", "json"),
		Metrics:      os.Getenv("METRICS_DISABLED") != "true",
		Audit: AuditConfig{
			Enabled:     os.Getenv("AUDIT_DISABLED") != "true",
			AsyncBuffer: envInt("AUDIT_ASYNC_BUFFER", 256),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "rbconsole.audit"),
			ClientID:   envOr("KAFKA_CLIENT_ID", "rbconsole-gateway"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
