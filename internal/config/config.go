package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: "127.0.0.1:8674"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	BackendURL     string        // base URL of the remote bookmark backend (ex: https://api.alltabs.ext)
	BackendTimeout time.Duration // per-request timeout for backend calls (default: 10s)
	AuthToken      string        // optional pre-provisioned session token (empty = start signed out)

	SeedFile string // path to a bookmarks seed YAML (optional, empty = seeding disabled)

	RefreshInterval  time.Duration // interval between full state refreshes (default: 5m)
	RefreshRetryWait time.Duration // initial wait before retrying a failed refresh (grows exponentially)
	RefreshRetryMax  time.Duration // cap on the retry wait

	AllowedOrigins []string // origins allowed to call the UI API (CORS)

	// Redis (snapshot cache). Empty addr = cache disabled.
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
	SnapshotTTL         time.Duration // TTL for cached snapshots (default: 48h)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("ALLTABS_LISTEN_ADDR", "127.0.0.1:8674"),
		ShutdownTimeout: mustDuration("ALLTABS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ALLTABS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ALLTABS_PRETTY_LOG", true),

		// Backend
		BackendURL:     requireEnv("ALLTABS_BACKEND_URL"),
		BackendTimeout: mustDuration("ALLTABS_BACKEND_TIMEOUT", 10*time.Second),
		AuthToken:      getenv("ALLTABS_AUTH_TOKEN", ""),

		SeedFile: getenv("ALLTABS_SEED_FILE", ""), // Optional, empty = seeding disabled

		RefreshInterval:  mustDuration("ALLTABS_REFRESH_INTERVAL", 5*time.Minute),
		RefreshRetryWait: mustDuration("ALLTABS_REFRESH_RETRY_WAIT", 2*time.Second),
		RefreshRetryMax:  mustDuration("ALLTABS_REFRESH_RETRY_MAX", time.Minute),

		AllowedOrigins: splitAndTrim(getenv("ALLTABS_ALLOWED_ORIGINS", "")),

		// Redis settings
		RedisAddr:           getenv("ALLTABS_REDIS_ADDR", ""), // Optional, empty = cache disabled
		RedisUser:           getenv("ALLTABS_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("ALLTABS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ALLTABS_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
		SnapshotTTL:         mustDuration("ALLTABS_SNAPSHOT_TTL", 48*time.Hour),
	}

	if !strings.HasPrefix(cfg.BackendURL, "http://") && !strings.HasPrefix(cfg.BackendURL, "https://") {
		panic(fmt.Sprintf("❌ FATAL: ALLTABS_BACKEND_URL must be an http(s) URL, got %q", cfg.BackendURL))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfgCopy.AuthToken != "" {
			cfgCopy.AuthToken = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
