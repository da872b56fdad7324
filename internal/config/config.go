package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PersistenceMemory   = "memory"
	PersistencePostgres = "postgres"
)

var (
	JwtSecret  string
	Issuer     string
	TokenTTL   time.Duration
	ServerPort string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	Persistence  string
	FixturesPath string

	EscalationThreshold time.Duration
	EscalationInterval  time.Duration
	EscalateMinRank     int

	LogLevel           string
	CORSAllowedOrigins []string
)

// LoadConfig reads .env (or the given files) and the process environment.
// Missing files are not an error.
func LoadConfig(envFiles ...string) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "issue-desk")
	TokenTTL = getDuration("TOKEN_TTL", 24*time.Hour)
	ServerPort = getEnv("SERVER_PORT", "8080")

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "issuedesk")

	Persistence = strings.ToLower(getEnv("PERSISTENCE", PersistenceMemory))
	FixturesPath = getEnv("FIXTURES_PATH", "")

	EscalationThreshold = getDuration("ESCALATION_THRESHOLD", 7*24*time.Hour)
	EscalationInterval = getDuration("ESCALATION_INTERVAL", time.Hour)
	EscalateMinRank = getInt("ESCALATE_MIN_RANK", 3)

	LogLevel = getEnv("LOG_LEVEL", "info")
	CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"))
}

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info.
func SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return n
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
