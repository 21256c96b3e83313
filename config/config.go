package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds every setting of the server.
type Config struct {
	ServerPort    int
	DatabaseURL   string
	JWTSecretKey  string
	AdminTokenTTL time.Duration
	LogLevel      slog.Level

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	StandingsLocale        language.Tag
	ClockBroadcastInterval time.Duration
	CORSAllowedOrigins     []string
}

// Load reads the configuration from environment variables.
// A .env file is loaded first when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intVar(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	ttl, err := durationVar(getenv, "ADMIN_TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}

	interval, err := durationVar(getenv, "CLOCK_BROADCAST_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}

	redisDB, err := intVar(getenv, "REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	locale := language.Czech
	if raw := getenv("STANDINGS_LOCALE"); raw != "" {
		locale, err = language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid STANDINGS_LOCALE environment variable: %w", err)
		}
	}

	origins := []string{"*"}
	if raw := getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		ServerPort:             port,
		DatabaseURL:            getenv("DATABASE_URL"),
		JWTSecretKey:           jwtKey,
		AdminTokenTTL:          ttl,
		LogLevel:               level,
		RedisAddr:              getenv("REDIS_ADDR"),
		RedisPassword:          getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,
		R2AccountID:            getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:          getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:      getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:           getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:        getenv("R2_PUBLIC_BASE_URL"),
		StandingsLocale:        locale,
		ClockBroadcastInterval: interval,
		CORSAllowedOrigins:     origins,
	}
	return cfg, nil
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}

func durationVar(getenv func(string) string, name string, def time.Duration) (time.Duration, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, v)
	}
	return v, nil
}
