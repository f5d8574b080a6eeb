package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	Env          string
	DataPath     string
	RemoteDSN    string
	RemoteKey    string
	AssistantKey string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
// Remote credentials stored through the setup screen override the env
// values; that resolution happens at startup, not here.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DataPath = getEnv("DATA_PATH", "fieldops.db")
	cfg.RemoteDSN = getEnv("REMOTE_DSN", "")
	cfg.RemoteKey = getEnv("REMOTE_KEY", "")
	cfg.AssistantKey = getEnv("ANTHROPIC_API_KEY", "")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
