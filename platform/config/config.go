package config

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds the server settings. Values come from the environment; a
// .env file in the working directory is loaded first.
type Config struct {
	HTTPAddr    string
	SocketAddr  string
	CORSOrigins []string
	JWTSecret   string

	DBUser     string
	DBAddr     string
	DBPassword string
	DBName     string

	RedisURL string

	LogLevel  string
	LogFormat string

	BoardFile string
	CardsFile string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:    get("HTTP_ADDR", ":4101"),
		SocketAddr:  get("SOCKET_ADDR", ":8000"),
		CORSOrigins: split(get("CORS_ORIGINS", "http://localhost:3000")),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DBUser:      get("DB_USER", "postgres"),
		DBAddr:      get("DB_ADDR", "localhost:5432"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      get("DB_NAME", "monopoly"),
		RedisURL:    get("REDIS_URL", "localhost:6379"),
		LogLevel:    get("LOG_LEVEL", "info"),
		LogFormat:   strings.ToLower(get("LOG_FORMAT", "text")),
		BoardFile:   os.Getenv("BOARD_FILE"),
		CardsFile:   os.Getenv("CARDS_FILE"),
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// CheckServer reports settings the HTTP and socket servers cannot run
// without. Offline simulation does not need them.
func (c *Config) CheckServer() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set")
	}
	return nil
}

func get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func split(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
