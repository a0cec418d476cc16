package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDSN        string
	ServerAddr         string
	SigningKey         []byte
	AllowedOrigins     []string
	Environment        string
	RateLimitPerMinute int
	Log                LogConfig
	Gemini             GeminiConfig
	Redis              RedisConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Retries int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func NewConfig(serverAddr, databaseDSN, jwtSecret string, allowedOrigins []string) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if databaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}
	if jwtSecret == "" {
		return nil, fmt.Errorf("jwt secret cannot be empty")
	}

	return &Config{
		DatabaseDSN:        databaseDSN,
		ServerAddr:         serverAddr,
		SigningKey:         []byte(jwtSecret),
		AllowedOrigins:     cleanOrigins(allowedOrigins),
		Environment:        "development",
		RateLimitPerMinute: 20,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Gemini: GeminiConfig{
			Model:   "gemini-1.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: 30 * time.Second,
		},
	}, nil
}

// LoadOptional fills the sections that may be absent without failing startup.
func (c *Config) LoadOptional() {
	c.Environment = Getenv("APP_ENV", c.Environment)
	c.RateLimitPerMinute = parseInt(Getenv("RATE_LIMIT_PER_MINUTE", ""), c.RateLimitPerMinute)

	c.Log.Level = Getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = Getenv("LOG_FORMAT", c.Log.Format)

	c.Gemini.APIKey = Getenv("GEMINI_API_KEY", c.Gemini.APIKey)
	c.Gemini.Model = Getenv("GEMINI_MODEL", c.Gemini.Model)
	c.Gemini.BaseURL = Getenv("GEMINI_BASE_URL", c.Gemini.BaseURL)
	c.Gemini.Timeout = parseDuration(Getenv("GEMINI_TIMEOUT", ""), c.Gemini.Timeout)
	c.Gemini.Retries = parseInt(Getenv("GEMINI_RETRIES", ""), c.Gemini.Retries)

	c.Redis.Addr = Getenv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = Getenv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = parseInt(Getenv("REDIS_DB", ""), c.Redis.DB)
}

// LoadDotEnv loads the given env files, or ".env" when none are given.
// Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}

	return nil
}

func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DefaultAddr derives the listen address from PORT the way the hosted
// platforms set it.
func DefaultAddr() string {
	if addr := os.Getenv("ADDR"); addr != "" {
		return addr
	}
	return ":" + Getenv("PORT", "3001")
}

func cleanOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, strings.TrimRight(o, "/"))
		}
	}
	return out
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
