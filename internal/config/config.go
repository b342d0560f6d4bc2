package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Env        string
	LogLevel   string
	ServerPort string

	DBUrl        string
	StoreBackend string

	JWTSecret    string
	ShopTimezone string

	AdminEmail    string
	AdminPassword string
	AdminName     string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	BarberCacheTTL time.Duration
	ChatSessionTTL time.Duration

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string
	AWSAccessKey    string
	AWSSecretKey    string

	RateLimitPerMin    int
	CORSAllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Env:        getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBUrl:        os.Getenv("DATABASE_URL"),
		StoreBackend: strings.ToLower(os.Getenv("STORE_BACKEND")),

		JWTSecret:    getEnv("JWT_SECRET", "changeme"),
		ShopTimezone: getEnv("SHOP_TIMEZONE", "America/Sao_Paulo"),

		AdminEmail:    strings.ToLower(getEnv("ADMIN_EMAIL", "admin@barbearia.local")),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminName:     getEnv("ADMIN_NAME", "Administrador"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		BarberCacheTTL: getEnvDuration("BARBER_CACHE_TTL", 5*time.Minute),
		ChatSessionTTL: getEnvDuration("CHAT_SESSION_TTL", 30*time.Minute),

		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		AWSAccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),

		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MIN", 120),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.StoreBackend == "" {
		if cfg.DBUrl == "" {
			cfg.StoreBackend = BackendMemory
		} else {
			cfg.StoreBackend = BackendPostgres
		}
	}

	return cfg
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("config: STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.RateLimitPerMin <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_PER_MIN must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
