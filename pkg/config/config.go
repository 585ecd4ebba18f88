package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis     RedisConfig
	Cache     CacheConfig
	CORS      CORSConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Gemini    GeminiConfig
	Session   SessionConfig
	Assistant AssistantConfig
	Activity  ActivityConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig controls caching of rendered view projections.
type CacheConfig struct {
	Enabled   bool
	ViewTTL   time.Duration
	KeyPrefix string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles Prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool
}

// GeminiConfig points the advisory gateway at the text generation provider.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// SessionConfig seeds the single application session.
type SessionConfig struct {
	DefaultUserID   string
	DefaultCapacity int
}

// AssistantConfig tunes the syllabus draft worker pool.
type AssistantConfig struct {
	SyllabusWorkers int
	SyllabusBuffer  int
}

// ActivityConfig bounds the in-memory activity feed.
type ActivityConfig struct {
	LogSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled:   v.GetBool("ENABLE_CACHE"),
		ViewTTL:   parseDuration(v.GetString("VIEW_CACHE_TTL"), 5*time.Minute),
		KeyPrefix: v.GetString("CACHE_KEY_PREFIX"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	cfg.Gemini = GeminiConfig{
		APIKey: v.GetString("GEMINI_API_KEY"),
		Model:  v.GetString("GEMINI_MODEL"),
	}

	capacity := v.GetInt("DEFAULT_COURSE_CAPACITY")
	if capacity <= 0 {
		capacity = 30
	}
	cfg.Session = SessionConfig{
		DefaultUserID:   v.GetString("DEFAULT_USER_ID"),
		DefaultCapacity: capacity,
	}

	cfg.Assistant = AssistantConfig{
		SyllabusWorkers: v.GetInt("SYLLABUS_WORKERS"),
		SyllabusBuffer:  v.GetInt("SYLLABUS_QUEUE_BUFFER"),
	}

	cfg.Activity = ActivityConfig{LogSize: v.GetInt("ACTIVITY_LOG_SIZE")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("VIEW_CACHE_TTL", "5m")
	v.SetDefault("CACHE_KEY_PREFIX", "courseconnect:")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")

	v.SetDefault("DEFAULT_USER_ID", "u1")
	v.SetDefault("DEFAULT_COURSE_CAPACITY", 30)

	v.SetDefault("SYLLABUS_WORKERS", 1)
	v.SetDefault("SYLLABUS_QUEUE_BUFFER", 8)
	v.SetDefault("ACTIVITY_LOG_SIZE", 50)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
