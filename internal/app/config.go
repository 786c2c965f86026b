package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/blog-backend/internal/data/db"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/envutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/services"
)

const (
	BusNone   = "none"
	BusMemory = "memory"
	BusRedis  = "redis"
	BusNATS   = "nats"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	DB db.Config

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	DefaultPageSize     int
	MaxPageSize         int
	LatestCommentsLimit int

	BusDriver    string
	RedisAddr    string
	RedisChannel string
	NATSURL      string
	NATSSubject  string

	MetricsEnabled bool
	Otel           observability.OtelConfig
	AllowedOrigins []string
}

func (c Config) Auth() services.AuthConfig {
	return services.AuthConfig{
		SecretKey:  c.JWTSecretKey,
		AccessTTL:  c.AccessTokenTTL,
		RefreshTTL: c.RefreshTokenTTL,
	}
}

func (c Config) Paging() services.PageConfig {
	return services.PageConfig{DefaultSize: c.DefaultPageSize, MaxSize: c.MaxPageSize}
}

// LoadConfig reads the process environment. When CONFIG_FILE names a YAML
// file of KEY: value pairs, its entries fill in keys the environment leaves unset.
func LoadConfig(log *logger.Logger) (Config, error) {
	fallback, err := readConfigFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}
	return loadConfig(log, envutil.Source{Fallback: fallback})
}

func loadConfig(log *logger.Logger, src envutil.Source) (Config, error) {
	cfg := Config{
		Port:            src.String("PORT", "8080"),
		ShutdownTimeout: src.Duration("SHUTDOWN_TIMEOUT", 15*time.Second),
		DB: db.Config{
			Driver:           src.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     src.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     src.String("POSTGRES_PORT", "5432"),
			PostgresUser:     src.String("POSTGRES_USER", "postgres"),
			PostgresPassword: src.String("POSTGRES_PASSWORD", ""),
			PostgresName:     src.String("POSTGRES_NAME", "blog"),
			SQLitePath:       src.String("SQLITE_PATH", ""),
		},
		JWTSecretKey:        src.String("JWT_SECRET_KEY", ""),
		AccessTokenTTL:      src.Duration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:     src.Duration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		DefaultPageSize:     src.Int("DEFAULT_PAGE_SIZE", services.DefaultPageSize),
		MaxPageSize:         src.Int("MAX_PAGE_SIZE", services.MaxPageSize),
		LatestCommentsLimit: src.Int("LATEST_COMMENTS_LIMIT", 5),
		RedisAddr:           src.String("REDIS_ADDR", ""),
		RedisChannel:        src.String("REDIS_CHANNEL", "blog.events"),
		NATSURL:             src.String("NATS_URL", ""),
		NATSSubject:         src.String("NATS_SUBJECT", "blog.events"),
		MetricsEnabled:      src.Bool("METRICS_ENABLED", true),
		AllowedOrigins:      src.List("CORS_ALLOWED_ORIGINS", nil),
		Otel: observability.OtelConfig{
			Enabled:     src.Bool("OTEL_ENABLED", false),
			ServiceName: src.String("OTEL_SERVICE_NAME", "blog-backend"),
			Environment: src.String("OTEL_ENVIRONMENT", src.String("ENVIRONMENT", "")),
			Version:     src.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    src.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(src.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    src.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: observability.SampleRatio(src.Float("OTEL_SAMPLE_RATIO", 0)),
		},
	}
	cfg.BusDriver = strings.ToLower(src.String("BUS_DRIVER", defaultBusDriver(cfg)))

	if cfg.JWTSecretKey == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch cfg.BusDriver {
	case BusNone, BusMemory:
	case BusRedis:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("BUS_DRIVER=redis requires REDIS_ADDR")
		}
	case BusNATS:
		if cfg.NATSURL == "" {
			return Config{}, fmt.Errorf("BUS_DRIVER=nats requires NATS_URL")
		}
	default:
		return Config{}, fmt.Errorf("unsupported BUS_DRIVER %q", cfg.BusDriver)
	}
	if cfg.MaxPageSize > 0 && cfg.DefaultPageSize > cfg.MaxPageSize {
		log.Warn("DEFAULT_PAGE_SIZE exceeds MAX_PAGE_SIZE, clamping", "default", cfg.DefaultPageSize, "max", cfg.MaxPageSize)
		cfg.DefaultPageSize = cfg.MaxPageSize
	}

	log.Info("Config loaded",
		"port", cfg.Port,
		"db_driver", cfg.DB.Driver,
		"bus_driver", cfg.BusDriver,
		"metrics", cfg.MetricsEnabled,
		"otel", cfg.Otel.Enabled,
	)
	return cfg, nil
}

func defaultBusDriver(cfg Config) string {
	switch {
	case cfg.RedisAddr != "":
		return BusRedis
	case cfg.NATSURL != "":
		return BusNATS
	default:
		return BusNone
	}
}

func readConfigFile(path string) (map[string]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return parseConfigYAML(raw)
}

// parseConfigYAML flattens a YAML mapping into string values. Lists become
// comma separated so they read like their env counterparts.
func parseConfigYAML(raw []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	out := make(map[string]string, len(doc))
	for k, v := range doc {
		key := strings.ToUpper(strings.TrimSpace(k))
		switch val := v.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, fmt.Sprint(p))
			}
			out[key] = strings.Join(parts, ",")
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out, nil
}
