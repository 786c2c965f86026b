package app

import (
	"testing"
	"time"

	"github.com/yungbote/blog-backend/internal/platform/envutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// clearEnv blanks keys so the process environment cannot shadow fallbacks.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestParseConfigYAMLFlattensValues(t *testing.T) {
	raw := []byte(`
port: 9000
jwt_secret_key: from-file
metrics_enabled: false
cors_allowed_origins:
  - https://a.example.com
  - https://b.example.com
otel_exporter_otlp_endpoint:
`)
	got, err := parseConfigYAML(raw)
	if err != nil {
		t.Fatalf("parseConfigYAML: %v", err)
	}
	want := map[string]string{
		"PORT":                 "9000",
		"JWT_SECRET_KEY":       "from-file",
		"METRICS_ENABLED":      "false",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com,https://b.example.com",
	}
	if len(got) != len(want) {
		t.Fatalf("keys: want=%v got=%v", want, got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: want=%q got=%q", k, v, got[k])
		}
	}
	if _, err := parseConfigYAML([]byte("- not\n- a map")); err == nil {
		t.Fatalf("list document: want error")
	}
}

func TestLoadConfigFromFallback(t *testing.T) {
	clearEnv(t, "PORT", "JWT_SECRET_KEY", "ACCESS_TOKEN_TTL", "DB_DRIVER", "MAX_PAGE_SIZE",
		"DEFAULT_PAGE_SIZE", "BUS_DRIVER", "REDIS_ADDR", "NATS_URL", "CORS_ALLOWED_ORIGINS", "OTEL_SAMPLE_RATIO")
	cfg, err := loadConfig(testLogger(t), envutil.Source{Fallback: map[string]string{
		"PORT":                 "9000",
		"JWT_SECRET_KEY":       "s",
		"ACCESS_TOKEN_TTL":     "300",
		"DB_DRIVER":            "sqlite",
		"MAX_PAGE_SIZE":        "20",
		"DEFAULT_PAGE_SIZE":    "50",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com",
		"OTEL_SAMPLE_RATIO":    "2",
	}})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != "9000" || cfg.DB.Driver != "sqlite" {
		t.Fatalf("port/driver: got=%s/%s", cfg.Port, cfg.DB.Driver)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("access ttl: want=5m got=%s", cfg.AccessTokenTTL)
	}
	if cfg.DefaultPageSize != 20 {
		t.Fatalf("default page size clamp: want=20 got=%d", cfg.DefaultPageSize)
	}
	if cfg.BusDriver != BusNone {
		t.Fatalf("bus driver: want=%s got=%s", BusNone, cfg.BusDriver)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("origins: got=%v", cfg.AllowedOrigins)
	}
	if cfg.Otel.SampleRatio != 1 {
		t.Fatalf("sample ratio clamp: want=1 got=%v", cfg.Otel.SampleRatio)
	}
	if p := cfg.Paging(); p.DefaultSize != 20 || p.MaxSize != 20 {
		t.Fatalf("paging: got=%+v", p)
	}
}

func TestLoadConfigRejectsInvalidSettings(t *testing.T) {
	clearEnv(t, "JWT_SECRET_KEY", "BUS_DRIVER", "REDIS_ADDR", "NATS_URL")
	cases := map[string]map[string]string{
		"missing secret":     {},
		"redis without addr": {"JWT_SECRET_KEY": "s", "BUS_DRIVER": "redis"},
		"nats without url":   {"JWT_SECRET_KEY": "s", "BUS_DRIVER": "nats"},
		"unknown bus driver": {"JWT_SECRET_KEY": "s", "BUS_DRIVER": "kafka"},
	}
	for name, fallback := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(testLogger(t), envutil.Source{Fallback: fallback}); err == nil {
				t.Fatalf("want error")
			}
		})
	}
}

func TestBusDriverFollowsConfiguredEndpoints(t *testing.T) {
	clearEnv(t, "JWT_SECRET_KEY", "BUS_DRIVER", "REDIS_ADDR", "NATS_URL")
	cfg, err := loadConfig(testLogger(t), envutil.Source{Fallback: map[string]string{
		"JWT_SECRET_KEY": "s",
		"NATS_URL":       "nats://localhost:4222",
	}})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.BusDriver != BusNATS {
		t.Fatalf("bus driver: want=%s got=%s", BusNATS, cfg.BusDriver)
	}
}
