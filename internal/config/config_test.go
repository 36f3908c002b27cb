package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != "5175" || cfg.StoreDriver != "memory" || cfg.WordMode != "random" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DefaultAttempts != 6 || cfg.AverageInterval != time.Minute || cfg.ReminderInterval != time.Hour {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SESFromEmail != "" || cfg.RedisAddr != "" {
		t.Errorf("optional integrations enabled by default: %+v", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", "/tmp/h.db")
	t.Setenv("WORD_MODE", "daily")
	t.Setenv("DEFAULT_ATTEMPTS", "8")
	t.Setenv("AVERAGE_INTERVAL", "30s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.StoreDriver != "sqlite" || cfg.DatabasePath != "/tmp/h.db" || cfg.WordMode != "daily" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DefaultAttempts != 8 || cfg.AverageInterval != 30*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STORE_DRIVER", "postgres"},
		{"WORD_MODE", "weekly"},
		{"DEFAULT_ATTEMPTS", "0"},
		{"DEFAULT_ATTEMPTS", "six"},
		{"REMINDER_INTERVAL", "-1h"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Parse(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
