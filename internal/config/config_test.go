package config

import (
	"io"
	"log"
	"testing"
	"time"
)

func init() { log.SetOutput(io.Discard) }

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("AUTO_MIGRATE", "nope")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("TIME_ZONE", "")

	cfg := Load()
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("HTTPAddr=%s", cfg.HTTPAddr)
	}
	if cfg.JWTTTL != 30*time.Minute {
		t.Fatalf("JWTTTL=%s", cfg.JWTTTL)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("invalid bool should fall back to the default")
	}
	if cfg.TelegramChatID != -100123 {
		t.Fatalf("TelegramChatID=%d", cfg.TelegramChatID)
	}
	if cfg.TimeZone.String() != "Europe/Rome" {
		t.Fatalf("TimeZone=%s", cfg.TimeZone)
	}
}
