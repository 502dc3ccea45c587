package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "{}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	if cfg.LogsDir != "./logs" || cfg.ChatLogPath() != filepath.Join("logs", "chat.log") {
		t.Errorf("logs_dir=%q chat=%q", cfg.LogsDir, cfg.ChatLogPath())
	}
	if cfg.DeletedLogPath() != filepath.Join("logs", "deleted_messages.log") {
		t.Errorf("deleted=%q", cfg.DeletedLogPath())
	}
	if cfg.Workers != 1 || cfg.QueueSize != 64 || cfg.ReconnectMaxAttempts != 10 {
		t.Errorf("unexpected pool settings %+v", cfg)
	}
	if cfg.ReconnectMinInterval != 2*time.Second {
		t.Errorf("reconnect_min_interval = %v", cfg.ReconnectMinInterval)
	}
	if !cfg.HTTPEnabled || cfg.HTTPPort != 8080 || cfg.AppEnv != AppEnvProduction {
		t.Errorf("unexpected http/app settings %+v", cfg)
	}
	kinds, _ := cfg.Kinds()
	if len(kinds) != len(domain.MediaKindNames()) {
		t.Errorf("all media kinds should be enabled by default, got %v", kinds)
	}
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, "agent.yaml", `
logs_dir: /var/lib/wa/logs
workers: 4
reconnect_min_interval: 500ms
media_kinds: [image, document]
timezone: Asia/Kolkata
app_env: development
`)
	t.Setenv("WORKERS", "6")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogsDir != "/var/lib/wa/logs" {
		t.Errorf("logs_dir = %q", cfg.LogsDir)
	}
	if cfg.Workers != 6 || cfg.HTTPPort != 9090 {
		t.Errorf("environment should override the file: workers=%d port=%d", cfg.Workers, cfg.HTTPPort)
	}
	if cfg.ReconnectMinInterval != 500*time.Millisecond {
		t.Errorf("reconnect_min_interval = %v", cfg.ReconnectMinInterval)
	}
	kinds, err := cfg.Kinds()
	if err != nil || !slices.Equal(kinds, []domain.MediaKind{domain.MediaKindImage, domain.MediaKindDocument}) {
		t.Errorf("kinds = %v, %v", kinds, err)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Asia/Kolkata" {
		t.Errorf("location = %v, %v", loc, err)
	}
	if cfg.AppEnv != AppEnvDevelopment {
		t.Errorf("app_env = %q", cfg.AppEnv)
	}
}

func TestLoad_JSONAndUnknownEnv(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"app_env": "staging", "log_level": "debug"}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppEnv != AppEnvProduction {
		t.Errorf("unknown app_env should fall back to production, got %q", cfg.AppEnv)
	}
	if level, err := cfg.Level(); err != nil || level != slog.LevelDebug {
		t.Errorf("level = %v, %v", level, err)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.ini", "workers=2")); err == nil {
		t.Fatal("expected an error for .ini")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogsDir: "./logs", ChatLogName: "chat.log", DeletedLogName: "deleted_messages.log",
			LogLevel: "info", Timezone: "UTC", Workers: 1, QueueSize: 1, ReconnectMaxAttempts: 1,
			HTTPPort: 8080, MediaKinds: []string{"image"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"zero queue", func(c *Config) { c.QueueSize = 0 }},
		{"zero attempts", func(c *Config) { c.ReconnectMaxAttempts = 0 }},
		{"port too high", func(c *Config) { c.HTTPPort = 70000 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"bad kind", func(c *Config) { c.MediaKinds = []string{"image", "gif"} }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"empty logs dir", func(c *Config) { c.LogsDir = "" }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("baseline should validate: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, apperrors.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
