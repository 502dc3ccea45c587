package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	LogsDir              string        `koanf:"logs_dir"`
	ChatLogName          string        `koanf:"chat_log_name"`
	DeletedLogName       string        `koanf:"deleted_log_name"`
	AuthDBPath           string        `koanf:"auth_db_path"`
	LogLevel             string        `koanf:"log_level"`
	Timezone             string        `koanf:"timezone"`
	Workers              int           `koanf:"workers"`
	QueueSize            int           `koanf:"queue_size"`
	ReconnectMaxAttempts int           `koanf:"reconnect_max_attempts"`
	ReconnectMinInterval time.Duration `koanf:"reconnect_min_interval"`
	HTTPEnabled          bool          `koanf:"http_enabled"`
	HTTPPort             int           `koanf:"http_port"`
	MediaKinds           []string      `koanf:"media_kinds"`
	AppEnv               AppEnv        `koanf:"app_env"`
}

var defaults = map[string]any{
	"logs_dir":               "./logs",
	"chat_log_name":          "chat.log",
	"deleted_log_name":       "deleted_messages.log",
	"auth_db_path":           "./auth/whatsmeow.db",
	"log_level":              "info",
	"timezone":               "Local",
	"workers":                1,
	"queue_size":             64,
	"reconnect_max_attempts": 10,
	"reconnect_min_interval": "2s",
	"http_enabled":           true,
	"http_port":              8080,
	"media_kinds":            domain.MediaKindNames(),
	"app_env":                "production",
}

// Load reads configuration from path, or from the first config.* file in
// the working directory when path is empty. Environment variables override
// file values; a .env file is loaded into the environment first.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, oops.With("context", "loading .env").Wrap(err)
	}

	configFile, found := path, path != ""
	if !found {
		// Use lo.Find to find the first existing config file
		configFile, found = lo.Find([]string{
			"config.yaml",
			"config.yml",
			"config.json",
			"config.toml",
		}, func(file string) bool {
			_, err := os.Stat(file)
			return err == nil
		})
	}

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse AppEnv from string if needed
	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.LogsDir == "" {
		errs = append(errs, errors.New("logs_dir must not be empty"))
	}
	if c.ChatLogName == "" || c.DeletedLogName == "" {
		errs = append(errs, errors.New("log names must not be empty"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("queue_size must be at least 1, got %d", c.QueueSize))
	}
	if c.ReconnectMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("reconnect_max_attempts must be at least 1, got %d", c.ReconnectMaxAttempts))
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("http_port out of range: %d", c.HTTPPort))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Kinds(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return oops.In("config").With("errors", len(errs)).Wrap(errors.Join(append([]error{apperrors.ErrInvalidConfig}, errs...)...))
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Kinds parses media_kinds.
func (c *Config) Kinds() ([]domain.MediaKind, error) {
	kinds := make([]domain.MediaKind, 0, len(c.MediaKinds))
	for _, name := range c.MediaKinds {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kind, err := domain.ParseMediaKind(name)
		if err != nil {
			return nil, fmt.Errorf("media_kinds: %w", err)
		}
		kinds = append(kinds, kind)
	}
	return lo.Uniq(kinds), nil
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

func (c *Config) ChatLogPath() string {
	return filepath.Join(c.LogsDir, c.ChatLogName)
}

func (c *Config) DeletedLogPath() string {
	return filepath.Join(c.LogsDir, c.DeletedLogName)
}
