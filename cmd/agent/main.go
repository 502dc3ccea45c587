package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/reshetovitsme/wa-capture-agent/internal/di"
	connectionService "github.com/reshetovitsme/wa-capture-agent/internal/modules/connection/service"
	messageService "github.com/reshetovitsme/wa-capture-agent/internal/modules/message/service"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/config"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
	httpServer "github.com/reshetovitsme/wa-capture-agent/internal/transport/http"
	"github.com/reshetovitsme/wa-capture-agent/internal/transport/whatsapp"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	var opts di.Options
	flagSet := pflag.NewFlagSet("wa-capture-agent", pflag.ContinueOnError)
	flagSet.StringVar(&opts.ConfigPath, "config", "", "path to a config file (default: first of config.yaml|yml|json|toml)")
	flagSet.StringVar(&opts.LogsDir, "logs-dir", "", "directory for chat logs and media (overrides logs_dir)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	// Setup dependency injection
	injector := di.Setup(opts)
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	level, _ := cfg.Level()
	setupLogging(level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pipeline, err := do.Invoke[*messageService.Pipeline](injector)
	if err != nil {
		slog.Error("Failed to initialize message pipeline", "error", err)
		return 1
	}
	pipeline.Start(ctx)

	if _, err := do.Invoke[*whatsapp.Router](injector); err != nil {
		slog.Error("Failed to initialize session", "error", err)
		return 1
	}
	supervisor := do.MustInvoke[*connectionService.Supervisor](injector)

	var server backgroundServer
	if cfg.HTTPEnabled {
		server = do.MustInvoke[*httpServer.Server](injector)
	}

	slog.Info("Application started", "logs_dir", cfg.LogsDir, "workers", cfg.Workers, "env", cfg.AppEnv)
	slog.Info("Press Ctrl+C to stop")

	err, serveErr := superviseAndServe(ctx, supervisor.Run, server)
	if serveErr != nil {
		slog.Error("HTTP server failed", "error", serveErr)
		return 1
	}
	switch {
	case err == nil:
		slog.Info("Shutting down...")
		return 0
	case errors.Is(err, apperrors.ErrLoggedOut):
		slog.Warn("Session logged out, remove the auth database and restart to pair again", "auth_db_path", cfg.AuthDBPath)
		return 0
	case connectionService.IsTerminal(err):
		slog.Warn("Session ended", "error", err)
		return 0
	default:
		slog.Error("Connection failed", "error", err)
		return 1
	}
}

// setupLogging installs structured logging with multiple handlers using slog-multi
func setupLogging(level slog.Level) {
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	// Use Fanout to send logs to both handlers
	slog.SetDefault(slog.New(slogmulti.Fanout(textHandler, jsonHandler)))
}
