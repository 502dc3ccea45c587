package di

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	chatlog "github.com/reshetovitsme/wa-capture-agent/internal/modules/chatlog/repository"
	connectionService "github.com/reshetovitsme/wa-capture-agent/internal/modules/connection/service"
	mediaService "github.com/reshetovitsme/wa-capture-agent/internal/modules/media/service"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	messageService "github.com/reshetovitsme/wa-capture-agent/internal/modules/message/service"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/clock"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/config"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/metrics"
	httpServer "github.com/reshetovitsme/wa-capture-agent/internal/transport/http"
	"github.com/reshetovitsme/wa-capture-agent/internal/transport/whatsapp"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Options are the command-line overrides applied on top of the loaded config.
type Options struct {
	ConfigPath string
	LogsDir    string
}

// Setup initializes the dependency injection container
func Setup(opts Options) do.Injector {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		if opts.LogsDir != "" {
			cfg.LogsDir = opts.LogsDir
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	})

	do.Provide(injector, func(i do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		return reg, nil
	})

	do.Provide(injector, func(i do.Injector) (*metrics.Metrics, error) {
		return metrics.New(do.MustInvoke[*prometheus.Registry](i)), nil
	})

	// Register Log Repository
	do.Provide(injector, func(i do.Injector) (chatlog.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := chatlog.NewFileStorage(map[domain.LogTarget]string{
			domain.LogTargetChat:    cfg.ChatLogPath(),
			domain.LogTargetDeleted: cfg.DeletedLogPath(),
		})
		if err != nil {
			return nil, oops.With("logs_dir", cfg.LogsDir, "context", "failed to initialize log repository").Wrap(err)
		}
		return repo, nil
	})

	// Register WhatsApp Session
	do.Provide(injector, func(i do.Injector) (*whatsapp.Session, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return whatsapp.NewSession(ctx, cfg.AuthDBPath, slog.Default())
	})

	// Register Media Service
	do.Provide(injector, func(i do.Injector) (*mediaService.Service, error) {
		session, err := do.Invoke[*whatsapp.Session](i)
		if err != nil {
			return nil, err
		}
		source := whatsapp.NewMediaSource(session.Client(), "")
		stamper := clock.NewStamper(clock.Real())
		return mediaService.New(source, stamper, do.MustInvoke[*metrics.Metrics](i), slog.Default()), nil
	})

	// Register Message Handler
	do.Provide(injector, func(i do.Injector) (*messageService.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		downloader, err := do.Invoke[*mediaService.Service](i)
		if err != nil {
			return nil, err
		}
		loc, _ := cfg.Location()
		kinds, _ := cfg.Kinds()
		return messageService.NewHandler(downloader, do.MustInvoke[chatlog.Repository](i), messageService.Options{
			MediaRoot:    cfg.LogsDir,
			Location:     loc,
			EnabledKinds: kinds,
		}, do.MustInvoke[*metrics.Metrics](i), slog.Default()), nil
	})

	do.Provide(injector, func(i do.Injector) (*messageService.Pipeline, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler, err := do.Invoke[*messageService.Handler](i)
		if err != nil {
			return nil, err
		}
		return messageService.NewPipeline(handler, cfg.Workers, cfg.QueueSize), nil
	})

	// Register Connection Supervisor
	do.Provide(injector, func(i do.Injector) (*connectionService.Supervisor, error) {
		cfg := do.MustInvoke[*config.Config](i)
		session, err := do.Invoke[*whatsapp.Session](i)
		if err != nil {
			return nil, err
		}
		return connectionService.New(session, do.MustInvoke[chatlog.Repository](i), connectionService.Options{
			MaxAttempts: cfg.ReconnectMaxAttempts,
			MinInterval: cfg.ReconnectMinInterval,
		}, do.MustInvoke[*metrics.Metrics](i), slog.Default()), nil
	})

	// Register Event Router (subscribes itself to the session)
	do.Provide(injector, func(i do.Injector) (*whatsapp.Router, error) {
		session, err := do.Invoke[*whatsapp.Session](i)
		if err != nil {
			return nil, err
		}
		pipeline, err := do.Invoke[*messageService.Pipeline](i)
		if err != nil {
			return nil, err
		}
		supervisor, err := do.Invoke[*connectionService.Supervisor](i)
		if err != nil {
			return nil, err
		}
		router := whatsapp.NewRouter(pipeline, supervisor, slog.Default())
		session.AddHandler(router.Handle)
		return router, nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		supervisor, err := do.Invoke[*connectionService.Supervisor](i)
		if err != nil {
			return nil, err
		}
		return httpServer.New(cfg.HTTPPort, supervisor, do.MustInvoke[*prometheus.Registry](i), slog.Default()), nil
	})

	return injector
}

// Shutdown gracefully shuts down all services that were started: the HTTP
// server and the session first so no new events arrive, then the pipeline
// is drained and the logs are closed.
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error

	if server, ok := invoked[*httpServer.Server](injector); ok {
		errs = append(errs, server.Shutdown(ctx))
	}
	if session, ok := invoked[*whatsapp.Session](injector); ok {
		errs = append(errs, session.Close())
	}
	if pipeline, ok := invoked[*messageService.Pipeline](injector); ok {
		pipeline.Close()
	}
	if repo, ok := invoked[chatlog.Repository](injector); ok {
		errs = append(errs, repo.Close())
	}

	return errors.Join(errs...)
}

// invoked returns the service only if it has already been built, so that
// shutdown never constructs anything.
func invoked[T any](injector do.Injector) (T, bool) {
	var zero T
	name := do.NameOf[T]()
	for _, desc := range injector.ListInvokedServices() {
		if desc.Service == name {
			svc, err := do.InvokeNamed[T](injector, name)
			return svc, err == nil
		}
	}
	return zero, false
}
