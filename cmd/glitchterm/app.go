package main

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"glitchterm/internal/api"
	"glitchterm/internal/config"
	"glitchterm/internal/eventbus"
	"glitchterm/internal/logging"
	"glitchterm/internal/metrics"
	"glitchterm/internal/store"
)

const logFileName = "glitchterm.log"

type globalOptions struct {
	configPath  string
	verbose     bool
	metricsAddr string
}

// app holds the services shared by every command
type app struct {
	configSvc     config.ConfigService
	cfg           *config.Config
	logger        *zap.Logger
	metrics       *metrics.Metrics
	bus           eventbus.EventBus
	client        *api.Client
	accounts      *store.MemoryAccountStore
	relationships *store.MemoryRelationshipStore
	stopMetrics   context.CancelFunc
}

func newApp(ctx context.Context, opts *globalOptions) (*app, error) {
	configSvc := config.NewConfigService(opts.configPath)

	logger, err := logging.New(filepath.Join(filepath.Dir(configSvc.Path()), logFileName), opts.verbose)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New(logger)
	configSvc = config.NewConfigServiceWithBus(configSvc.Path(), bus)
	_, statErr := os.Stat(configSvc.Path())
	cfg, err := configSvc.Load()
	if err != nil {
		bus.Close()
		_ = logger.Sync()
		return nil, errors.Wrapf(err, "load config from %s", configSvc.Path())
	}
	if os.IsNotExist(statErr) {
		// First run: leave a starter file to fill in
		if err := configSvc.Save(config.DefaultConfig()); err != nil {
			logger.Warn("could not write starter config", zap.Error(err))
		} else {
			logger.Info("wrote starter config", zap.String("path", configSvc.Path()))
		}
	}
	if cfg.LocalDomain == "" {
		cfg.LocalDomain = hostOf(cfg.InstanceURL)
	}

	a := &app{
		configSvc:     configSvc,
		cfg:           cfg,
		logger:        logger,
		metrics:       metrics.New(),
		bus:           bus,
		accounts:      store.NewMemoryAccountStore(),
		relationships: store.NewMemoryRelationshipStore(),
		stopMetrics:   func() {},
	}
	a.accounts.OnImport(func(ids []string) {
		bus.Publish(eventbus.AccountsImportedEvent{IDs: ids})
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			logger.Warn(ev.Message, zap.Error(ev.Err))
		}
	})

	a.client, err = api.New(cfg.InstanceURL, cfg.AccessToken,
		api.WithLogger(logger),
		api.WithMetrics(a.metrics),
	)
	if err != nil {
		a.Close()
		return nil, errors.Wrapf(err, "instance_url must be set in %s or via GLITCHTERM_INSTANCE_URL", configSvc.Path())
	}

	if opts.metricsAddr != "" {
		metricsCtx, cancel := context.WithCancel(ctx)
		a.stopMetrics = cancel
		go a.metrics.Serve(metricsCtx, opts.metricsAddr, logger)
	}

	logger.Debug("started",
		zap.String("config", configSvc.Path()),
		zap.String("instance", cfg.InstanceURL),
	)
	return a, nil
}

// Close stops background services and flushes the log
func (a *app) Close() {
	a.stopMetrics()
	a.bus.Close()
	_ = a.logger.Sync()
}

func hostOf(instanceURL string) string {
	u, err := url.Parse(instanceURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
