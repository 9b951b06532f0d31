package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/mjeanroy/exiftool"
	"github.com/mjeanroy/exiftool/internal/api"
	"github.com/mjeanroy/exiftool/internal/config"
	"github.com/mjeanroy/exiftool/internal/events"
	"github.com/mjeanroy/exiftool/internal/logging"
	"github.com/mjeanroy/exiftool/internal/metrics"
	"github.com/mjeanroy/exiftool/internal/updater"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"exifd.toml"`

	// Server settings
	Port string `help:"Address to listen on" short:"p" default:":8080" toml:"server.port" env:"SERVER_PORT"`

	// Engine settings
	ExiftoolPath string `help:"Path to the exiftool executable" default:"" toml:"engine.path" env:"ENGINE_PATH"`
	StayOpen     bool   `help:"Keep a persistent exiftool worker" default:"true" toml:"engine.stay_open" env:"ENGINE_STAY_OPEN"`
	PoolSize     int    `help:"Number of persistent workers (0 = single worker)" default:"0" toml:"engine.pool_size" env:"ENGINE_POOL_SIZE"`
	IdleTimeout  string `help:"Worker idle teardown delay (0 disables)" default:"10m" toml:"engine.idle_timeout" env:"ENGINE_IDLE_TIMEOUT"`
	Numeric      bool   `help:"Return machine-parsable numeric tag values" default:"false" toml:"engine.numeric_output" env:"ENGINE_NUMERIC_OUTPUT"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username (empty disables auth)" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Self-update settings
	UpdateEnabled    bool   `help:"Enable the self-update endpoints" default:"false" toml:"update.enabled" env:"UPDATE_ENABLED"`
	UpdateRepository string `help:"GitHub repository for updates" default:"mjeanroy/exiftool" toml:"update.repository" env:"UPDATE_REPOSITORY"`
	UpdatePrerelease bool   `help:"Include prereleases when checking for updates" default:"false" toml:"update.prerelease" env:"UPDATE_PRERELEASE"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingEngine  string `help:"Engine logging level" default:"info" toml:"logging.engine" env:"LOGGING_ENGINE"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingProcess string `help:"Process supervision logging level" default:"info" toml:"logging.process" env:"LOGGING_PROCESS"`
	LoggingHTTP    string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"engine":  opts.LoggingEngine,
				"api":     opts.LoggingAPI,
				"process": opts.LoggingProcess,
				"http":    opts.LoggingHTTP,
			},
		})

		logger := logging.GetLogger("main")

		// In-process event bus linking the engine to metrics
		eventBus := events.New()
		eventBus.Subscribe(func(ev events.EngineStateChangedEvent) {
			metrics.ObserveStateTransition(ev.NewState)
		})
		eventBus.Subscribe(func(events.WorkerRespawnedEvent) {
			metrics.ObserveRespawn()
		})
		eventBus.Subscribe(func(ev events.MetadataReadEvent) {
			logging.GetLogger("engine").Debug("Metadata read",
				"file", ev.File, "tags", ev.TagCount, "duration", ev.Duration)
		})
		eventBus.Subscribe(func(ev events.MetadataWrittenEvent) {
			logging.GetLogger("engine").Debug("Metadata written",
				"file", ev.File, "tags", ev.TagCount, "duration", ev.Duration)
		})

		engine, err := buildEngine(opts, eventBus)
		if err != nil {
			logger.Error("Failed to create exiftool engine", "error", err)
			os.Exit(1)
		}
		logger.Info("ExifTool engine ready",
			"path", opts.ExiftoolPath,
			"version", engine.Version().String(),
			"pool_size", opts.PoolSize,
		)

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			ExiftoolPath: opts.ExiftoolPath,
			Engine:       engine,
			EventBus:     eventBus,
		}

		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = metrics.HTTPHandler()
		}

		if opts.UpdateEnabled {
			updateService, updateErr := updater.NewService(&updater.Options{
				Repository: opts.UpdateRepository,
				Prerelease: opts.UpdatePrerelease,
			})
			if updateErr != nil {
				logger.Warn("Failed to initialize update service", "error", updateErr)
			} else {
				apiOpts.UpdateService = updateService
			}
		}

		server := api.NewServer(apiOpts)

		// Watch the config file so log levels can change without a restart
		watcher := newLoggingWatcher(opts.Config, eventBus)

		hooks.OnStart(func() {
			if watcher != nil {
				if watchErr := watcher.Start(); watchErr != nil {
					logger.Warn("Config watcher unavailable", "error", watchErr)
				}
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Error("Error stopping config watcher", "error", stopErr)
				}
			}
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if closeErr := engine.Close(); closeErr != nil {
				logger.Error("Error closing exiftool engine", "error", closeErr)
			}
		})
	})

	cli.Root().Use = "exifd"
	cli.Root().Short = "File metadata service backed by exiftool"

	cli.Root().AddCommand(CreateReadCmd())
	cli.Root().AddCommand(CreateWriteCmd())
	cli.Root().AddCommand(CreateVersionCmd())
	cli.Root().AddCommand(CreateUpdateCmd())

	cli.Run()
}

// buildEngine assembles the engine from the CLI options: pooled workers when
// pool_size is set, a single stay-open worker otherwise, one-shot processes
// when stay_open is off.
func buildEngine(opts *Options, eventBus *events.Bus) (*exiftool.ExifTool, error) {
	idleTimeout, err := time.ParseDuration(opts.IdleTimeout)
	if err != nil {
		idleTimeout = exiftool.DefaultIdleTimeout
	}

	engineOpts := []exiftool.Option{
		exiftool.WithPath(opts.ExiftoolPath),
		exiftool.WithLogger(logging.GetLogger("engine")),
		exiftool.WithStateListener(func(old, updated exiftool.State) {
			now := time.Now().Format(time.RFC3339)
			eventBus.Publish(events.EngineStateChangedEvent{
				OldState:  string(old),
				NewState:  string(updated),
				Timestamp: now,
			})
			if old == exiftool.StateStopped && updated == exiftool.StateRunning {
				eventBus.Publish(events.WorkerRespawnedEvent{
					Path:      opts.ExiftoolPath,
					Timestamp: now,
				})
			}
		}),
	}

	if opts.Numeric {
		engineOpts = append(engineOpts, exiftool.WithNumericOutput())
	}

	switch {
	case opts.PoolSize > 0:
		engineOpts = append(engineOpts, exiftool.WithPoolSize(opts.PoolSize, idleTimeout))
	case opts.StayOpen:
		engineOpts = append(engineOpts, exiftool.WithStayOpen(idleTimeout))
	}

	return exiftool.New(engineOpts...)
}

// newLoggingWatcher wires the config file watcher to runtime log level
// updates. Returns nil when no config path is set.
func newLoggingWatcher(configPath string, eventBus *events.Bus) *config.Watcher[logging.Config] {
	if configPath == "" {
		return nil
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil
	}

	watcher := config.NewConfigWatcher(
		configPath,
		func(path string) (logging.Config, error) {
			return config.LoadLoggingConfig(path), nil
		},
		logging.GetLogger("config"),
	)

	watcher.OnReload(func(cfg logging.Config) {
		logging.SetLevel("", cfg.Level)
		for module, level := range cfg.Modules {
			logging.SetLevel(module, level)
		}
		eventBus.Publish(events.ConfigReloadedEvent{
			Level:     cfg.Level,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	})

	return watcher
}
