package command

import (
	"context"
	"sync/atomic"

	"github.com/urfave/cli/v2"

	"github.com/plainsight/plainsight-go/internal/cli/config"
	"github.com/plainsight/plainsight-go/internal/imageio"
	"github.com/plainsight/plainsight-go/internal/infra/buildinfo"
	"github.com/plainsight/plainsight-go/internal/infra/confloader"
	"github.com/plainsight/plainsight-go/internal/infra/shutdown"
	"github.com/plainsight/plainsight-go/internal/infra/tlsroots"
	"github.com/plainsight/plainsight-go/internal/server/httpserver"
	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
	"github.com/plainsight/plainsight-go/internal/telemetry/metric"
)

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides server.addr)",
			},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	st, err := getState(c)
	if err != nil {
		return err
	}
	cfg := st.cfg.Server
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	log := st.log.With("component", "server")

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	format, err := imageio.ParseOutputFormat(st.cfg.Image.OutputFormat)
	if err != nil {
		return err
	}

	var ready atomic.Bool
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Service:           st.svc,
		Metrics:           metric.Global(),
		Logger:            st.log,
		MaxUploadBytes:    cfg.MaxUploadBytes,
		DefaultFormat:     format,
		Version:           buildinfo.Get().Version,
		RateLimit:         cfg.RateLimit,
		RateBurst:         cfg.RateBurst,
		TrustProxyHeaders: cfg.TrustProxy,
		Ready:             ready.Load,
	})

	srvCfg := httpserver.Config{
		Addr:         cfg.Addr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Hooks run in reverse order: the server stops before the watchers.
	sh := shutdown.NewHandler(cfg.ShutdownTimeout)

	if cfg.TLSEnabled() {
		tlsCfg, certs, err := tlsroots.NewServerConfig(tlsroots.ServerOptions{
			CertFile:     cfg.TLSCertFile,
			KeyFile:      cfg.TLSKeyFile,
			ClientCAFile: cfg.TLSClientCAFile,
			Logger:       log,
		})
		if err != nil {
			return err
		}
		certs.StartAsync(ctx)
		sh.OnShutdown(func(context.Context) error {
			certs.Stop()
			return nil
		})
		srvCfg.TLSConfig = tlsCfg
	}

	if st.configPath != "" {
		watcher, err := watchConfig(ctx, st, log)
		if err != nil {
			log.Warn("config reload disabled", "error", err)
		} else {
			sh.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	srv := httpserver.New(srvCfg, router)
	ln, err := srv.Listen()
	if err != nil {
		sh.Shutdown()
		return err
	}

	sh.OnShutdown(func(ctx context.Context) error {
		ready.Store(false)
		log.Info("shutting down HTTP server")
		return srv.Shutdown(ctx)
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil {
			log.Error("HTTP server error", "error", err)
			serveErr <- err
			cancel()
		}
	}()

	ready.Store(true)
	log.Info("HTTP server listening", "addr", ln.Addr().String(), "tls", srv.TLS(), "version", buildinfo.Get().Version)

	if err := sh.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	select {
	case err := <-serveErr:
		return err
	default:
	}
	log.Info("server stopped gracefully")
	return nil
}

// watchConfig reapplies the log level whenever the config file changes.
// Other settings take effect on the next start.
func watchConfig(ctx context.Context, st *state, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(st.configPath); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := config.Load(path, st.overrides)
		if err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})
	watcher.StartAsync(ctx)
	return watcher, nil
}
