package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/behavior/builtin"
	"github.com/clavis/keymapd/pkg/config"
	"github.com/clavis/keymapd/pkg/engine"
	"github.com/clavis/keymapd/pkg/layout"
	"github.com/clavis/keymapd/pkg/metrics"
	"github.com/clavis/keymapd/pkg/rpc/httpapi"
	"github.com/clavis/keymapd/pkg/split"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the keymap engine",
	Long: `Run the keymap engine: load the declarative keymap, assign behavior
local IDs, reconcile persisted edits, select the initial physical layout,
and start dispatching events. Serves the management/inspection HTTP API
and, if enabled, a Prometheus metrics endpoint.

Examples:
  # Run with the default config search path
  keymapd serve

  # Run with an explicit config file
  keymapd serve --config /etc/keymapd/config.yaml`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, keymapCfg, err := loadConfigPair(GetConfigFile())
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: cfg.Logging.Output}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := config.CreateStore(cfg.Persistence)
	if err != nil {
		return err
	}

	idPolicy, err := config.CreateLocalIDPolicy(cfg.BehaviorIDs, store)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("metrics enabled", "port", cfg.Metrics.Port)
	}

	eng, err := engine.New(engine.Options{
		Config:      cfg,
		KeymapCfg:   keymapCfg,
		Store:       store,
		Behaviors:   builtin.Behaviors(),
		IDPolicy:    idPolicy,
		Split:       split.LocalDispatcher{},
		ScanSources: map[string]layout.ScanSource{},
	})
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	logger.Info("engine started",
		"layer_count", eng.Keymap.LayerCount(),
		"key_count", eng.Keymap.KeyCount(),
		"active_layout", eng.Layouts.Active().Name,
	)

	servers := startServers(cfg, eng)
	defer shutdownServers(servers)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("keymapd is running, press Ctrl+C to stop")
	<-sigChan
	signal.Stop(sigChan)

	logger.Info("shutdown signal received, stopping engine")
	if err := eng.Stop(); err != nil {
		logger.Error("engine stop error", logger.Err(err))
		return err
	}
	return nil
}

// startServers launches the API and metrics HTTP servers named by cfg and
// returns whichever of the two were actually started, for shutdownServers
// to drain. Neither server blocks the caller: both run ListenAndServe in
// their own goroutine and log (rather than crash the process) on any
// error other than the expected http.ErrServerClosed from Shutdown.
func startServers(cfg *config.Config, eng *engine.Engine) []*http.Server {
	var servers []*http.Server

	if cfg.API.Enabled {
		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.API.Port),
			Handler:      httpapi.NewRouter(eng.HTTPHandler()),
			ReadTimeout:  cfg.API.ReadTimeout,
			WriteTimeout: cfg.API.WriteTimeout,
		}
		go serveAndLog(srv, "api")
		servers = append(servers, srv)
		logger.Info("api server listening", "port", cfg.API.Port)
	}

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Metrics.Port), Handler: mux}
		go serveAndLog(srv, "metrics")
		servers = append(servers, srv)
		logger.Info("metrics server listening", "port", cfg.Metrics.Port)
	}

	return servers
}

func serveAndLog(srv *http.Server, name string) {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(name+" server failed", logger.Err(err))
	}
}

func shutdownServers(servers []*http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		_ = srv.Shutdown(ctx)
	}
}

// loadConfigPair loads the ambient server config and, from its
// KeymapFile field, the declarative keymap document.
func loadConfigPair(configPath string) (*config.Config, *config.KeymapConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	keymapCfg, err := config.LoadKeymap(cfg.KeymapFile)
	if err != nil {
		return nil, nil, err
	}

	return cfg, keymapCfg, nil
}
