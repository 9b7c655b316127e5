package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/google/subcommands"
	"go.uber.org/zap"

	"stock-exchange-go/config"
	"stock-exchange-go/exchange"
	"stock-exchange-go/infrastructure/logger"
	"stock-exchange-go/market"
	"stock-exchange-go/metrics"
)

// serveCmd implements "serve".
type serveCmd struct {
	catalogFlags
	tradesPath string
	refresh    time.Duration
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serves exchange analytics as Prometheus metrics" }
func (*serveCmd) Usage() string {
	return `serve -config <file> [-trades <file>] [-refresh 10s]

Replays the optional trade file, then serves /metrics on metrics.addr.
VWAP gauges and the All Share Index are recomputed every refresh interval.
The stock catalog is reloaded when the config file changes.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.tradesPath, "trades", "", "trade file (YAML) replayed at startup")
	f.DurationVar(&c.refresh, "refresh", 10*time.Second, "analytics refresh interval")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, reg, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer log.Close()

	if err := c.run(ctx, cfg, reg, log); err != nil {
		log.LogError(err, map[string]interface{}{"cmd": "serve"})
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) run(ctx context.Context, cfg config.AppConfig, reg *market.Registry, log *logger.Logger) error {
	if cfg.Metrics.Addr == "" {
		return errors.New("metrics.addr is required for serve")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := metrics.New(metrics.Config{Namespace: cfg.Metrics.Namespace, Subsystem: "exchange"})
	monitor.SetCatalogSize(reg.Len())

	ex := exchange.New(exchange.Config{Logger: log.Logger, Recorder: monitor})
	if err := replay(ex, c.tradesPath, reg); err != nil {
		return fmt.Errorf("replay trades: %w", err)
	}
	log.LogTrade("replayed", map[string]interface{}{"trades": ex.Len(), "env": cfg.Env})
	window := time.Duration(cfg.Exchange.VWAPWindowMinutes) * time.Minute
	refreshAnalytics(ex, reg, window, log)

	watcher := config.Watcher{Path: c.configPath, Cooldown: time.Second, Logger: log.Logger}
	go func() {
		err := watcher.Start(ctx, func(next config.AppConfig) {
			stocks, err := config.BuildStocks(next)
			if err == nil {
				err = reg.Replace(stocks)
			}
			if err != nil {
				log.LogError(err, map[string]interface{}{"event": "catalog_reload"})
				return
			}
			monitor.SetCatalogSize(reg.Len())
			log.Info("catalog_reloaded", zap.Strings("symbols", reg.Symbols()))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("config_watcher_stopped", zap.Error(err))
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", monitor.Handler())
	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("serving", zap.String("addr", cfg.Metrics.Addr))
	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warn("sd_notify_failed", zap.Error(err))
	}

	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return fmt.Errorf("metrics server: %w", err)
		case <-ticker.C:
			refreshAnalytics(ex, reg, window, log)
		}
	}
}

// refreshAnalytics 重新计算各代码 VWAP 与全股指数，结果经 Recorder 写入指标。
func refreshAnalytics(ex *exchange.Exchange, reg *market.Registry, window time.Duration, log *logger.Logger) {
	fields := map[string]interface{}{"window": window.String()}
	for _, sym := range reg.Symbols() {
		if v, ok := ex.VolumeWeightedPrice(sym, window); ok {
			fields[sym] = v
		}
	}
	if idx, ok := ex.AllShareIndex(); ok {
		fields["allShareIndex"] = idx
	}
	log.LogQuery("analytics_refresh", fields)
}
