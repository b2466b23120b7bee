package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthmon/internal/config"
	"github.com/hamed0406/healthmon/internal/httpapi"
	"github.com/hamed0406/healthmon/internal/logging"
	"github.com/hamed0406/healthmon/internal/probe"
	"github.com/hamed0406/healthmon/internal/report"
	"github.com/hamed0406/healthmon/internal/repo/memory"
	"github.com/hamed0406/healthmon/internal/scheduler"
	"github.com/hamed0406/healthmon/internal/stats"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to the endpoints config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	agg := stats.NewAggregator()
	store := memory.New(64)
	sink := report.Multi{
		&report.Console{},
		&report.Logger{Log: logger},
		report.Recorder{Store: store},
	}

	mon := scheduler.NewMonitor(
		logger,
		cfg.Endpoints,
		probe.NewHTTPChecker(cfg.Monitor.TimeoutDuration()),
		agg,
		sink,
		cfg.Monitor.IntervalDuration(),
		cfg.Monitor.Concurrency,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := httpapi.NewServer(logger, store, agg)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: api.Router()}
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_serve_error", zap.Error(err))
		}
	}()

	logger.Info("monitor_start",
		zap.Int("endpoints", len(cfg.Endpoints)),
		zap.Duration("interval", cfg.Monitor.IntervalDuration()),
	)
	mon.Run(ctx)

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	logger.Info("monitor_exit")
}
