package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/michael-fp/fp-chopped/internal/adapters/http/api"
	"github.com/michael-fp/fp-chopped/internal/adapters/http/stream"
	app "github.com/michael-fp/fp-chopped/internal/app"
	"github.com/michael-fp/fp-chopped/internal/config"
	"github.com/michael-fp/fp-chopped/internal/domain/curve"
	"github.com/michael-fp/fp-chopped/internal/domain/declutter"
	"github.com/michael-fp/fp-chopped/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	lg := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		lg.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(lg),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithSeason(cfg.SeasonEpoch, time.Duration(cfg.PeriodHours)*time.Hour),
		app.WithAnimationDuration(time.Duration(cfg.AnimationMS)*time.Millisecond),
		app.WithCanvas(cfg.ChartWidth, cfg.ChartHeight),
		app.WithDeclutterOptions(
			declutter.WithThresholds(cfg.DeclutterThresholdX, cfg.DeclutterThresholdY),
			declutter.WithSteps(cfg.DeclutterStepX, cfg.DeclutterStepY),
		),
		app.WithCurveOptions(
			curve.WithTensionRange(cfg.TensionMin, cfg.TensionMax),
		),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Load the season file, if one is configured.
	if cfg.SeasonFile != "" {
		sum, err := svc.LoadSeason(ctx, cfg.SeasonFile)
		if err != nil {
			os.Stderr.WriteString("failed to load season file: " + err.Error() + "\n")
			return
		}
		lg.Info(ctx, "season file loaded",
			logger.String("path", cfg.SeasonFile),
			logger.Int("leagues", sum.Leagues),
			logger.Int("teams", sum.Teams),
			logger.Int("events", sum.Enqueued),
		)
	}

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP router and routes.
	router := mux.NewRouter()

	apiServer := api.NewServer(svc, svc)
	apiServer.Register(router)

	streamHandler := stream.NewHandler(svc,
		stream.WithFrameInterval(time.Duration(cfg.FrameIntervalMS)*time.Millisecond),
		stream.WithAllowedOrigins(cfg.AllowedOrigins),
	)
	router.HandleFunc("/stream", streamHandler.HandleStream).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// CORS for browser clients on other origins.
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	handler := c.Handler(router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		lg.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	lg.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	lg.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater refreshes queue and store gauges periodically;
// GetStats pushes the current values into the metrics registry.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
