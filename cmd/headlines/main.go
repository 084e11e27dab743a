package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"headlines/internal/api"
	"headlines/internal/config"
	"headlines/internal/domain"
	"headlines/internal/publisher"
	"headlines/internal/resilience/circuitbreaker"
	"headlines/internal/service"
	"headlines/internal/source/newsapi"
	"headlines/internal/storage/bolt"
	"headlines/internal/storage/postgres"
	"headlines/internal/timefmt"
)

var errBreakerOpen = errors.New("circuit breaker is open")

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	location, err := cfg.Date.Location()
	if err != nil {
		logger.Error("invalid date timezone", "error", err)
		os.Exit(1)
	}
	formatter, err := timefmt.New(cfg.Date.Locale, location)
	if err != nil {
		logger.Error("invalid date locale", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]api.Check{}

	store, closeStore, err := openHistoryStore(cfg, checks, logger)
	if err != nil {
		logger.Error("failed to open history store", "backend", cfg.History.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var detailPublisher service.DetailPublisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		detailPublisher = rabbitMQ
	}

	source := newsapi.New(newsapi.Config{
		BaseURL: cfg.NewsAPI.BaseURL,
		APIKey:  cfg.NewsAPI.APIKey,
		Timeout: cfg.NewsAPI.Timeout,
		Breaker: circuitbreaker.Config{
			Name:             newsapi.SourceID,
			MaxRequests:      cfg.NewsAPI.Breaker.MaxRequests,
			Interval:         cfg.NewsAPI.Breaker.Interval,
			Timeout:          cfg.NewsAPI.Breaker.Timeout,
			FailureThreshold: cfg.NewsAPI.Breaker.FailureThreshold,
			MinRequests:      cfg.NewsAPI.Breaker.MinRequests,
		},
	}, logger)
	checks[newsapi.SourceID] = func(context.Context) error {
		if !source.Available() {
			return errBreakerOpen
		}
		return nil
	}

	headlines := service.NewHeadlines(
		source,
		store,
		detailPublisher,
		logger,
		domain.HeadlineQuery{Country: cfg.NewsAPI.Country, Category: cfg.NewsAPI.Category},
	)

	if err := headlines.LoadHistory(ctx); err != nil {
		logger.Warn("starting with empty search history", "error", err)
	}

	// One fetch on start; later fetches are user-initiated refreshes.
	go headlines.Fetch(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(
		api.NewHandler(headlines, formatter),
		api.NewHealthHandler(checks),
		logger.With("component", "http"),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting headlines server",
			"addr", cfg.Server.Addr,
			"source", source.Name(),
			"country", cfg.NewsAPI.Country,
			"category", cfg.NewsAPI.Category,
			"history_backend", cfg.History.Backend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-serveErr:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server exited")
}

// openHistoryStore returns nil for the memory backend. It registers a health check
// for backends that have a connection to lose.
func openHistoryStore(cfg *config.Config, checks map[string]api.Check, logger *slog.Logger) (service.HistoryStore, func(), error) {
	switch cfg.History.Backend {
	case config.BackendPostgres:
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to database")

		checks["database"] = db.PingContext
		store := postgres.NewSearchHistoryStore(db)
		return store, func() { db.Close() }, nil

	case config.BackendBolt:
		store, err := bolt.Open(cfg.History.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("opened history file", "path", cfg.History.BoltPath)

		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close history file", "error", err)
			}
		}, nil

	default:
		return nil, func() {}, nil
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
