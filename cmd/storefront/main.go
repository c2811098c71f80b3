package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tfiz/storefront-go/internal/assistant"
	"github.com/tfiz/storefront-go/internal/catalog"
	"github.com/tfiz/storefront-go/internal/checkout"
	"github.com/tfiz/storefront-go/internal/config"
	"github.com/tfiz/storefront-go/internal/db"
	"github.com/tfiz/storefront-go/internal/events"
	"github.com/tfiz/storefront-go/internal/httpapi"
	"github.com/tfiz/storefront-go/internal/kv"
	"github.com/tfiz/storefront-go/internal/session"
	"github.com/tfiz/storefront-go/internal/unlock"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(getEnv("STOREFRONT_CONFIG", "config.yaml"))
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage. No DSN means in-memory, for local development.
	var store kv.Store = kv.NewMemoryStore()
	var database *sql.DB
	if cfg.Database.DSN != "" {
		if cfg.Database.RunMigrations {
			if err := db.RunMigrations(cfg.Database.DSN, logger); err != nil {
				logger.Fatal("run migrations", zap.Error(err))
			}
		}
		conn, err := db.Open(cfg.Database.DSN)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		defer conn.Close()
		database = conn
		store = kv.NewPostgresStore(conn)
	} else {
		logger.Info("no database configured, using in-memory store")
	}

	// Order announcements need both the broker and the sequence table.
	var publisher checkout.OrderPublisher
	if cfg.Rabbit.URL != "" {
		if database == nil {
			logger.Warn("rabbit configured without a database, order announcements disabled")
		} else {
			rabbitConn, err := events.Dial(cfg.Rabbit.URL)
			if err != nil {
				logger.Fatal("connect to rabbitmq", zap.Error(err))
			}
			defer rabbitConn.Close()

			sequences := events.NewSequenceRepository(database)
			orderPublisher, err := events.NewRabbitOrderPublisher(rabbitConn, sequences)
			if err != nil {
				logger.Fatal("create order publisher", zap.Error(err))
			}
			defer func() { _ = orderPublisher.Close() }()
			publisher = orderPublisher
		}
	}

	cat, err := catalog.NewStore(ctx, store)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}
	history, err := unlock.NewRegistry(ctx, store)
	if err != nil {
		logger.Fatal("load purchase history", zap.Error(err))
	}
	sessions := session.NewManager(cat, history, publisher, logger)

	var chat assistant.Assistant = assistant.Disabled{}
	if cfg.Assistant.APIKey != "" {
		gemini, err := assistant.NewGemini(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model, cat)
		if err != nil {
			logger.Fatal("create assistant", zap.Error(err))
		}
		chat = gemini
	}

	handler := httpapi.NewHandler(sessions, cat, history, chat, cfg.Admin.Key, logger)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Fatal("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
