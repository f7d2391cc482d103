package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/category"
	"github.com/wichananm65/tokopedia-trends/internal/config"
	"github.com/wichananm65/tokopedia-trends/internal/dashboard"
	"github.com/wichananm65/tokopedia-trends/internal/database"
	"github.com/wichananm65/tokopedia-trends/internal/health"
	"github.com/wichananm65/tokopedia-trends/internal/product"
	"github.com/wichananm65/tokopedia-trends/internal/recommended"
	"github.com/wichananm65/tokopedia-trends/internal/review"
	"github.com/wichananm65/tokopedia-trends/internal/router"
	"github.com/wichananm65/tokopedia-trends/internal/sentiment"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	hub := telemetry.NewHub(telemetry.Options{Debug: cfg.Debug})
	log := hub.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bc := cfg.Backend()
	bc.Recorder = hub
	client := backend.New(bc)

	snapshots, db := openSnapshots(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}

	products := product.NewService(client)
	categories := category.NewService(client)
	reviews := review.NewService(client)

	monitor := health.NewMonitor(client, cfg.HealthInterval, hub)
	go monitor.Run(ctx)

	app := router.New(router.Config{
		Hub:       hub,
		Debug:     cfg.Debug,
		JWTSecret: cfg.JWTSecret,
		Handlers: []router.PublicRoutes{
			dashboard.NewHandler(dashboard.NewService(products, categories, hub)),
			product.NewHandler(products, snapshots, hub),
			category.NewHandler(categories, hub),
			review.NewHandler(reviews, reviews, hub),
			sentiment.NewHandler(sentiment.NewService(client), hub),
			recommended.NewHandler(recommended.NewService(client), hub),
			health.NewHandler(monitor),
		},
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":    cfg.Addr,
		"backend": client.BaseURL(),
		"debug":   cfg.Debug,
	}).Info("tokopedia-trends listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// openSnapshots picks where trending snapshots are kept: Postgres when
// DATABASE_URL is set, memory otherwise.
func openSnapshots(ctx context.Context, cfg config.Config, log *logrus.Logger) (product.SnapshotRepository, *sql.DB) {
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if errors.Is(err, database.ErrNoURL) {
		log.Info("DATABASE_URL not set, keeping trending snapshots in memory")
		return product.NewInMemorySnapshotRepository(), nil
	}
	if err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}

	repo := product.NewPostgresSnapshotRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		log.WithError(err).Fatal("could not prepare trending_snapshot table")
	}
	return repo, db
}
