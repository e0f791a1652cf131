package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/config"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/infra"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/router"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async pipeline: handlers push jobs through the dispatcher onto Redis
	// queues, the pool drains them. Worker handlers are wired here
	// (composition root) so the pool has full access to infrastructure.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	activityRepo := repository.NewActivityLogRepository(db)

	handlers := worker.Handlers{
		worker.QueueAudit: worker.NewAuditWorker(activityRepo, rdb),
		worker.QueueEmail: worker.NewEmailWorker(mailer, rdb),
	}
	worker.StartPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Periodic low-stock sweep for bar products and general inventory.
	worker.StartStockCron(ctx, worker.StockCronConfig{
		ProductRepo:   repository.NewBarProductRepository(db),
		InventoryRepo: repository.NewInventoryRepository(db),
		Dispatcher:    dispatcher,
		RDB:           rdb,
		AlertEmail:    cfg.TreasuryEmail,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("moto-hub backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
