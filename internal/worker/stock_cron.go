package worker

// Background goroutine that periodically sweeps the bar catalog and the
// inventory for items at or below their minimum quantity, and emails a
// summary to the treasury address. A Redis key with a TTL throttles the
// alert to at most one per day.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	stockTickInterval = 30 * time.Minute
	stockAlertKey     = "alerts:low_stock"
	stockAlertTTL     = 24 * time.Hour
)

// StockCronConfig holds all dependencies for the low-stock sweep.
type StockCronConfig struct {
	ProductRepo   repository.BarProductRepository
	InventoryRepo repository.InventoryRepository
	Dispatcher    *Dispatcher
	RDB           *redis.Client
	AlertEmail    string
}

// StartStockCron launches a goroutine that ticks every 30 minutes and
// reports items running low. It respects the context for graceful shutdown.
func StartStockCron(ctx context.Context, cfg StockCronConfig) {
	go func() {
		ticker := time.NewTicker(stockTickInterval)
		defer ticker.Stop()

		log.Info().Msg("stock_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stock_cron: shutting down")
				return
			case <-ticker.C:
				sweepLowStock(ctx, cfg)
			}
		}
	}()
}

func sweepLowStock(ctx context.Context, cfg StockCronConfig) {
	products, err := cfg.ProductRepo.ListBelowMinimum(ctx)
	if err != nil {
		log.Error().Err(err).Msg("stock_cron: failed to query bar products")
		return
	}
	items, err := cfg.InventoryRepo.LowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("stock_cron: failed to query inventory")
		return
	}
	if len(products) == 0 && len(items) == 0 {
		return
	}

	var b strings.Builder
	for _, p := range products {
		log.Warn().Str("product", p.Name).Int("stock", p.Stock).Int("min", p.MinStock).
			Msg("stock_cron: bar product below minimum")
		fmt.Fprintf(&b, "- [bar] %s: %d (mínimo %d)\n", p.Name, p.Stock, p.MinStock)
	}
	for _, it := range items {
		log.Warn().Str("item", it.Name).Int("quantity", it.Quantity).Int("min", it.MinQuantity).
			Msg("stock_cron: inventory item below minimum")
		fmt.Fprintf(&b, "- [inventário] %s: %d (mínimo %d)\n", it.Name, it.Quantity, it.MinQuantity)
	}

	if cfg.AlertEmail == "" {
		return
	}
	// SETNX gate: only the first sweep of the day sends the email.
	ok, err := cfg.RDB.SetNX(ctx, stockAlertKey, time.Now().UTC().Format(time.RFC3339), stockAlertTTL).Result()
	if err != nil || !ok {
		return
	}
	payload := EmailJobPayload{
		ToEmail: cfg.AlertEmail,
		Subject: "Alerta de estoque baixo",
		Body:    "Os seguintes itens estão abaixo do mínimo:\n\n" + b.String(),
	}
	if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Warn().Err(err).Msg("stock_cron: failed to enqueue alert email")
	}
}
