//go:build integration

package repository

// Integration tests against a real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/repository/... -v
//
// Covered here because stubs cannot prove them:
//   - migrations apply cleanly on an empty database
//   - the conditional stock decrement refuses to go below zero
//   - unique indexes reject duplicate CPF and duplicate event registrations
//   - inventory ledger rows survive deletion of their item

import (
	"context"
	"testing"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/infra"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("motohub_test"),
		tcPostgres.WithUsername("motohub"),
		tcPostgres.WithPassword("motohub"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	return db
}

func seedOperator(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	u := &model.User{
		Username:     "operador-" + uuid.NewString()[:8],
		Name:         "Operador Teste",
		PasswordHash: "x",
		Role:         "operador",
		Active:       true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestIntegration_DecrementStock(t *testing.T) {
	db := setupDB(t)
	repo := NewBarProductRepository(db)
	ctx := context.Background()

	p := &model.BarProduct{Name: "Cerveja 33cl", Price: decimal.NewFromFloat(2.50), Stock: 3, MinStock: 1, Active: true}
	require.NoError(t, repo.Create(ctx, p))

	affected, err := repo.DecrementStockTx(db, p.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// Only 1 left — a decrement of 2 must not touch the row.
	affected, err = repo.DecrementStockTx(db, p.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}

func TestIntegration_SaleRollbackOnInsufficientStock(t *testing.T) {
	db := setupDB(t)
	productRepo := NewBarProductRepository(db)
	saleRepo := NewSaleRepository(db)
	ctx := context.Background()
	operator := seedOperator(t, db)

	full := &model.BarProduct{Name: "Cola", Price: decimal.NewFromFloat(2), Stock: 10, Active: true}
	empty := &model.BarProduct{Name: "Vinho", Price: decimal.NewFromFloat(12), Stock: 0, Active: true}
	require.NoError(t, productRepo.Create(ctx, full))
	require.NoError(t, productRepo.Create(ctx, empty))

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := productRepo.DecrementStockTx(tx, full.ID, 2); err != nil {
			return err
		}
		affected, err := productRepo.DecrementStockTx(tx, empty.ID, 1)
		if err != nil {
			return err
		}
		if affected == 0 {
			return gorm.ErrInvalidTransaction // force rollback
		}
		return saleRepo.CreateTx(tx, &model.Sale{
			TotalAmount:   decimal.NewFromFloat(16),
			PaymentMethod: "dinheiro",
			OperatorID:    operator.ID,
		})
	})
	require.Error(t, err)

	// The first decrement was rolled back with the rest.
	got, err := productRepo.FindByID(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)

	_, total, err := saleRepo.List(ctx, dto.SaleFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestIntegration_UniqueIndexes(t *testing.T) {
	db := setupDB(t)
	memberRepo := NewMemberRepository(db)
	eventRepo := NewEventRepository(db)
	ctx := context.Background()

	m := &model.Member{Name: "Carlos Mouro", CPF: "12345678901", JoinDate: time.Now(), Status: "ativo"}
	require.NoError(t, memberRepo.Create(ctx, m))

	dup := &model.Member{Name: "Outro Carlos", CPF: "12345678901", JoinDate: time.Now(), Status: "ativo"}
	err := memberRepo.Create(ctx, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	e := &model.Event{Title: "Passeio", StartsAt: time.Now().AddDate(0, 0, 7), Status: "agendado"}
	require.NoError(t, eventRepo.Create(ctx, e))

	require.NoError(t, eventRepo.AddParticipant(ctx, &model.EventParticipant{EventID: e.ID, MemberID: m.ID}))
	err = eventRepo.AddParticipant(ctx, &model.EventParticipant{EventID: e.ID, MemberID: m.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestIntegration_LedgerOutlivesItem(t *testing.T) {
	db := setupDB(t)
	repo := NewInventoryRepository(db)
	ctx := context.Background()
	actor := seedOperator(t, db)

	item := &model.InventoryItem{Name: "Camisolas", Quantity: 20, MinQuantity: 5}
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.CreateLogTx(db, &model.InventoryLog{
		ItemID: item.ID, Action: "create", Quantity: 20, ActorID: actor.ID,
	}))

	affected, err := repo.AdjustQuantityTx(db, item.ID, -25)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected, "adjustment below zero must be refused")

	require.NoError(t, repo.Delete(ctx, item.ID))

	logs, err := repo.ListLogs(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1, "ledger rows must survive item deletion")
}
