package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory BarProductRepository for testing.
type stubProductRepo struct {
	products map[uuid.UUID]*model.BarProduct
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.BarProduct)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.BarProduct) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BarProduct, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, includeInactive bool) ([]model.BarProduct, error) {
	var out []model.BarProduct
	for _, p := range r.products {
		if p.Active || includeInactive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListBelowMinimum(_ context.Context) ([]model.BarProduct, error) {
	var out []model.BarProduct
	for _, p := range r.products {
		if p.Active && p.Stock <= p.MinStock {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.BarProduct) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return 0, nil
	}
	p.Stock -= qty
	return 1, nil
}

var _ repository.BarProductRepository = (*stubProductRepo)(nil)

// stubSaleRepo stores sales in memory. DB() returns nil so runTx calls the
// transaction body directly.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	s.CreatedAt = time.Now()
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) Update(_ context.Context, s *model.Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) MonthlyTotals(_ context.Context, from, to time.Time) (map[string]decimal.Decimal, int64, error) {
	totals := make(map[string]decimal.Decimal)
	var count int64
	for _, s := range r.sales {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		totals[s.PaymentMethod] = totals[s.PaymentMethod].Add(s.TotalAmount)
		count++
	}
	return totals, count, nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedProduct(r *stubProductRepo, name string, price float64, stock, minStock int) *model.BarProduct {
	p := &model.BarProduct{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
		MinStock: minStock,
		Active:   true,
	}
	r.products[p.ID] = p
	return p
}

func errKind(t *testing.T, err error) apierror.Kind {
	t.Helper()
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr), "expected *apierror.Error, got %v", err)
	return apiErr.Kind
}

func saleItem(p *model.BarProduct, qty int) dto.SaleItemRequest {
	unit := p.Price
	return dto.SaleItemRequest{
		ProductID:  p.ID.String(),
		Quantity:   qty,
		UnitPrice:  unit,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateSale_DeductsStock(t *testing.T) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, productRepo)

	beer := seedProduct(productRepo, "Cerveja 33cl", 2.50, 10, 3)
	coke := seedProduct(productRepo, "Cola 33cl", 2.00, 8, 2)

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(11.50), // 3×2.50 + 2×2.00
		PaymentMethod: "dinheiro",
		Items:         []dto.SaleItemRequest{saleItem(beer, 3), saleItem(coke, 2)},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, productRepo.products[beer.ID].Stock)
	assert.Equal(t, 6, productRepo.products[coke.ID].Stock)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "11.5", resp.TotalAmount.String())

	stored, err := saleRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestCreateSale_EmptyItems(t *testing.T) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, productRepo)

	beer := seedProduct(productRepo, "Cerveja 33cl", 2.50, 10, 3)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.Zero,
		PaymentMethod: "dinheiro",
		Items:         nil,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, errKind(t, err))
	assert.ErrorContains(t, err, "dados incompletos")

	// Nothing persisted, stock untouched.
	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, 10, productRepo.products[beer.ID].Stock)
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, productRepo)

	wine := seedProduct(productRepo, "Vinho tinto", 12.00, 2, 1)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(60.00),
		PaymentMethod: "pix",
		Items:         []dto.SaleItemRequest{saleItem(wine, 5)},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInsufficientStock, errKind(t, err))
	assert.ErrorContains(t, err, "quantidade insuficiente")

	// Nothing persisted, stock untouched.
	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, 2, productRepo.products[wine.ID].Stock)
}

func TestCreateSale_TotalMismatch(t *testing.T) {
	productRepo := newStubProductRepo()
	svc := NewSaleService(newStubSaleRepo(), productRepo)

	beer := seedProduct(productRepo, "Cerveja 33cl", 2.50, 10, 3)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(99.00), // items sum to 5.00
		PaymentMethod: "dinheiro",
		Items:         []dto.SaleItemRequest{saleItem(beer, 2)},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, errKind(t, err))
	assert.Equal(t, 10, productRepo.products[beer.ID].Stock)
}

func TestCreateSale_LineTotalMismatch(t *testing.T) {
	productRepo := newStubProductRepo()
	svc := NewSaleService(newStubSaleRepo(), productRepo)

	beer := seedProduct(productRepo, "Cerveja 33cl", 2.50, 10, 3)
	item := saleItem(beer, 2)
	item.TotalPrice = decimal.NewFromFloat(4.00) // should be 5.00

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(4.00),
		PaymentMethod: "dinheiro",
		Items:         []dto.SaleItemRequest{item},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, errKind(t, err))
}

func TestCreateSale_InactiveProduct(t *testing.T) {
	productRepo := newStubProductRepo()
	svc := NewSaleService(newStubSaleRepo(), productRepo)

	old := seedProduct(productRepo, "Produto descontinuado", 1.00, 5, 0)
	old.Active = false

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(1.00),
		PaymentMethod: "dinheiro",
		Items:         []dto.SaleItemRequest{saleItem(old, 1)},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, errKind(t, err))
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo(), newStubProductRepo())

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(2.50),
		PaymentMethod: "dinheiro",
		Items: []dto.SaleItemRequest{{
			ProductID:  uuid.NewString(),
			Quantity:   1,
			UnitPrice:  decimal.NewFromFloat(2.50),
			TotalPrice: decimal.NewFromFloat(2.50),
		}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, errKind(t, err))
}

func TestDeleteSale_StockNotRestored(t *testing.T) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, productRepo)

	beer := seedProduct(productRepo, "Cerveja 33cl", 2.50, 10, 3)

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(5.00),
		PaymentMethod: "debito",
		Items:         []dto.SaleItemRequest{saleItem(beer, 2)},
	})
	require.NoError(t, err)
	require.Equal(t, 8, productRepo.products[beer.ID].Stock)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(resp.ID)))

	// Deleting a sale is a bookkeeping fix, not a return of goods.
	assert.Equal(t, 8, productRepo.products[beer.ID].Stock)
	assert.Empty(t, saleRepo.sales)
}

func TestUpdateSale_HeaderOnly(t *testing.T) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, productRepo)

	beer := seedProduct(productRepo, "Cerveja 33cl", 2.50, 10, 3)
	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateSaleRequest{
		TotalAmount:   decimal.NewFromFloat(5.00),
		PaymentMethod: "fiado",
		Items:         []dto.SaleItemRequest{saleItem(beer, 2)},
	})
	require.NoError(t, err)

	method := "dinheiro"
	updated, err := svc.Update(context.Background(), uuid.MustParse(resp.ID), dto.UpdateSaleRequest{
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, "dinheiro", updated.PaymentMethod)
	assert.Equal(t, "5", updated.TotalAmount.String())
	assert.Len(t, updated.Items, 1)
}
