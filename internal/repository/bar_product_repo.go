package repository

import (
	"context"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BarProductRepository defines the data access contract for bar products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type BarProductRepository interface {
	Create(ctx context.Context, p *model.BarProduct) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BarProduct, error)
	List(ctx context.Context, includeInactive bool) ([]model.BarProduct, error)
	ListBelowMinimum(ctx context.Context) ([]model.BarProduct, error)
	Update(ctx context.Context, p *model.BarProduct) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// DecrementStockTx performs a single conditional decrement inside tx:
	// UPDATE bar_products SET stock = stock - qty WHERE id = ? AND stock >= qty.
	// Returns the number of affected rows — zero means insufficient stock.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
}

type barProductRepo struct{ db *gorm.DB }

func NewBarProductRepository(db *gorm.DB) BarProductRepository { return &barProductRepo{db: db} }

func (r *barProductRepo) Create(ctx context.Context, p *model.BarProduct) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *barProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BarProduct, error) {
	var p model.BarProduct
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *barProductRepo) List(ctx context.Context, includeInactive bool) ([]model.BarProduct, error) {
	var products []model.BarProduct
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *barProductRepo) ListBelowMinimum(ctx context.Context) ([]model.BarProduct, error) {
	var products []model.BarProduct
	err := r.db.WithContext(ctx).
		Where("active = true AND stock < min_stock").
		Order("stock ASC").Find(&products).Error
	return products, err
}

func (r *barProductRepo) Update(ctx context.Context, p *model.BarProduct) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *barProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.BarProduct{}).Where("id = ?", id).Update("active", false).Error
}

func (r *barProductRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.BarProduct{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return res.RowsAffected, res.Error
}
