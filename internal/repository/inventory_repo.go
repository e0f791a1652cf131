package repository

import (
	"context"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	List(ctx context.Context, filter dto.InventoryFilter) ([]model.InventoryItem, int64, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustQuantityTx applies a signed delta and fails the conditional
	// update when it would drive the quantity negative.
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) (int64, error)
	CreateLogTx(tx *gorm.DB, log *model.InventoryLog) error
	ListLogs(ctx context.Context, itemID uuid.UUID) ([]model.InventoryLog, error)
	LowStock(ctx context.Context) ([]model.InventoryItem, error)
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) DB() *gorm.DB { return r.db }

func (r *inventoryRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

func (r *inventoryRepo) List(ctx context.Context, filter dto.InventoryFilter) ([]model.InventoryItem, int64, error) {
	var items []model.InventoryItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.InventoryItem{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.LowStock {
		q = q.Where("quantity <= min_quantity")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&items).Error
	return items, total, err
}

func (r *inventoryRepo) Update(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.InventoryItem{}, id).Error
}

func (r *inventoryRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	q := tx.Model(&model.InventoryItem{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("quantity >= ?", -delta)
	}
	res := q.Update("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *inventoryRepo) CreateLogTx(tx *gorm.DB, log *model.InventoryLog) error {
	return tx.Create(log).Error
}

func (r *inventoryRepo) ListLogs(ctx context.Context, itemID uuid.UUID) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *inventoryRepo) LowStock(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity <= min_quantity").
		Order("name ASC").
		Find(&items).Error
	return items, err
}
