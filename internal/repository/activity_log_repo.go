package repository

import (
	"context"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	List(ctx context.Context, filter dto.ActivityLogFilter) ([]model.ActivityLog, int64, error)
	Recent(ctx context.Context, limit int) ([]model.ActivityLog, error)
	ForEntity(ctx context.Context, entityType, entityID string, limit int) ([]model.ActivityLog, error)
}

type activityLogRepo struct{ db *gorm.DB }

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository { return &activityLogRepo{db: db} }

func (r *activityLogRepo) Create(ctx context.Context, log *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepo) List(ctx context.Context, filter dto.ActivityLogFilter) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.FromDate != "" {
		q = q.Where("DATE(created_at) >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("DATE(created_at) <= ?", filter.ToDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&logs).Error
	return logs, total, err
}

func (r *activityLogRepo) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *activityLogRepo) ForEntity(ctx context.Context, entityType, entityID string, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").Limit(limit).
		Find(&logs).Error
	return logs, err
}
