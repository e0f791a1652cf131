package repository

import (
	"context"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	List(ctx context.Context, filter dto.EventFilter) ([]model.Event, int64, error)
	ListUpcoming(ctx context.Context, limit int) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Participants
	AddParticipant(ctx context.Context, p *model.EventParticipant) error
	FindParticipant(ctx context.Context, eventID, memberID uuid.UUID) (*model.EventParticipant, error)
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]model.EventParticipant, error)
	CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error)
	RemoveParticipant(ctx context.Context, eventID, memberID uuid.UUID) (int64, error)
}

type eventRepo struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) EventRepository { return &eventRepo{db: db} }

func (r *eventRepo) Create(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var e model.Event
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *eventRepo) List(ctx context.Context, filter dto.EventFilter) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Event{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != "" {
		q = q.Where("starts_at >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("starts_at < ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("starts_at DESC").Offset(offset).Limit(filter.Limit).Find(&events).Error
	return events, total, err
}

func (r *eventRepo) ListUpcoming(ctx context.Context, limit int) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("starts_at >= ? AND status = 'agendado'", time.Now()).
		Order("starts_at ASC").Limit(limit).Find(&events).Error
	return events, err
}

func (r *eventRepo) Update(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}

func (r *eventRepo) AddParticipant(ctx context.Context, p *model.EventParticipant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *eventRepo) FindParticipant(ctx context.Context, eventID, memberID uuid.UUID) (*model.EventParticipant, error) {
	var p model.EventParticipant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		First(&p).Error
	return &p, err
}

func (r *eventRepo) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]model.EventParticipant, error) {
	var parts []model.EventParticipant
	err := r.db.WithContext(ctx).Preload("Member").
		Where("event_id = ?", eventID).
		Order("created_at ASC").Find(&parts).Error
	return parts, err
}

func (r *eventRepo) CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.EventParticipant{}).
		Where("event_id = ?", eventID).Count(&n).Error
	return n, err
}

func (r *eventRepo) RemoveParticipant(ctx context.Context, eventID, memberID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		Delete(&model.EventParticipant{})
	return res.RowsAffected, res.Error
}
