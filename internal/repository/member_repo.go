package repository

import (
	"context"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, m *model.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Member, error)
	List(ctx context.Context, filter dto.MemberFilter) ([]model.Member, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Update(ctx context.Context, m *model.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type memberRepo struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) MemberRepository { return &memberRepo{db: db} }

func (r *memberRepo) Create(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *memberRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *memberRepo) FindByCPF(ctx context.Context, cpf string) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&m).Error
	return &m, err
}

func (r *memberRepo) List(ctx context.Context, filter dto.MemberFilter) ([]model.Member, int64, error) {
	var members []model.Member
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Member{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&members).Error
	return members, total, err
}

func (r *memberRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Member{}).
		Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}

func (r *memberRepo) Update(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *memberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Member{}, id).Error
}
