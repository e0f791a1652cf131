package service

import (
	"context"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"
)

type ActivityService interface {
	List(ctx context.Context, filter dto.ActivityLogFilter) (*dto.ActivityLogListResponse, error)
	Recent(ctx context.Context, limit int) ([]dto.ActivityLogResponse, error)
	ForEntity(ctx context.Context, entityType, entityID string) ([]dto.ActivityLogResponse, error)
}

type activityService struct {
	repo repository.ActivityLogRepository
}

func NewActivityService(repo repository.ActivityLogRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) List(ctx context.Context, filter dto.ActivityLogFilter) (*dto.ActivityLogListResponse, error) {
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	data := make([]dto.ActivityLogResponse, len(logs))
	for i := range logs {
		data[i] = activityLogToResponse(&logs[i])
	}
	return &dto.ActivityLogListResponse{
		Data:   data,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Recent returns the newest entries for the dashboard feed.
func (s *activityService) Recent(ctx context.Context, limit int) ([]dto.ActivityLogResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	logs, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := make([]dto.ActivityLogResponse, len(logs))
	for i := range logs {
		resp[i] = activityLogToResponse(&logs[i])
	}
	return resp, nil
}

func (s *activityService) ForEntity(ctx context.Context, entityType, entityID string) ([]dto.ActivityLogResponse, error) {
	if entityType == "" || entityID == "" {
		return nil, apierror.Validation("dados incompletos")
	}
	logs, err := s.repo.ForEntity(ctx, entityType, entityID, 100)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := make([]dto.ActivityLogResponse, len(logs))
	for i := range logs {
		resp[i] = activityLogToResponse(&logs[i])
	}
	return resp, nil
}

func activityLogToResponse(l *model.ActivityLog) dto.ActivityLogResponse {
	var userID *string
	if l.UserID != nil {
		v := l.UserID.String()
		userID = &v
	}
	return dto.ActivityLogResponse{
		ID:         l.ID.String(),
		UserID:     userID,
		Username:   l.Username,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Details:    l.Details,
		IPAddress:  l.IPAddress,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}
