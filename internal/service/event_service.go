package service

import (
	"context"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
)

type EventService interface {
	Create(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	List(ctx context.Context, filter dto.EventFilter) (*dto.EventListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	RegisterParticipant(ctx context.Context, eventID uuid.UUID, req dto.RegisterParticipantRequest) (*dto.ParticipantResponse, error)
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]dto.ParticipantResponse, error)
	RemoveParticipant(ctx context.Context, eventID, memberID uuid.UUID) error
}

type eventService struct {
	repo       repository.EventRepository
	memberRepo repository.MemberRepository
}

func NewEventService(repo repository.EventRepository, memberRepo repository.MemberRepository) EventService {
	return &eventService{repo: repo, memberRepo: memberRepo}
}

func parseEventTime(s string) (time.Time, error) {
	// Accept full timestamps and bare dates.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *eventService) Create(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	startsAt, err := parseEventTime(req.StartsAt)
	if err != nil {
		return nil, apierror.Validation("starts_at inválido, use RFC3339 ou YYYY-MM-DD")
	}
	var endsAt *time.Time
	if req.EndsAt != nil && *req.EndsAt != "" {
		e, err := parseEventTime(*req.EndsAt)
		if err != nil {
			return nil, apierror.Validation("ends_at inválido, use RFC3339 ou YYYY-MM-DD")
		}
		if e.Before(startsAt) {
			return nil, apierror.Validation("ends_at não pode ser anterior a starts_at")
		}
		endsAt = &e
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Status:      "agendado",
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := s.eventToResponse(ctx, event)
	return &resp, nil
}

func (s *eventService) Get(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("evento não encontrado")
	}
	resp := s.eventToResponse(ctx, event)
	return &resp, nil
}

func (s *eventService) List(ctx context.Context, filter dto.EventFilter) (*dto.EventListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	data := make([]dto.EventResponse, len(events))
	for i := range events {
		data[i] = s.eventToResponse(ctx, &events[i])
	}
	return &dto.EventListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("evento não encontrado")
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.StartsAt != nil {
		t, err := parseEventTime(*req.StartsAt)
		if err != nil {
			return nil, apierror.Validation("starts_at inválido, use RFC3339 ou YYYY-MM-DD")
		}
		event.StartsAt = t
	}
	if req.EndsAt != nil {
		if *req.EndsAt == "" {
			event.EndsAt = nil
		} else {
			t, err := parseEventTime(*req.EndsAt)
			if err != nil {
				return nil, apierror.Validation("ends_at inválido, use RFC3339 ou YYYY-MM-DD")
			}
			event.EndsAt = &t
		}
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return nil, apierror.Validation("ends_at não pode ser anterior a starts_at")
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := s.eventToResponse(ctx, event)
	return &resp, nil
}

// Delete removes the event and its registrations via the FK cascade.
func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("evento não encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Unexpected("erro interno do servidor", err)
	}
	return nil
}

// RegisterParticipant adds a member to an event. The composite unique index
// on (event_id, member_id) is the real guarantee against duplicates; a
// violation comes back as 409.
func (s *eventService) RegisterParticipant(ctx context.Context, eventID uuid.UUID, req dto.RegisterParticipantRequest) (*dto.ParticipantResponse, error) {
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return nil, apierror.Validation("member_id inválido")
	}
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, apierror.NotFound("evento não encontrado")
	}
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, apierror.NotFound("membro não encontrado")
	}

	p := &model.EventParticipant{
		EventID:   eventID,
		MemberID:  memberID,
		Confirmed: req.Confirmed,
	}
	if err := s.repo.AddParticipant(ctx, p); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict("membro já inscrito neste evento")
		}
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}

	return &dto.ParticipantResponse{
		ID:         p.ID.String(),
		EventID:    p.EventID.String(),
		MemberID:   p.MemberID.String(),
		MemberName: member.Name,
		Confirmed:  p.Confirmed,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *eventService) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]dto.ParticipantResponse, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, apierror.NotFound("evento não encontrado")
	}
	participants, err := s.repo.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := make([]dto.ParticipantResponse, len(participants))
	for i, p := range participants {
		name := ""
		if p.Member != nil {
			name = p.Member.Name
		}
		resp[i] = dto.ParticipantResponse{
			ID:         p.ID.String(),
			EventID:    p.EventID.String(),
			MemberID:   p.MemberID.String(),
			MemberName: name,
			Confirmed:  p.Confirmed,
			CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *eventService) RemoveParticipant(ctx context.Context, eventID, memberID uuid.UUID) error {
	affected, err := s.repo.RemoveParticipant(ctx, eventID, memberID)
	if err != nil {
		return apierror.Unexpected("erro interno do servidor", err)
	}
	if affected == 0 {
		return apierror.NotFound("inscrição não encontrada")
	}
	return nil
}

func (s *eventService) eventToResponse(ctx context.Context, e *model.Event) dto.EventResponse {
	count, err := s.repo.CountParticipants(ctx, e.ID)
	if err != nil {
		count = 0
	}
	var endsAt *string
	if e.EndsAt != nil {
		v := e.EndsAt.Format(time.RFC3339)
		endsAt = &v
	}
	return dto.EventResponse{
		ID:           e.ID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		StartsAt:     e.StartsAt.Format(time.RFC3339),
		EndsAt:       endsAt,
		Status:       e.Status,
		Participants: int(count),
	}
}
