package service

import (
	"context"
	"testing"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type participantKey struct {
	eventID  uuid.UUID
	memberID uuid.UUID
}

// stubEventRepo mirrors the composite unique index on (event_id, member_id)
// by returning gorm.ErrDuplicatedKey from AddParticipant.
type stubEventRepo struct {
	events       map[uuid.UUID]*model.Event
	participants map[participantKey]*model.EventParticipant
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{
		events:       make(map[uuid.UUID]*model.Event),
		participants: make(map[participantKey]*model.EventParticipant),
	}
}

func (r *stubEventRepo) Create(_ context.Context, e *model.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.events[e.ID] = e
	return nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEventRepo) List(_ context.Context, _ dto.EventFilter) ([]model.Event, int64, error) {
	var out []model.Event
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEventRepo) ListUpcoming(_ context.Context, limit int) ([]model.Event, error) {
	var out []model.Event
	for _, e := range r.events {
		if e.Status == "agendado" && e.StartsAt.After(time.Now()) {
			out = append(out, *e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubEventRepo) Update(_ context.Context, e *model.Event) error {
	if _, ok := r.events[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.events[e.ID] = e
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.events, id)
	return nil
}

func (r *stubEventRepo) AddParticipant(_ context.Context, p *model.EventParticipant) error {
	key := participantKey{p.EventID, p.MemberID}
	if _, exists := r.participants[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.participants[key] = p
	return nil
}

func (r *stubEventRepo) FindParticipant(_ context.Context, eventID, memberID uuid.UUID) (*model.EventParticipant, error) {
	p, ok := r.participants[participantKey{eventID, memberID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubEventRepo) ListParticipants(_ context.Context, eventID uuid.UUID) ([]model.EventParticipant, error) {
	var out []model.EventParticipant
	for _, p := range r.participants {
		if p.EventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubEventRepo) CountParticipants(_ context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.participants {
		if p.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *stubEventRepo) RemoveParticipant(_ context.Context, eventID, memberID uuid.UUID) (int64, error) {
	key := participantKey{eventID, memberID}
	if _, ok := r.participants[key]; !ok {
		return 0, nil
	}
	delete(r.participants, key)
	return 1, nil
}

var _ repository.EventRepository = (*stubEventRepo)(nil)

func seedEvent(r *stubEventRepo, title string, startsAt time.Time) *model.Event {
	e := &model.Event{
		ID:       uuid.New(),
		Title:    title,
		StartsAt: startsAt,
		Status:   "agendado",
	}
	r.events[e.ID] = e
	return e
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateEvent_DateOnly(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), newStubMemberRepo())

	resp, err := svc.Create(context.Background(), dto.CreateEventRequest{
		Title:    "Passeio à Serra",
		StartsAt: "2026-09-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "agendado", resp.Status)
	assert.Equal(t, 0, resp.Participants)
}

func TestCreateEvent_EndsBeforeStarts(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), newStubMemberRepo())

	ends := "2026-09-10"
	_, err := svc.Create(context.Background(), dto.CreateEventRequest{
		Title:    "Concentração anual",
		StartsAt: "2026-09-12",
		EndsAt:   &ends,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, errKind(t, err))
}

func TestRegisterParticipant_Duplicate(t *testing.T) {
	eventRepo := newStubEventRepo()
	memberRepo := newStubMemberRepo()
	svc := NewEventService(eventRepo, memberRepo)

	event := seedEvent(eventRepo, "Aniversário do clube", time.Now().AddDate(0, 1, 0))
	member := seedMember(memberRepo, "Pedro Costa", "55566677788")

	req := dto.RegisterParticipantRequest{MemberID: member.ID.String(), Confirmed: true}

	first, err := svc.RegisterParticipant(context.Background(), event.ID, req)
	require.NoError(t, err)
	assert.True(t, first.Confirmed)
	assert.Equal(t, "Pedro Costa", first.MemberName)

	_, err = svc.RegisterParticipant(context.Background(), event.ID, req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, errKind(t, err))
	assert.ErrorContains(t, err, "já inscrito")

	count, _ := eventRepo.CountParticipants(context.Background(), event.ID)
	assert.EqualValues(t, 1, count)
}

func TestRegisterParticipant_MemberNotFound(t *testing.T) {
	eventRepo := newStubEventRepo()
	svc := NewEventService(eventRepo, newStubMemberRepo())
	event := seedEvent(eventRepo, "Jantar de Natal", time.Now().AddDate(0, 2, 0))

	_, err := svc.RegisterParticipant(context.Background(), event.ID, dto.RegisterParticipantRequest{
		MemberID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, errKind(t, err))
}

func TestRemoveParticipant_NotRegistered(t *testing.T) {
	eventRepo := newStubEventRepo()
	memberRepo := newStubMemberRepo()
	svc := NewEventService(eventRepo, memberRepo)

	event := seedEvent(eventRepo, "Passeio de domingo", time.Now().AddDate(0, 0, 7))
	member := seedMember(memberRepo, "Rita Lopes", "99988877766")

	err := svc.RemoveParticipant(context.Background(), event.ID, member.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, errKind(t, err))
}

func TestRemoveParticipant_OK(t *testing.T) {
	eventRepo := newStubEventRepo()
	memberRepo := newStubMemberRepo()
	svc := NewEventService(eventRepo, memberRepo)

	event := seedEvent(eventRepo, "Passeio de domingo", time.Now().AddDate(0, 0, 7))
	member := seedMember(memberRepo, "Rita Lopes", "99988877766")

	_, err := svc.RegisterParticipant(context.Background(), event.ID, dto.RegisterParticipantRequest{
		MemberID: member.ID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveParticipant(context.Background(), event.ID, member.ID))

	participants, err := svc.ListParticipants(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}
