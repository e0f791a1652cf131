package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/worker"

	"github.com/google/uuid"
)

type MemberService interface {
	Create(ctx context.Context, req dto.CreateMemberRequest) (*dto.MemberResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MemberResponse, error)
	List(ctx context.Context, filter dto.MemberFilter) (*dto.MemberListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type memberService struct {
	repo       repository.MemberRepository
	dispatcher *worker.Dispatcher
}

func NewMemberService(repo repository.MemberRepository, dispatcher *worker.Dispatcher) MemberService {
	return &memberService{repo: repo, dispatcher: dispatcher}
}

func (s *memberService) Create(ctx context.Context, req dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	joinDate := time.Now()
	if req.JoinDate != "" {
		d, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return nil, apierror.Validation("join_date inválida, use o formato YYYY-MM-DD")
		}
		joinDate = d
	}
	status := req.Status
	if status == "" {
		status = "ativo"
	}

	member := &model.Member{
		Name:      req.Name,
		Nickname:  req.Nickname,
		CPF:       req.CPF,
		Email:     req.Email,
		Phone:     req.Phone,
		BloodType: req.BloodType,
		JoinDate:  joinDate,
		Status:    status,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict("já existe um membro com este CPF")
		}
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}

	// Welcome mail is best effort — the member is created either way.
	if s.dispatcher != nil && member.Email != nil && *member.Email != "" {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: *member.Email,
			Subject: "Bem-vindo ao Mouros Moto Hub",
			Body: fmt.Sprintf("Olá %s,\n\nO teu registo como membro do clube foi concluído. "+
				"Bem-vindo à família!\n\nMouros Moto Hub", member.Name),
		})
	}

	resp := memberToResponse(member)
	return &resp, nil
}

func (s *memberService) Get(ctx context.Context, id uuid.UUID) (*dto.MemberResponse, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("membro não encontrado")
	}
	resp := memberToResponse(member)
	return &resp, nil
}

func (s *memberService) List(ctx context.Context, filter dto.MemberFilter) (*dto.MemberListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	members, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	data := make([]dto.MemberResponse, len(members))
	for i := range members {
		data[i] = memberToResponse(&members[i])
	}
	return &dto.MemberListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *memberService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("membro não encontrado")
	}
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Nickname != nil {
		member.Nickname = req.Nickname
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.BloodType != nil {
		member.BloodType = req.BloodType
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := memberToResponse(member)
	return &resp, nil
}

// Delete removes the member; their vehicles go with them via the FK cascade.
func (s *memberService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("membro não encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Unexpected("erro interno do servidor", err)
	}
	return nil
}

func memberToResponse(m *model.Member) dto.MemberResponse {
	return dto.MemberResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Nickname:  m.Nickname,
		CPF:       m.CPF,
		Email:     m.Email,
		Phone:     m.Phone,
		BloodType: m.BloodType,
		JoinDate:  m.JoinDate.Format("2006-01-02"),
		Status:    m.Status,
	}
}
