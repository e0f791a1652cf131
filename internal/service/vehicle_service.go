package service

import (
	"context"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
)

type VehicleService interface {
	Create(ctx context.Context, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.VehicleResponse, error)
	List(ctx context.Context, filter dto.VehicleFilter) (*dto.VehicleListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateVehicleRequest) (*dto.VehicleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleService struct {
	repo       repository.VehicleRepository
	memberRepo repository.MemberRepository
}

func NewVehicleService(repo repository.VehicleRepository, memberRepo repository.MemberRepository) VehicleService {
	return &vehicleService{repo: repo, memberRepo: memberRepo}
}

func (s *vehicleService) Create(ctx context.Context, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return nil, apierror.Validation("member_id inválido")
	}
	if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
		return nil, apierror.NotFound("membro não encontrado")
	}

	vehicle := &model.Vehicle{
		MemberID:     memberID,
		Plate:        req.Plate,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Displacement: req.Displacement,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict("já existe um veículo com esta matrícula")
		}
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := vehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) Get(ctx context.Context, id uuid.UUID) (*dto.VehicleResponse, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("veículo não encontrado")
	}
	resp := vehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) List(ctx context.Context, filter dto.VehicleFilter) (*dto.VehicleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	vehicles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	data := make([]dto.VehicleResponse, len(vehicles))
	for i := range vehicles {
		data[i] = vehicleToResponse(&vehicles[i])
	}
	return &dto.VehicleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *vehicleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("veículo não encontrado")
	}
	if req.Plate != nil {
		vehicle.Plate = *req.Plate
	}
	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Displacement != nil {
		vehicle.Displacement = req.Displacement
	}
	if err := s.repo.Update(ctx, vehicle); err != nil {
		if isDuplicate(err) {
			return nil, apierror.Conflict("já existe um veículo com esta matrícula")
		}
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := vehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("veículo não encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Unexpected("erro interno do servidor", err)
	}
	return nil
}

func vehicleToResponse(v *model.Vehicle) dto.VehicleResponse {
	memberName := ""
	if v.Member != nil {
		memberName = v.Member.Name
	}
	return dto.VehicleResponse{
		ID:           v.ID.String(),
		MemberID:     v.MemberID.String(),
		MemberName:   memberName,
		Plate:        v.Plate,
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Displacement: v.Displacement,
	}
}
