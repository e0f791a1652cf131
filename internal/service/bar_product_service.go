package service

import (
	"context"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
)

type BarProductService interface {
	Create(ctx context.Context, req dto.CreateBarProductRequest) (*dto.BarProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BarProductResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.BarProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBarProductRequest) (*dto.BarProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type barProductService struct {
	repo repository.BarProductRepository
}

func NewBarProductService(repo repository.BarProductRepository) BarProductService {
	return &barProductService{repo: repo}
}

func (s *barProductService) Create(ctx context.Context, req dto.CreateBarProductRequest) (*dto.BarProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, apierror.Validation("preço não pode ser negativo")
	}
	p := &model.BarProduct{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Active:   true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := barProductToResponse(p)
	return &resp, nil
}

func (s *barProductService) Get(ctx context.Context, id uuid.UUID) (*dto.BarProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("produto não encontrado")
	}
	resp := barProductToResponse(p)
	return &resp, nil
}

func (s *barProductService) List(ctx context.Context, includeInactive bool) ([]dto.BarProductResponse, error) {
	products, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := make([]dto.BarProductResponse, len(products))
	for i := range products {
		resp[i] = barProductToResponse(&products[i])
	}
	return resp, nil
}

func (s *barProductService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBarProductRequest) (*dto.BarProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("produto não encontrado")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apierror.Validation("preço não pode ser negativo")
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := barProductToResponse(p)
	return &resp, nil
}

// Deactivate soft-deletes the product so past sales keep their reference.
func (s *barProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("produto não encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Unexpected("erro interno do servidor", err)
	}
	return nil
}

func barProductToResponse(p *model.BarProduct) dto.BarProductResponse {
	return dto.BarProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		Active:   p.Active,
	}
}
