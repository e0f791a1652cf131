package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, operatorID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.BarProductRepository
}

func NewSaleService(repo repository.SaleRepository, productRepo repository.BarProductRepository) SaleService {
	return &saleService{repo: repo, productRepo: productRepo}
}

// Create registers a bar sale. Stock deduction and sale insertion happen in
// one transaction: every item is decremented with a conditional UPDATE, and
// a single failed decrement rolls the whole sale back.
func (s *saleService) Create(ctx context.Context, operatorID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, apierror.Validation("dados incompletos")
	}

	// Resolve products and check totals before opening the transaction.
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		quantity  int
		unitPrice decimal.Decimal
		total     decimal.Decimal
	}

	var resolved []resolvedItem
	computed := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("product_id inválido")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound(fmt.Sprintf("produto %s não encontrado", item.ProductID))
		}
		if !p.Active {
			return nil, apierror.Validation(fmt.Sprintf("produto %s está inativo", p.Name))
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !lineTotal.Equal(item.TotalPrice) {
			return nil, apierror.Validation(fmt.Sprintf("total do item %s não confere", p.Name))
		}
		computed = computed.Add(lineTotal)
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			quantity:  item.Quantity,
			unitPrice: item.UnitPrice,
			total:     lineTotal,
		})
	}
	if !computed.Equal(req.TotalAmount) {
		return nil, apierror.Validation("total da venda não confere com os itens")
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Decrement stock first; a zero-row update means another sale got
		// there before us or the stock was never enough.
		for _, r := range resolved {
			affected, err := s.productRepo.DecrementStockTx(tx, r.productID, r.quantity)
			if err != nil {
				return apierror.Unexpected("erro interno do servidor", err)
			}
			if affected == 0 {
				return apierror.InsufficientStock(fmt.Sprintf("quantidade insuficiente de %s", r.name))
			}
		}

		sale = model.Sale{
			TotalAmount:   req.TotalAmount,
			PaymentMethod: req.PaymentMethod,
			OperatorID:    operatorID,
			Notes:         req.Notes,
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:  r.productID,
				Quantity:   r.quantity,
				UnitPrice:  r.unitPrice,
				TotalPrice: r.total,
			})
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return apierror.Unexpected("erro interno do servidor", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}

	resp := saleToResponse(&sale)
	for i, r := range resolved {
		resp.Items[i].Product = r.name
	}
	return &resp, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venda não encontrada")
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	data := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		data[i] = saleToResponse(&sales[i])
	}
	return &dto.SaleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Update touches only the mutable header fields — line items and totals are
// immutable after creation.
func (s *saleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venda não encontrada")
	}
	if req.PaymentMethod != nil {
		sale.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		sale.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

// Delete removes the sale and its items. Stock is not restored: removing a
// wrongly-typed sale does not put bottles back on the shelf.
func (s *saleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("venda não encontrada")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Unexpected("erro interno do servidor", err)
	}
	return nil
}

func saleToResponse(sale *model.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ID:         item.ID.String(),
			ProductID:  item.ProductID.String(),
			Product:    name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	operatorName := ""
	if sale.Operator != nil {
		operatorName = sale.Operator.Name
	}
	return dto.SaleResponse{
		ID:            sale.ID.String(),
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		OperatorID:    sale.OperatorID.String(),
		OperatorName:  operatorName,
		Notes:         sale.Notes,
		Items:         items,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}
}
