package service

import (
	"context"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error)
	List(ctx context.Context, filter dto.InventoryFilter) (*dto.InventoryListResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error

	AddQuantity(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.QuantityRequest) (*dto.InventoryItemResponse, error)
	RemoveQuantity(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.QuantityRequest) (*dto.InventoryItemResponse, error)
	History(ctx context.Context, id uuid.UUID) ([]dto.InventoryLogResponse, error)
}

type inventoryService struct {
	repo repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item := &model.InventoryItem{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Location:    req.Location,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			if err := s.repo.Create(ctx, item); err != nil {
				return err
			}
		} else if err := tx.Create(item).Error; err != nil {
			return err
		}
		return s.repo.CreateLogTx(orFallback(tx, s.repo.DB()), &model.InventoryLog{
			ItemID:   item.ID,
			Action:   "create",
			Quantity: item.Quantity,
			ActorID:  actorID,
		})
	})
	if txErr != nil {
		return nil, apierror.Unexpected("erro interno do servidor", txErr)
	}
	resp := inventoryItemToResponse(item)
	return &resp, nil
}

func (s *inventoryService) Get(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("item não encontrado")
	}
	resp := inventoryItemToResponse(item)
	return &resp, nil
}

func (s *inventoryService) List(ctx context.Context, filter dto.InventoryFilter) (*dto.InventoryListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	data := make([]dto.InventoryItemResponse, len(items))
	for i := range items {
		data[i] = inventoryItemToResponse(&items[i])
	}
	return &dto.InventoryListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Update edits the item's metadata. A quantity set through here is logged as
// an implicit add/remove delta so the history stays complete.
func (s *inventoryService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("item não encontrado")
	}

	delta := 0
	if req.Quantity != nil {
		delta = *req.Quantity - item.Quantity
		item.Quantity = *req.Quantity
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.MinQuantity != nil {
		item.MinQuantity = *req.MinQuantity
	}
	if req.Location != nil {
		item.Location = req.Location
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			if err := s.repo.Update(ctx, item); err != nil {
				return err
			}
		} else if err := tx.Save(item).Error; err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		action := "add"
		qty := delta
		if delta < 0 {
			action = "remove"
			qty = -delta
		}
		return s.repo.CreateLogTx(orFallback(tx, s.repo.DB()), &model.InventoryLog{
			ItemID:   item.ID,
			Action:   action,
			Quantity: qty,
			ActorID:  actorID,
		})
	})
	if txErr != nil {
		return nil, apierror.Unexpected("erro interno do servidor", txErr)
	}
	resp := inventoryItemToResponse(item)
	return &resp, nil
}

// Delete removes the item after writing a final ledger entry. The ledger
// rows themselves are never deleted.
func (s *inventoryService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("item não encontrado")
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateLogTx(orFallback(tx, s.repo.DB()), &model.InventoryLog{
			ItemID:   item.ID,
			Action:   "delete",
			Quantity: item.Quantity,
			ActorID:  actorID,
		}); err != nil {
			return err
		}
		if tx == nil {
			return s.repo.Delete(ctx, id)
		}
		return tx.Delete(&model.InventoryItem{}, id).Error
	})
	if txErr != nil {
		return apierror.Unexpected("erro interno do servidor", txErr)
	}
	return nil
}

func (s *inventoryService) AddQuantity(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.QuantityRequest) (*dto.InventoryItemResponse, error) {
	return s.adjust(ctx, actorID, id, req, +1)
}

func (s *inventoryService) RemoveQuantity(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.QuantityRequest) (*dto.InventoryItemResponse, error) {
	return s.adjust(ctx, actorID, id, req, -1)
}

func (s *inventoryService) adjust(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.QuantityRequest, sign int) (*dto.InventoryItemResponse, error) {
	if req.Quantity <= 0 {
		return nil, apierror.Validation("quantidade deve ser maior que zero")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("item não encontrado")
	}

	action := "add"
	if sign < 0 {
		action = "remove"
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		affected, err := s.repo.AdjustQuantityTx(orFallback(tx, s.repo.DB()), id, sign*req.Quantity)
		if err != nil {
			return apierror.Unexpected("erro interno do servidor", err)
		}
		if affected == 0 {
			return apierror.InsufficientStock("quantidade insuficiente")
		}
		return s.repo.CreateLogTx(orFallback(tx, s.repo.DB()), &model.InventoryLog{
			ItemID:   id,
			Action:   action,
			Quantity: req.Quantity,
			ActorID:  actorID,
			Note:     req.Note,
		})
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := inventoryItemToResponse(item)
	return &resp, nil
}

func (s *inventoryService) History(ctx context.Context, id uuid.UUID) ([]dto.InventoryLogResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("item não encontrado")
	}
	logs, err := s.repo.ListLogs(ctx, id)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	resp := make([]dto.InventoryLogResponse, len(logs))
	for i, l := range logs {
		actorName := ""
		if l.Actor != nil {
			actorName = l.Actor.Name
		}
		resp[i] = dto.InventoryLogResponse{
			ID:        l.ID.String(),
			ItemID:    l.ItemID.String(),
			Action:    l.Action,
			Quantity:  l.Quantity,
			ActorID:   l.ActorID.String(),
			ActorName: actorName,
			Note:      l.Note,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// orFallback picks the transaction handle when inside a transaction, the
// base handle otherwise (nil in unit tests, where stub repos ignore it).
func orFallback(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

func inventoryItemToResponse(item *model.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		MinQuantity: item.MinQuantity,
		Location:    item.Location,
	}
}
