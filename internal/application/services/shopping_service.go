package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// ShoppingService handles shopping list operations
type ShoppingService struct {
	shoppingRepo ports.ShoppingRepository
	logger       *logger.Logger
}

// NewShoppingService creates a new shopping service
func NewShoppingService(shoppingRepo ports.ShoppingRepository, logger *logger.Logger) *ShoppingService {
	return &ShoppingService{
		shoppingRepo: shoppingRepo,
		logger:       logger,
	}
}

// CreateItem adds a new item to the shopping list
func (s *ShoppingService) CreateItem(ctx context.Context, req ports.CreateShoppingItemRequest) (*entities.ShoppingItem, error) {
	repeat := req.RepeatOption
	if repeat == "" {
		repeat = entities.RepeatNone
	}

	item := &entities.ShoppingItem{
		Name:           req.Name,
		Category:       req.Category,
		Amount:         req.Amount,
		Price:          req.Price,
		DateToPurchase: req.DateToPurchase,
		ImageURL:       req.ImageURL,
		Notes:          req.Notes,
		RepeatOption:   repeat,
	}

	if err := s.shoppingRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create shopping item: %w", err)
	}

	s.logger.Infow("Shopping item created", "item_id", item.ID, "name", item.Name)
	return item, nil
}

// GetItem retrieves a shopping item by ID
func (s *ShoppingService) GetItem(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error) {
	return s.shoppingRepo.GetByID(ctx, id)
}

// UpdateItem applies a partial update to a shopping item
func (s *ShoppingService) UpdateItem(ctx context.Context, id uuid.UUID, req ports.UpdateShoppingItemRequest) (*entities.ShoppingItem, error) {
	item, err := s.shoppingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Amount != nil {
		item.Amount = req.Amount
	}
	if req.Price != nil {
		item.Price = req.Price
	}
	if req.DateToPurchase != nil {
		item.DateToPurchase = req.DateToPurchase
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.RepeatOption != nil {
		item.RepeatOption = *req.RepeatOption
	}
	if req.Completed != nil && *req.Completed != item.Completed {
		item.TogglePurchased(time.Now())
	}

	if err := s.shoppingRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update shopping item: %w", err)
	}

	return item, nil
}

// DeleteItem removes a shopping item
func (s *ShoppingService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.shoppingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Shopping item deleted", "item_id", id)
	return nil
}

// ListItems returns items matching the filter along with the total count
func (s *ShoppingService) ListItems(ctx context.Context, filter ports.ShoppingFilter) ([]*entities.ShoppingItem, int, error) {
	items, err := s.shoppingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.shoppingRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// TogglePurchased flips an item's completed flag. Completing a recurring item
// stamps its last purchase time so the next cycle can surface it again.
func (s *ShoppingService) TogglePurchased(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error) {
	item, err := s.shoppingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.TogglePurchased(time.Now())

	if err := s.shoppingRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to toggle shopping item: %w", err)
	}

	return item, nil
}

// Categories lists the distinct categories currently in use
func (s *ShoppingService) Categories(ctx context.Context) ([]string, error) {
	return s.shoppingRepo.Categories(ctx)
}
