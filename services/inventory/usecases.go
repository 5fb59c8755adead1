package inventory

import (
	"context"
	"strings"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/logger"
)

// ItemUseCase contains the inventory ledger business rules.
type ItemUseCase struct {
	repository Repository
}

// NewItemUseCase creates a new ItemUseCase.
func NewItemUseCase(repository Repository) *ItemUseCase {
	return &ItemUseCase{repository: repository}
}

// AddItem stocks a new item.
func (uc *ItemUseCase) AddItem(ctx context.Context, req AddItemRequest) (*domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.InvalidInput("name is required")
	}
	if !req.Category.Valid() {
		return nil, domain.InvalidInput("unknown category %q", req.Category)
	}
	if !req.PricePerItem.IsPositive() {
		return nil, domain.InvalidInput("price_per_item must be positive")
	}
	if req.CountInStock < 0 {
		return nil, domain.InvalidInput("count_in_stock must not be negative")
	}

	item := &domain.Item{
		Name:         name,
		Category:     req.Category,
		PricePerItem: req.PricePerItem,
		Description:  req.Description,
		CountInStock: req.CountInStock,
	}
	if err := uc.repository.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("📦 Item added", "item_id", item.ID, "name", item.Name, "stock", item.CountInStock)
	return item, nil
}

// List returns all items.
func (uc *ItemUseCase) List(ctx context.Context) ([]domain.Item, error) {
	return uc.repository.List(ctx)
}

// GetByID looks an item up by id.
func (uc *ItemUseCase) GetByID(ctx context.Context, itemID int64) (*domain.Item, error) {
	return uc.repository.GetByID(ctx, itemID)
}

// GetByName looks an item up by name.
func (uc *ItemUseCase) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.InvalidInput("name is required")
	}
	return uc.repository.GetByName(ctx, name)
}

// Update changes item fields.
func (uc *ItemUseCase) Update(ctx context.Context, itemID int64, update domain.ItemUpdate) (*domain.Item, error) {
	if update.Empty() {
		return nil, domain.InvalidInput("no updates provided")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	item, err := uc.repository.Update(ctx, itemID, update)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("✅ Item updated", "item_id", itemID)
	return item, nil
}

// DeductStock removes quantity units, never going below zero.
func (uc *ItemUseCase) DeductStock(ctx context.Context, itemID int64, quantity int) (*domain.Item, error) {
	if quantity <= 0 {
		return nil, domain.InvalidInput("quantity must be positive")
	}

	item, err := uc.repository.DecreaseStock(ctx, nil, itemID, quantity)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("📉 Stock deducted", "item_id", itemID, "quantity", quantity, "remaining", item.CountInStock)
	return item, nil
}

// GetItemForUpdate loads an item by name inside tx and holds its row lock
// until tx ends.
func (uc *ItemUseCase) GetItemForUpdate(ctx context.Context, tx database.Tx, name string) (*domain.Item, error) {
	return uc.repository.GetByNameForUpdate(ctx, tx, name)
}

// DecreaseStock takes quantity units out of stock inside tx.
func (uc *ItemUseCase) DecreaseStock(ctx context.Context, tx database.Tx, itemID int64, quantity int) error {
	if quantity <= 0 {
		return domain.InvalidInput("quantity must be positive")
	}
	_, err := uc.repository.DecreaseStock(ctx, tx, itemID, quantity)
	return err
}
