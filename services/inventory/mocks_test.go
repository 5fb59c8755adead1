package inventory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
)

// MockRepository for tests that do not need a real database
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, itemID int64) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockRepository) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockRepository) GetByNameForUpdate(ctx context.Context, tx database.Tx, name string) (*domain.Item, error) {
	args := m.Called(ctx, tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, itemID int64, update domain.ItemUpdate) (*domain.Item, error) {
	args := m.Called(ctx, itemID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockRepository) DecreaseStock(ctx context.Context, tx database.Tx, itemID int64, quantity int) (*domain.Item, error) {
	args := m.Called(ctx, tx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

type fakeTx struct{}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }
