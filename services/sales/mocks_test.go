package sales

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
)

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (database.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(database.Tx), args.Error(1)
}

func (m *MockRepository) InsertSale(ctx context.Context, tx database.Tx, sale *domain.SaleRecord) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockRepository) CustomerSales(ctx context.Context, customerID int64) iter.Seq2[domain.SaleSummary, error] {
	args := m.Called(ctx, customerID)
	return args.Get(0).(iter.Seq2[domain.SaleSummary, error])
}

type MockCustomerLedger struct {
	mock.Mock
}

func (m *MockCustomerLedger) GetCustomerForUpdate(ctx context.Context, tx database.Tx, username string) (*domain.Customer, error) {
	args := m.Called(ctx, tx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerLedger) DebitWallet(ctx context.Context, tx database.Tx, customerID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, tx, customerID, amount)
	return args.Error(0)
}

func (m *MockCustomerLedger) GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockInventoryLedger struct {
	mock.Mock
}

func (m *MockInventoryLedger) GetItemForUpdate(ctx context.Context, tx database.Tx, name string) (*domain.Item, error) {
	args := m.Called(ctx, tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockInventoryLedger) DecreaseStock(ctx context.Context, tx database.Tx, itemID int64, quantity int) error {
	args := m.Called(ctx, tx, itemID, quantity)
	return args.Error(0)
}

// seqOf yields summaries, then err if it is non-nil.
func seqOf(summaries []domain.SaleSummary, err error) iter.Seq2[domain.SaleSummary, error] {
	return func(yield func(domain.SaleSummary, error) bool) {
		for _, s := range summaries {
			if !yield(s, nil) {
				return
			}
		}
		if err != nil {
			yield(domain.SaleSummary{}, err)
		}
	}
}
