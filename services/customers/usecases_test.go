package customers

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MariamAbbas03/Project435/internal/domain"
)

func newTestUseCase(repo Repository) *CustomerUseCase {
	uc := NewCustomerUseCase(repo)
	uc.hashCost = bcrypt.MinCost
	return uc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Customer).ID = 7
		}).
		Return(nil)

	customer, err := uc.Register(ctx, RegisterCustomerRequest{
		FullName: "Alice Smith",
		Username: " alice ",
		Password: "s3cret",
		Age:      30,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), customer.ID)
	assert.Equal(t, "alice", customer.Username)
	assert.True(t, customer.WalletBalance.IsZero())
	assert.NotEqual(t, "s3cret", customer.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("s3cret")))
	repo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	repo.On("Create", ctx, mock.Anything).Return(domain.ErrUsernameTaken)

	_, err := uc.Register(ctx, RegisterCustomerRequest{FullName: "A", Username: "alice", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, domain.ErrMsgUsernameTaken)
}

func TestRegister_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterCustomerRequest
	}{
		{"blank username", RegisterCustomerRequest{FullName: "A", Username: "  ", Password: "x"}},
		{"missing password", RegisterCustomerRequest{FullName: "A", Username: "a"}},
		{"negative age", RegisterCustomerRequest{FullName: "A", Username: "a", Password: "x", Age: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			uc := newTestUseCase(repo)

			_, err := uc.Register(context.Background(), tt.req)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate_HashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	password := "n3w"
	update := domain.CustomerUpdate{Password: &password}
	updated := &domain.Customer{ID: 3, Username: "bob"}

	repo.On("Update", ctx, int64(3), update, mock.MatchedBy(func(hash *string) bool {
		return hash != nil && bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) == nil
	})).Return(updated, nil)

	customer, err := uc.Update(ctx, 3, update)

	require.NoError(t, err)
	assert.Equal(t, updated, customer)
	repo.AssertExpectations(t)
}

func TestUpdate_WithoutPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	address := "Beirut"
	update := domain.CustomerUpdate{Address: &address}
	repo.On("Update", ctx, int64(3), update, (*string)(nil)).Return(&domain.Customer{ID: 3, Address: address}, nil)

	customer, err := uc.Update(ctx, 3, update)

	require.NoError(t, err)
	assert.Equal(t, address, customer.Address)
	repo.AssertExpectations(t)
}

func TestUpdate_Empty(t *testing.T) {
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	_, err := uc.Update(context.Background(), 3, domain.CustomerUpdate{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "no updates provided")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	repo.On("Delete", ctx, int64(99)).Return(domain.ErrCustomerNotFound)

	err := uc.Delete(ctx, 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChargeWallet(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	repo.On("Charge", ctx, int64(1), decimalEq("100")).
		Return(&domain.Customer{ID: 1, WalletBalance: decimal.NewFromInt(100)}, nil)

	customer, err := uc.ChargeWallet(ctx, 1, decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.True(t, customer.WalletBalance.Equal(decimal.NewFromInt(100)))
	repo.AssertExpectations(t)
}

func TestWalletOperations_RejectNonPositiveAmounts(t *testing.T) {
	repo := new(MockRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := uc.ChargeWallet(ctx, 1, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.DeductWallet(ctx, 1, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	repo.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Deduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeductWallet_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)

	repo.On("Deduct", ctx, nil, int64(1), decimalEq("50")).Return(nil, domain.ErrInsufficientFunds)

	_, err := uc.DeductWallet(ctx, 1, decimal.NewFromInt(50))

	assert.True(t, errors.Is(err, domain.ErrInsufficientFunds))
	repo.AssertExpectations(t)
}

func TestDebitWallet_RunsInsideTx(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)
	tx := &fakeTx{}

	repo.On("Deduct", ctx, tx, int64(2), decimalEq("9.99")).Return(&domain.Customer{ID: 2}, nil)

	err := uc.DebitWallet(ctx, tx, 2, decimal.RequireFromString("9.99"))

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetCustomerForUpdate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	uc := newTestUseCase(repo)
	tx := &fakeTx{}

	repo.On("GetByUsernameForUpdate", ctx, tx, "ghost").Return(nil, domain.ErrCustomerNotFound)

	_, err := uc.GetCustomerForUpdate(ctx, tx, "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type fakeTx struct{}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }
