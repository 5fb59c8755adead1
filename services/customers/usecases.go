package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/logger"
)

// CustomerUseCase contains the customer ledger business rules.
type CustomerUseCase struct {
	repository Repository
	hashCost   int
}

// NewCustomerUseCase creates a new CustomerUseCase.
func NewCustomerUseCase(repository Repository) *CustomerUseCase {
	return &CustomerUseCase{
		repository: repository,
		hashCost:   bcrypt.DefaultCost,
	}
}

// Register creates a customer with an empty wallet.
func (uc *CustomerUseCase) Register(ctx context.Context, req RegisterCustomerRequest) (*domain.Customer, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.FullName) == "" || req.Password == "" {
		return nil, domain.InvalidInput("full_name, username and password are required")
	}
	if req.Age < 0 {
		return nil, domain.InvalidInput("age must not be negative")
	}

	hash, err := uc.hash(req.Password)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		FullName:      strings.TrimSpace(req.FullName),
		Username:      username,
		PasswordHash:  hash,
		Age:           req.Age,
		Address:       req.Address,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		WalletBalance: decimal.Zero,
	}

	if err := uc.repository.Create(ctx, customer); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("✅ Customer registered", "customer_id", customer.ID, "username", customer.Username)
	return customer, nil
}

// List returns all customers.
func (uc *CustomerUseCase) List(ctx context.Context) ([]domain.Customer, error) {
	return uc.repository.List(ctx)
}

// GetByUsername looks a customer up by username.
func (uc *CustomerUseCase) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.InvalidInput("username is required")
	}
	return uc.repository.GetByUsername(ctx, username)
}

// GetByID looks a customer up by id.
func (uc *CustomerUseCase) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	return uc.repository.GetByID(ctx, customerID)
}

// Update changes profile fields. A new password is hashed before storage.
func (uc *CustomerUseCase) Update(ctx context.Context, customerID int64, update domain.CustomerUpdate) (*domain.Customer, error) {
	if update.Empty() {
		return nil, domain.InvalidInput("no updates provided")
	}
	if update.Username != nil && strings.TrimSpace(*update.Username) == "" {
		return nil, domain.InvalidInput("username must not be empty")
	}
	if update.Age != nil && *update.Age < 0 {
		return nil, domain.InvalidInput("age must not be negative")
	}

	var passwordHash *string
	if update.Password != nil {
		if *update.Password == "" {
			return nil, domain.InvalidInput("password must not be empty")
		}
		hash, err := uc.hash(*update.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	customer, err := uc.repository.Update(ctx, customerID, update, passwordHash)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("✅ Customer updated", "customer_id", customerID)
	return customer, nil
}

// Delete removes a customer.
func (uc *CustomerUseCase) Delete(ctx context.Context, customerID int64) error {
	if err := uc.repository.Delete(ctx, customerID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("🗑️ Customer deleted", "customer_id", customerID)
	return nil
}

// ChargeWallet tops up a wallet.
func (uc *CustomerUseCase) ChargeWallet(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error) {
	if !amount.IsPositive() {
		return nil, domain.InvalidInput("amount must be positive")
	}

	customer, err := uc.repository.Charge(ctx, customerID, amount)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("💰 Wallet charged", "customer_id", customerID, "amount", amount.String())
	return customer, nil
}

// DeductWallet takes money out of a wallet, never below zero.
func (uc *CustomerUseCase) DeductWallet(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error) {
	if !amount.IsPositive() {
		return nil, domain.InvalidInput("amount must be positive")
	}

	customer, err := uc.repository.Deduct(ctx, nil, customerID, amount)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("💸 Wallet deducted", "customer_id", customerID, "amount", amount.String())
	return customer, nil
}

// GetCustomerByUsername resolves a username for the sales history endpoint.
func (uc *CustomerUseCase) GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	return uc.GetByUsername(ctx, username)
}

// GetCustomerForUpdate loads a customer inside tx and holds its row lock until
// tx ends.
func (uc *CustomerUseCase) GetCustomerForUpdate(ctx context.Context, tx database.Tx, username string) (*domain.Customer, error) {
	return uc.repository.GetByUsernameForUpdate(ctx, tx, username)
}

// DebitWallet charges a sale to the wallet inside tx.
func (uc *CustomerUseCase) DebitWallet(ctx context.Context, tx database.Tx, customerID int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.InvalidInput("amount must be positive")
	}
	_, err := uc.repository.Deduct(ctx, tx, customerID, amount)
	return err
}

func (uc *CustomerUseCase) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
