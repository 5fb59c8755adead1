package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
)

const customerColumns = `customer_id, full_name, username, password_hash, age, address, gender, marital_status, wallet_balance`

const usernameConstraint = "customers_username_key"

// Repository defines the customer persistence operations. Methods taking a
// database.Tx run inside it; a nil tx runs on the pool.
type Repository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
	GetByUsernameForUpdate(ctx context.Context, tx database.Tx, username string) (*domain.Customer, error)
	Update(ctx context.Context, customerID int64, update domain.CustomerUpdate, passwordHash *string) (*domain.Customer, error)
	Delete(ctx context.Context, customerID int64) error
	Charge(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error)
	Deduct(ctx context.Context, tx database.Tx, customerID int64, amount decimal.Decimal) (*domain.Customer, error)
}

// PostgresCustomerRepository implements Repository over the record store.
type PostgresCustomerRepository struct {
	store *database.Store
}

// NewCustomerRepository creates a new PostgresCustomerRepository.
func NewCustomerRepository(store *database.Store) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{store: store}
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.Username,
		&c.PasswordHash,
		&c.Age,
		&c.Address,
		&c.Gender,
		&c.MaritalStatus,
		&c.WalletBalance,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// notFound turns pgx.ErrNoRows into ErrCustomerNotFound and classifies
// everything else.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCustomerNotFound
	}
	return database.ClassifyError(err)
}

// Create inserts customer and fills in its generated id.
func (r *PostgresCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	err := r.store.Querier(nil).QueryRow(ctx, `
		INSERT INTO customers (full_name, username, password_hash, age, address, gender, marital_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING customer_id, wallet_balance
	`, customer.FullName, customer.Username, customer.PasswordHash, customer.Age,
		customer.Address, customer.Gender, customer.MaritalStatus,
	).Scan(&customer.ID, &customer.WalletBalance)
	if err != nil {
		if database.IsUniqueViolation(err, usernameConstraint) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert customer: %w", database.ClassifyError(err))
	}
	return nil
}

// List returns every customer ordered by id.
func (r *PostgresCustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.store.Querier(nil).Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY customer_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", database.ClassifyError(err))
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", database.ClassifyError(err))
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", database.ClassifyError(err))
	}
	return customers, nil
}

// GetByID fetches a customer by id.
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	c, err := scanCustomer(r.store.Querier(nil).QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, customerID))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// GetByUsername fetches a customer by username.
func (r *PostgresCustomerRepository) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	c, err := scanCustomer(r.store.Querier(nil).QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE username = $1`, username))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// GetByUsernameForUpdate fetches a customer and locks the row (FOR UPDATE)
// until tx ends.
func (r *PostgresCustomerRepository) GetByUsernameForUpdate(ctx context.Context, tx database.Tx, username string) (*domain.Customer, error) {
	c, err := scanCustomer(r.store.Querier(tx).QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE username = $1
		FOR UPDATE
	`, username))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// Update applies the non-nil fields of update and returns the new row.
func (r *PostgresCustomerRepository) Update(ctx context.Context, customerID int64, update domain.CustomerUpdate, passwordHash *string) (*domain.Customer, error) {
	query, args, err := buildCustomerUpdate(customerID, update, passwordHash)
	if err != nil {
		return nil, err
	}

	c, err := scanCustomer(r.store.Querier(nil).QueryRow(ctx, query, args...))
	if err != nil {
		if database.IsUniqueViolation(err, usernameConstraint) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, notFound(err)
	}
	return c, nil
}

// buildCustomerUpdate assembles an UPDATE over a fixed column whitelist. Every
// value, the id included, is a bound parameter.
func buildCustomerUpdate(customerID int64, update domain.CustomerUpdate, passwordHash *string) (string, []any, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FullName != nil {
		add("full_name", *update.FullName)
	}
	if update.Username != nil {
		add("username", *update.Username)
	}
	if passwordHash != nil {
		add("password_hash", *passwordHash)
	}
	if update.Age != nil {
		add("age", *update.Age)
	}
	if update.Address != nil {
		add("address", *update.Address)
	}
	if update.Gender != nil {
		add("gender", *update.Gender)
	}
	if update.MaritalStatus != nil {
		add("marital_status", *update.MaritalStatus)
	}

	if len(sets) == 0 {
		return "", nil, domain.InvalidInput("no updates provided")
	}

	args = append(args, customerID)
	query := fmt.Sprintf("UPDATE customers SET %s WHERE customer_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), customerColumns)
	return query, args, nil
}

// Delete removes a customer. Their sale records are kept.
func (r *PostgresCustomerRepository) Delete(ctx context.Context, customerID int64) error {
	affected, err := r.store.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if affected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Charge adds amount to the wallet.
func (r *PostgresCustomerRepository) Charge(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error) {
	c, err := scanCustomer(r.store.Querier(nil).QueryRow(ctx, `
		UPDATE customers
		SET wallet_balance = wallet_balance + $1
		WHERE customer_id = $2
		RETURNING `+customerColumns,
		amount, customerID))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// Deduct removes amount from the wallet only if the balance covers it.
func (r *PostgresCustomerRepository) Deduct(ctx context.Context, tx database.Tx, customerID int64, amount decimal.Decimal) (*domain.Customer, error) {
	q := r.store.Querier(tx)
	c, err := scanCustomer(q.QueryRow(ctx, `
		UPDATE customers
		SET wallet_balance = wallet_balance - $1
		WHERE customer_id = $2 AND wallet_balance >= $1
		RETURNING `+customerColumns,
		amount, customerID))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to deduct from wallet: %w", database.ClassifyError(err))
	}

	// No row updated: either the customer is missing or the balance is short.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE customer_id = $1)`, customerID).Scan(&exists); err != nil {
		return nil, database.ClassifyError(err)
	}
	if !exists {
		return nil, domain.ErrCustomerNotFound
	}
	return nil, domain.ErrInsufficientFunds
}
