package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
)

const itemColumns = `item_id, name, category, price_per_item, description, count_in_stock`

// Repository defines the inventory persistence operations. Methods taking a
// database.Tx run inside it; a nil tx runs on the pool.
type Repository interface {
	Create(ctx context.Context, item *domain.Item) error
	List(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, itemID int64) (*domain.Item, error)
	GetByName(ctx context.Context, name string) (*domain.Item, error)
	GetByNameForUpdate(ctx context.Context, tx database.Tx, name string) (*domain.Item, error)
	Update(ctx context.Context, itemID int64, update domain.ItemUpdate) (*domain.Item, error)
	DecreaseStock(ctx context.Context, tx database.Tx, itemID int64, quantity int) (*domain.Item, error)
}

// PostgresItemRepository implements Repository over the record store.
type PostgresItemRepository struct {
	store *database.Store
}

// NewItemRepository creates a new PostgresItemRepository.
func NewItemRepository(store *database.Store) *PostgresItemRepository {
	return &PostgresItemRepository{store: store}
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var i domain.Item
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.PricePerItem,
		&i.Description,
		&i.CountInStock,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrItemNotFound
	}
	return database.ClassifyError(err)
}

// Create inserts item and fills in its generated id.
func (r *PostgresItemRepository) Create(ctx context.Context, item *domain.Item) error {
	err := r.store.Querier(nil).QueryRow(ctx, `
		INSERT INTO inventory (name, category, price_per_item, description, count_in_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING item_id
	`, item.Name, string(item.Category), item.PricePerItem, item.Description, item.CountInStock,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", database.ClassifyError(err))
	}
	return nil
}

// List returns every item ordered by id.
func (r *PostgresItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.store.Querier(nil).Query(ctx, `SELECT `+itemColumns+` FROM inventory ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", database.ClassifyError(err))
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", database.ClassifyError(err))
		}
		items = append(items, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", database.ClassifyError(err))
	}
	return items, nil
}

// GetByID fetches an item by id.
func (r *PostgresItemRepository) GetByID(ctx context.Context, itemID int64) (*domain.Item, error) {
	i, err := scanItem(r.store.Querier(nil).QueryRow(ctx,
		`SELECT `+itemColumns+` FROM inventory WHERE item_id = $1`, itemID))
	if err != nil {
		return nil, notFound(err)
	}
	return i, nil
}

// GetByName fetches the item with the given name. Names are not unique; the
// oldest item wins.
func (r *PostgresItemRepository) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	i, err := scanItem(r.store.Querier(nil).QueryRow(ctx,
		`SELECT `+itemColumns+` FROM inventory WHERE name = $1 ORDER BY item_id LIMIT 1`, name))
	if err != nil {
		return nil, notFound(err)
	}
	return i, nil
}

// GetByNameForUpdate is GetByName inside tx, locking the row until tx ends.
func (r *PostgresItemRepository) GetByNameForUpdate(ctx context.Context, tx database.Tx, name string) (*domain.Item, error) {
	i, err := scanItem(r.store.Querier(tx).QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM inventory
		WHERE name = $1
		ORDER BY item_id
		LIMIT 1
		FOR UPDATE
	`, name))
	if err != nil {
		return nil, notFound(err)
	}
	return i, nil
}

// Update applies the non-nil fields of update and returns the new row.
func (r *PostgresItemRepository) Update(ctx context.Context, itemID int64, update domain.ItemUpdate) (*domain.Item, error) {
	query, args, err := buildItemUpdate(itemID, update)
	if err != nil {
		return nil, err
	}

	i, err := scanItem(r.store.Querier(nil).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return i, nil
}

// buildItemUpdate assembles an UPDATE over a fixed column whitelist with every
// value bound as a parameter.
func buildItemUpdate(itemID int64, update domain.ItemUpdate) (string, []any, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Category != nil {
		add("category", string(*update.Category))
	}
	if update.PricePerItem != nil {
		add("price_per_item", *update.PricePerItem)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.CountInStock != nil {
		add("count_in_stock", *update.CountInStock)
	}

	if len(sets) == 0 {
		return "", nil, domain.InvalidInput("no updates provided")
	}

	args = append(args, itemID)
	query := fmt.Sprintf("UPDATE inventory SET %s WHERE item_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), itemColumns)
	return query, args, nil
}

// DecreaseStock removes quantity units only if that many are in stock.
func (r *PostgresItemRepository) DecreaseStock(ctx context.Context, tx database.Tx, itemID int64, quantity int) (*domain.Item, error) {
	q := r.store.Querier(tx)
	i, err := scanItem(q.QueryRow(ctx, `
		UPDATE inventory
		SET count_in_stock = count_in_stock - $1
		WHERE item_id = $2 AND count_in_stock >= $1
		RETURNING `+itemColumns,
		quantity, itemID))
	if err == nil {
		return i, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to decrease stock: %w", database.ClassifyError(err))
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM inventory WHERE item_id = $1)`, itemID).Scan(&exists); err != nil {
		return nil, database.ClassifyError(err)
	}
	if !exists {
		return nil, domain.ErrItemNotFound
	}
	return nil, domain.ErrOutOfStock
}
