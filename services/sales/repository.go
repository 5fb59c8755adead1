package sales

import (
	"context"
	"fmt"
	"iter"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
)

// Repository defines the sales ledger persistence operations.
type Repository interface {
	BeginTx(ctx context.Context) (database.Tx, error)
	InsertSale(ctx context.Context, tx database.Tx, sale *domain.SaleRecord) error
	CustomerSales(ctx context.Context, customerID int64) iter.Seq2[domain.SaleSummary, error]
}

// PostgresSaleRepository implements Repository over the record store.
type PostgresSaleRepository struct {
	store *database.Store
}

// NewSaleRepository creates a new PostgresSaleRepository.
func NewSaleRepository(store *database.Store) *PostgresSaleRepository {
	return &PostgresSaleRepository{store: store}
}

// BeginTx starts the transaction a sale runs in.
func (r *PostgresSaleRepository) BeginTx(ctx context.Context) (database.Tx, error) {
	return r.store.BeginTx(ctx)
}

// InsertSale appends sale and fills in its id. The sale date is stamped by
// the database so every replica shares one clock.
func (r *PostgresSaleRepository) InsertSale(ctx context.Context, tx database.Tx, sale *domain.SaleRecord) error {
	err := r.store.Querier(tx).QueryRow(ctx, `
		INSERT INTO sales (customer_id, item_id, price_at_sale)
		VALUES ($1, $2, $3)
		RETURNING sale_id, sale_date
	`, sale.CustomerID, sale.ItemID, sale.PriceAtSale,
	).Scan(&sale.ID, &sale.SaleDate)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", database.ClassifyError(err))
	}
	return nil
}

// CustomerSales yields a customer's sales oldest first, joined with the
// current inventory row. Each range runs the query again; the connection is
// held only while iterating. Sales of deleted items keep an empty name and a
// zero current price.
func (r *PostgresSaleRepository) CustomerSales(ctx context.Context, customerID int64) iter.Seq2[domain.SaleSummary, error] {
	return func(yield func(domain.SaleSummary, error) bool) {
		rows, err := r.store.Querier(nil).Query(ctx, `
			SELECT s.sale_id, s.sale_date, COALESCE(i.name, ''), COALESCE(i.price_per_item, 0), s.price_at_sale
			FROM sales s
			LEFT JOIN inventory i ON i.item_id = s.item_id
			WHERE s.customer_id = $1
			ORDER BY s.sale_date ASC, s.sale_id ASC
		`, customerID)
		if err != nil {
			yield(domain.SaleSummary{}, fmt.Errorf("failed to query sales: %w", database.ClassifyError(err)))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var s domain.SaleSummary
			if err := rows.Scan(&s.SaleID, &s.SaleDate, &s.ItemName, &s.PricePerItem, &s.PriceAtSale); err != nil {
				yield(domain.SaleSummary{}, fmt.Errorf("failed to scan sale: %w", database.ClassifyError(err)))
				return
			}
			if !yield(s, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.SaleSummary{}, fmt.Errorf("failed to read sales: %w", database.ClassifyError(err)))
		}
	}
}
