package sales

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/logger"
)

// CustomerLedger is the part of the customer ledger a sale needs.
type CustomerLedger interface {
	GetCustomerForUpdate(ctx context.Context, tx database.Tx, username string) (*domain.Customer, error)
	DebitWallet(ctx context.Context, tx database.Tx, customerID int64, amount decimal.Decimal) error
	GetCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error)
}

// InventoryLedger is the part of the inventory ledger a sale needs.
type InventoryLedger interface {
	GetItemForUpdate(ctx context.Context, tx database.Tx, name string) (*domain.Item, error)
	DecreaseStock(ctx context.Context, tx database.Tx, itemID int64, quantity int) error
}

// Options tunes a SaleUseCase. Nil Tracer and Meter fall back to no-ops.
type Options struct {
	DebitWalletOnSale bool
	Tracer            trace.Tracer
	Meter             metric.Meter
}

// SaleUseCase runs sales and reads sales history.
type SaleUseCase struct {
	repository Repository
	customers  CustomerLedger
	inventory  InventoryLedger
	debit      bool
	tracer     trace.Tracer

	salesCompleted metric.Int64Counter
	salesRejected  metric.Int64Counter
}

// NewSaleUseCase creates a new SaleUseCase.
func NewSaleUseCase(
	repository Repository,
	customers CustomerLedger,
	inventory InventoryLedger,
	opts Options,
) (*SaleUseCase, error) {
	if opts.Tracer == nil {
		opts.Tracer = tracenoop.NewTracerProvider().Tracer("sales")
	}
	if opts.Meter == nil {
		opts.Meter = metricnoop.NewMeterProvider().Meter("sales")
	}

	completed, err := opts.Meter.Int64Counter("sales_completed_total",
		metric.WithDescription("Sales committed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create sales_completed_total counter: %w", err)
	}
	rejected, err := opts.Meter.Int64Counter("sales_rejected_total",
		metric.WithDescription("Sales rejected, by reason"))
	if err != nil {
		return nil, fmt.Errorf("failed to create sales_rejected_total counter: %w", err)
	}

	return &SaleUseCase{
		repository:     repository,
		customers:      customers,
		inventory:      inventory,
		debit:          opts.DebitWalletOnSale,
		tracer:         opts.Tracer,
		salesCompleted: completed,
		salesRejected:  rejected,
	}, nil
}

// MakeSale sells one unit of the named item to the named customer. Stock,
// wallet and the sale record change together or not at all.
func (uc *SaleUseCase) MakeSale(ctx context.Context, req MakeSaleRequest) (*domain.SaleRecord, error) {
	ctx, span := uc.tracer.Start(ctx, "sales.make_sale")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer_username", req.CustomerUsername),
		attribute.String("item_name", req.ItemName),
	)

	sale, err := uc.makeSale(ctx, req)
	if err != nil {
		reason := rejectReason(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		uc.salesRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
		logger.FromContext(ctx).Warn("❌ Sale rejected",
			"customer_username", req.CustomerUsername,
			"item_name", req.ItemName,
			"reason", reason,
			"error", err,
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("sale_id", sale.ID))
	uc.salesCompleted.Add(ctx, 1)
	logger.FromContext(ctx).Info("✅ Sale completed",
		"sale_id", sale.ID,
		"customer_id", sale.CustomerID,
		"item_id", sale.ItemID,
		"price", sale.PriceAtSale.String(),
	)
	return sale, nil
}

func (uc *SaleUseCase) makeSale(ctx context.Context, req MakeSaleRequest) (*domain.SaleRecord, error) {
	// 1. Both names are required
	if strings.TrimSpace(req.CustomerUsername) == "" || strings.TrimSpace(req.ItemName) == "" {
		return nil, domain.InvalidInput("customer_username and item_name are required")
	}

	// 2. Start the transaction; rollback is a no-op after commit
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.FromContext(ctx).Error("failed to roll back sale", "error", err)
		}
	}()

	// 3. Lock the customer row, then the item row. Every sale locks in this
	// order so two sales cannot deadlock.
	customer, err := uc.customers.GetCustomerForUpdate(ctx, tx, req.CustomerUsername)
	if err != nil {
		return nil, err
	}
	item, err := uc.inventory.GetItemForUpdate(ctx, tx, req.ItemName)
	if err != nil {
		return nil, err
	}

	// 4. Business rules, checked under the locks
	if !customer.CanAfford(item.PricePerItem) {
		return nil, domain.ErrInsufficientFunds
	}
	if !item.InStock() {
		return nil, domain.ErrOutOfStock
	}

	// 5. Conditional writes; a zero-row update surfaces as the matching kind
	if err := uc.inventory.DecreaseStock(ctx, tx, item.ID, 1); err != nil {
		return nil, err
	}
	if uc.debit {
		if err := uc.customers.DebitWallet(ctx, tx, customer.ID, item.PricePerItem); err != nil {
			return nil, err
		}
	}

	sale := domain.NewSaleRecord(customer, item)
	if err := uc.repository.InsertSale(ctx, tx, sale); err != nil {
		return nil, err
	}

	// 6. Commit
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", database.ClassifyError(err))
	}
	return sale, nil
}

// GetCustomerSales returns the customer's sales history, oldest first. The
// sequence is lazy and can be ranged over more than once. An unknown customer
// has an empty history.
func (uc *SaleUseCase) GetCustomerSales(ctx context.Context, customerID int64) iter.Seq2[domain.SaleSummary, error] {
	return uc.repository.CustomerSales(ctx, customerID)
}

// GetCustomerSalesByUsername resolves username and collects its history.
func (uc *SaleUseCase) GetCustomerSalesByUsername(ctx context.Context, username string) ([]domain.SaleSummary, error) {
	ctx, span := uc.tracer.Start(ctx, "sales.customer_sales")
	defer span.End()
	span.SetAttributes(attribute.String("customer_username", username))

	if strings.TrimSpace(username) == "" {
		return nil, domain.InvalidInput("customer_username is required")
	}

	customer, err := uc.customers.GetCustomerByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	summaries := []domain.SaleSummary{}
	for summary, err := range uc.GetCustomerSales(ctx, customer.ID) {
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	span.SetAttributes(attribute.Int("sales.count", len(summaries)))
	return summaries, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, domain.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrOutOfStock):
		return "out_of_stock"
	default:
		return "store_error"
	}
}
