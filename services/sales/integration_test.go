//go:build integration

package sales

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/database/dbtest"
	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/services/customers"
	"github.com/MariamAbbas03/Project435/services/inventory"
)

type shop struct {
	customers *customers.CustomerUseCase
	inventory *inventory.ItemUseCase
	sales     *SaleUseCase
}

func newShop(t *testing.T, store *database.Store, debit bool) *shop {
	t.Helper()
	cust := customers.NewCustomerUseCase(customers.NewCustomerRepository(store))
	inv := inventory.NewItemUseCase(inventory.NewItemRepository(store))
	uc, err := NewSaleUseCase(NewSaleRepository(store), cust, inv, Options{DebitWalletOnSale: debit})
	require.NoError(t, err)
	return &shop{customers: cust, inventory: inv, sales: uc}
}

func (s *shop) seed(t *testing.T, username string, wallet int64, item string, price int64, stock int) (*domain.Customer, *domain.Item) {
	t.Helper()
	ctx := context.Background()

	c, err := s.customers.Register(ctx, customers.RegisterCustomerRequest{
		FullName: username, Username: username, Password: "pw",
	})
	require.NoError(t, err)
	if wallet > 0 {
		c, err = s.customers.ChargeWallet(ctx, c.ID, decimal.NewFromInt(wallet))
		require.NoError(t, err)
	}

	i, err := s.inventory.AddItem(ctx, inventory.AddItemRequest{
		Name: item, Category: domain.CategoryElectronics, PricePerItem: decimal.NewFromInt(price), CountInStock: stock,
	})
	require.NoError(t, err)
	return c, i
}

func TestIntegration_MakeSale(t *testing.T) {
	store, pool := dbtest.NewStore(t)
	ctx := context.Background()

	t.Run("sale decrements stock, debits wallet and is listed", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, true)
		alice, widget := s.seed(t, "alice", 100, "widget", 10, 5)

		sale, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
		require.NoError(t, err)
		assert.Positive(t, sale.ID)

		item, err := s.inventory.GetByID(ctx, widget.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, item.CountInStock)

		customer, err := s.customers.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, customer.WalletBalance.Equal(decimal.NewFromInt(90)), customer.WalletBalance.String())

		history, err := s.sales.GetCustomerSalesByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, sale.ID, history[0].SaleID)
		assert.Equal(t, "widget", history[0].ItemName)
		assert.True(t, history[0].PricePerItem.Equal(decimal.NewFromInt(10)))
	})

	t.Run("wallet untouched when debit is disabled", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, false)
		alice, _ := s.seed(t, "alice", 100, "widget", 10, 5)

		_, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
		require.NoError(t, err)

		customer, err := s.customers.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, customer.WalletBalance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("out of stock leaves everything unchanged", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, true)
		_, gadget := s.seed(t, "alice", 100, "gadget", 10, 0)

		_, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "gadget"})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)

		item, err := s.inventory.GetByID(ctx, gadget.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, item.CountInStock)

		history, err := s.sales.GetCustomerSalesByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("unknown customer", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, true)
		s.seed(t, "alice", 100, "widget", 10, 5)

		_, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "ghost", ItemName: "widget"})
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	})

	t.Run("last unit sells once", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, true)
		s.seed(t, "alice", 100, "widget", 10, 1)

		_, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
		require.NoError(t, err)

		_, err = s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
	})

	t.Run("history shows current price and price charged", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, true)
		_, widget := s.seed(t, "alice", 100, "widget", 10, 5)

		sale, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
		require.NoError(t, err)
		assert.False(t, sale.SaleDate.IsZero())

		price := decimal.NewFromInt(15)
		_, err = s.inventory.Update(ctx, widget.ID, domain.ItemUpdate{PricePerItem: &price})
		require.NoError(t, err)

		history, err := s.sales.GetCustomerSalesByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.True(t, history[0].PricePerItem.Equal(decimal.NewFromInt(15)), history[0].PricePerItem.String())
		assert.True(t, history[0].PriceAtSale.Equal(decimal.NewFromInt(10)), history[0].PriceAtSale.String())
		assert.True(t, sale.SaleDate.Equal(history[0].SaleDate))
	})

	t.Run("history survives item deletion from inventory", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, true)
		alice, widget := s.seed(t, "alice", 100, "widget", 10, 5)

		_, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
		require.NoError(t, err)
		_, err = store.Exec(ctx, `DELETE FROM inventory WHERE item_id = $1`, widget.ID)
		require.NoError(t, err)

		var got []domain.SaleSummary
		for summary, err := range s.sales.GetCustomerSales(ctx, alice.ID) {
			require.NoError(t, err)
			got = append(got, summary)
		}
		require.Len(t, got, 1)
		assert.Empty(t, got[0].ItemName)
		assert.True(t, got[0].PricePerItem.IsZero())
		assert.True(t, got[0].PriceAtSale.Equal(decimal.NewFromInt(10)))
	})

	t.Run("history is ordered and restartable", func(t *testing.T) {
		dbtest.Truncate(t, pool)
		s := newShop(t, store, true)
		alice, _ := s.seed(t, "alice", 100, "widget", 10, 5)

		for range 3 {
			_, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
			require.NoError(t, err)
		}

		seq := s.sales.GetCustomerSales(ctx, alice.ID)
		collect := func() []int64 {
			var ids []int64
			for summary, err := range seq {
				require.NoError(t, err)
				ids = append(ids, summary.SaleID)
			}
			return ids
		}

		first := collect()
		require.Len(t, first, 3)
		assert.IsIncreasing(t, first)
		assert.Equal(t, first, collect())

		// Breaking early releases the connection.
		for range seq {
			break
		}
		assert.Empty(t, collectFor(t, s, 9999))
	})
}

func collectFor(t *testing.T, s *shop, customerID int64) []domain.SaleSummary {
	t.Helper()
	var out []domain.SaleSummary
	for summary, err := range s.sales.GetCustomerSales(context.Background(), customerID) {
		require.NoError(t, err)
		out = append(out, summary)
	}
	return out
}

func TestIntegration_ConcurrentSalesNeverOversell(t *testing.T) {
	store, pool := dbtest.NewStore(t)
	dbtest.Truncate(t, pool)
	ctx := context.Background()

	const (
		buyers = 20
		stock  = 7
	)

	s := newShop(t, store, true)
	_, widget := s.seed(t, "alice", 1000, "widget", 10, stock)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		outOfStock int
		others     []error
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.sales.MakeSale(ctx, MakeSaleRequest{CustomerUsername: "alice", ItemName: "widget"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrOutOfStock):
				outOfStock++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, stock, successes)
	assert.Equal(t, buyers-stock, outOfStock)

	item, err := s.inventory.GetByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, item.CountInStock)

	history, err := s.sales.GetCustomerSalesByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, history, stock)
}
