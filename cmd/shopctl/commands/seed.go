package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/services/customers"
	"github.com/MariamAbbas03/Project435/services/inventory"
)

var (
	seedWallet string
	seedStock  int
)

// seedCmd registers demo data through the services
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register demo customers and items",
	Long: `Register a few customers with charged wallets and one item per category.

Customers that already exist are reused, so seeding twice only tops up
their wallets and adds another batch of items.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedWallet, "wallet", "100", "Amount charged to every seeded wallet")
	seedCmd.Flags().IntVar(&seedStock, "stock", 50, "Units stocked for every seeded item")
}

var demoCustomers = []customers.RegisterCustomerRequest{
	{FullName: "Alice Smith", Username: "alice", Password: "alice-pass", Age: 30, Address: "Beirut", Gender: "female", MaritalStatus: "single"},
	{FullName: "Bob Jones", Username: "bob", Password: "bob-pass", Age: 41, Address: "Byblos", Gender: "male", MaritalStatus: "married"},
	{FullName: "Carol White", Username: "carol", Password: "carol-pass", Age: 25, Address: "Tripoli", Gender: "female", MaritalStatus: "single"},
}

var demoItems = []struct {
	name     string
	category domain.Category
	price    string
}{
	{"apple", domain.CategoryFood, "0.75"},
	{"t-shirt", domain.CategoryClothes, "15.00"},
	{"watch", domain.CategoryAccessories, "45.50"},
	{"widget", domain.CategoryElectronics, "10.00"},
}

func runSeed(ctx context.Context) error {
	wallet, err := domain.ParseAmount(seedWallet)
	if err != nil {
		return err
	}

	c := newClient()
	for _, req := range demoCustomers {
		customer, err := c.RegisterCustomer(ctx, req)
		if errors.Is(err, domain.ErrConflict) {
			customer, err = c.GetCustomer(ctx, req.Username)
		}
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", req.Username, err)
		}

		customer, err = c.ChargeWallet(ctx, customer.ID, wallet)
		if err != nil {
			return fmt.Errorf("charge wallet of %s: %w", req.Username, err)
		}
		fmt.Printf("👤 %-8s id=%d wallet=%s\n", customer.Username, customer.ID, customer.WalletBalance)
	}

	for _, it := range demoItems {
		item, err := c.AddItem(ctx, inventory.AddItemRequest{
			Name:         it.name,
			Category:     it.category,
			PricePerItem: decimal.RequireFromString(it.price),
			Description:  "demo " + string(it.category),
			CountInStock: seedStock,
		})
		if err != nil {
			return fmt.Errorf("seed item %s: %w", it.name, err)
		}
		fmt.Printf("📦 %-8s id=%d price=%s stock=%d\n", item.Name, item.ID, item.PricePerItem, item.CountInStock)
	}
	return nil
}
