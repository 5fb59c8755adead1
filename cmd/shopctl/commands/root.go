package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MariamAbbas03/Project435/internal/client"
	"github.com/MariamAbbas03/Project435/internal/config"
	"github.com/MariamAbbas03/Project435/internal/logger"
)

var (
	// Global flags
	dbURL        string
	customersURL string
	inventoryURL string
	salesURL     string
	timeout      time.Duration
	verbose      bool
	jsonOutput   bool

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Operate the customers, inventory and sales services",
	Long: `shopctl bootstraps the shop database and drives the running services.

Connection defaults come from the same environment variables (and .env file)
the services read, so flags are only needed to override them.

Examples:
  shopctl schema --apply                 # Create missing tables
  shopctl seed                           # Register demo customers and items
  shopctl history alice                  # Print alice's sales
  shopctl bench --item widget -n 200     # Concurrent sales against one item`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.InitWithWriter(logger.Config{Level: level, ServiceName: "shopctl"}, os.Stderr)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	var err error
	cfg, err = config.Load("shopctl", "8080")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().StringVar(&dbURL, "db", cfg.DSN(), "Database connection URL")
	rootCmd.PersistentFlags().StringVar(&customersURL, "customers-url", cfg.CustomersURL, "Customers service base URL")
	rootCmd.PersistentFlags().StringVar(&inventoryURL, "inventory-url", cfg.InventoryURL, "Inventory service base URL")
	rootCmd.PersistentFlags().StringVar(&salesURL, "sales-url", cfg.SalesURL, "Sales service base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request HTTP timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func newClient() *client.Client {
	return client.New(client.Options{
		CustomersURL: customersURL,
		InventoryURL: inventoryURL,
		SalesURL:     salesURL,
		Timeout:      timeout,
	})
}
