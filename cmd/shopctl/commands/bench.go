package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/MariamAbbas03/Project435/internal/client"
	"github.com/MariamAbbas03/Project435/internal/domain"
)

var (
	benchCustomer    string
	benchItem        string
	benchRequests    int
	benchConcurrency int
)

// benchCmd fires concurrent sales against one item
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run concurrent sales and check that stock is never oversold",
	Long: `Send --requests sales of --item for --customer with --concurrency workers,
then compare the number of successful sales with the stock consumed.

A correct deployment never sells more units than were in stock, and every
successful sale appears in the customer's history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVar(&benchCustomer, "customer", "alice", "Buying customer's username")
	benchCmd.Flags().StringVar(&benchItem, "item", "widget", "Item name to buy")
	benchCmd.Flags().IntVarP(&benchRequests, "requests", "n", 100, "Total sale requests")
	benchCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 10, "Concurrent workers")
}

// BenchResult summarises a bench run.
type BenchResult struct {
	Requests   int            `json:"requests"`
	Completed  int            `json:"completed"`
	Rejected   map[string]int `json:"rejected"`
	Elapsed    time.Duration  `json:"elapsed_ns"`
	SalesSeen  int            `json:"sales_in_history"`
	Oversold   bool           `json:"oversold"`
	StockDelta int            `json:"stock_delta"`
}

func runBench(ctx context.Context) error {
	if benchRequests <= 0 || benchConcurrency <= 0 {
		return fmt.Errorf("--requests and --concurrency must be positive")
	}

	c := newClient()
	before, err := findItem(ctx, c, benchItem)
	if err != nil {
		return err
	}
	historyBefore, err := c.CustomerSales(ctx, benchCustomer)
	if err != nil {
		return err
	}

	result := sellConcurrently(ctx, c, benchCustomer, benchItem, benchRequests, benchConcurrency)

	after, err := c.GetItem(ctx, before.ID)
	if err != nil {
		return err
	}
	historyAfter, err := c.CustomerSales(ctx, benchCustomer)
	if err != nil {
		return err
	}

	result.StockDelta = before.CountInStock - after.CountInStock
	result.SalesSeen = len(historyAfter) - len(historyBefore)
	result.Oversold = after.CountInStock < 0 || result.StockDelta != result.Completed

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Requests:      %d in %s (%.1f req/s)\n", result.Requests, result.Elapsed.Round(time.Millisecond),
		float64(result.Requests)/result.Elapsed.Seconds())
	fmt.Printf("Completed:     %d\n", result.Completed)
	reasons := make([]string, 0, len(result.Rejected))
	for reason := range result.Rejected {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("Rejected:      %d (%s)\n", result.Rejected[reason], reason)
	}
	fmt.Printf("Stock:         %d -> %d\n", before.CountInStock, after.CountInStock)
	fmt.Printf("New in history: %d\n", result.SalesSeen)

	if result.Oversold || result.SalesSeen != result.Completed {
		return errors.New("❌ stock, sales and history disagree")
	}
	fmt.Println("✅ No oversell")
	return nil
}

func findItem(ctx context.Context, c *client.Client, name string) (*domain.Item, error) {
	items, err := c.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	var found *domain.Item
	for i := range items {
		if items[i].Name == name && (found == nil || items[i].ID < found.ID) {
			found = &items[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("item %q: %w", name, domain.ErrItemNotFound)
	}
	return found, nil
}

// sellConcurrently sends n sales through workers goroutines.
func sellConcurrently(ctx context.Context, c *client.Client, customer, item string, n, workers int) BenchResult {
	jobs := make(chan struct{})
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = BenchResult{Requests: n, Rejected: map[string]int{}}
	)

	start := time.Now()
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				_, err := c.MakeSale(ctx, customer, item)
				mu.Lock()
				if err == nil {
					result.Completed++
				} else {
					result.Rejected[rejectionKind(err)]++
				}
				mu.Unlock()
			}
		}()
	}

	for range n {
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()

	result.Elapsed = time.Since(start)
	return result
}

func rejectionKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		return "out of stock"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient funds"
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid input"
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return "server error"
		}
		return "transport error"
	}
}
