package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MariamAbbas03/Project435/internal/bootstrap"
	"github.com/MariamAbbas03/Project435/services/customers"
	"github.com/MariamAbbas03/Project435/services/inventory"
	"github.com/MariamAbbas03/Project435/services/sales"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.New(ctx, "sales-service", "8080")
	if err != nil {
		slog.Error("Failed to start sales service", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := svc.Close(context.Background()); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	// The sale runs in one local transaction, so the ledgers are used
	// in-process over the shared database rather than over HTTP.
	customerLedger := customers.NewCustomerUseCase(customers.NewCustomerRepository(svc.Store))
	inventoryLedger := inventory.NewItemUseCase(inventory.NewItemRepository(svc.Store))

	usecases, err := sales.NewSaleUseCase(
		sales.NewSaleRepository(svc.Store),
		customerLedger,
		inventoryLedger,
		sales.Options{
			DebitWalletOnSale: svc.Config.DebitWalletOnSale,
			Tracer:            svc.Telemetry.Tracer(),
			Meter:             svc.Telemetry.Meter(),
		},
	)
	if err != nil {
		slog.Error("Failed to create sales use case", "error", err)
		return
	}

	handler := sales.NewSaleHandler(usecases, svc.Respond)
	handler.RegisterRoutes(svc.Engine)

	if err := svc.Run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
	}
}
