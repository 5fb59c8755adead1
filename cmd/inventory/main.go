package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MariamAbbas03/Project435/internal/bootstrap"
	"github.com/MariamAbbas03/Project435/services/inventory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.New(ctx, "inventory-service", "5001")
	if err != nil {
		slog.Error("Failed to start inventory service", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := svc.Close(context.Background()); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	repository := inventory.NewItemRepository(svc.Store)
	usecases := inventory.NewItemUseCase(repository)
	handler := inventory.NewItemHandler(usecases, svc.Telemetry.Tracer(), svc.Respond)
	handler.RegisterRoutes(svc.Engine)

	if err := svc.Run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
	}
}
