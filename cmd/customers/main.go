package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MariamAbbas03/Project435/internal/bootstrap"
	"github.com/MariamAbbas03/Project435/services/customers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.New(ctx, "customers-service", "5000")
	if err != nil {
		slog.Error("Failed to start customers service", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := svc.Close(context.Background()); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	repository := customers.NewCustomerRepository(svc.Store)
	usecases := customers.NewCustomerUseCase(repository)
	handler := customers.NewCustomerHandler(usecases, svc.Telemetry.Tracer(), svc.Respond)
	handler.RegisterRoutes(svc.Engine)

	if err := svc.Run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
	}
}
