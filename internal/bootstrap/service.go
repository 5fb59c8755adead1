// Package bootstrap builds the process shared by the three service binaries:
// config, logger, telemetry, database pool and gin engine.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/MariamAbbas03/Project435/internal/config"
	"github.com/MariamAbbas03/Project435/internal/database"
	"github.com/MariamAbbas03/Project435/internal/httpserver"
	"github.com/MariamAbbas03/Project435/internal/logger"
	"github.com/MariamAbbas03/Project435/internal/telemetry"
)

// Service is a started but not yet serving service process.
type Service struct {
	Config    *config.Config
	Telemetry *telemetry.Providers
	Store     *database.Store
	Engine    *gin.Engine
	Respond   httpserver.Responder
}

// New loads the configuration and connects everything a service needs.
// Callers register their routes on Engine, then call Run.
func New(ctx context.Context, serviceName, defaultPort string) (*Service, error) {
	cfg, err := config.Load(serviceName, defaultPort)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})

	providers, err := telemetry.Init(ctx, telemetry.Options{
		Enabled:        cfg.OTelEnabled,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.PoolConfig())
	if err != nil {
		_ = providers.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.EnsureSchema {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			_ = providers.Shutdown(ctx)
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	if err := httpserver.RegisterValidations(); err != nil {
		pool.Close()
		_ = providers.Shutdown(ctx)
		return nil, err
	}

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := httpserver.NewEngine(httpserver.Options{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Tracing:        cfg.OTelEnabled,
	})

	return &Service{
		Config:    cfg,
		Telemetry: providers,
		Store:     database.NewStore(pool),
		Engine:    engine,
		Respond:   httpserver.Responder{Legacy: cfg.LegacyStatusCodes},
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	slog.Info("🚀 Service listening",
		"service", s.Config.ServiceName,
		"addr", s.Config.Addr(),
		"legacy_status_codes", s.Config.LegacyStatusCodes,
	)
	return httpserver.Run(ctx, s.Config.Addr(), s.Engine)
}

// Close releases the pool and flushes telemetry.
func (s *Service) Close(ctx context.Context) error {
	s.Store.Close()
	if err := s.Telemetry.Shutdown(ctx); err != nil {
		return errors.Join(errors.New("telemetry shutdown"), err)
	}
	return nil
}
