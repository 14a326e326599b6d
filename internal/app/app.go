package app

import (
	"context"
	"log/slog"

	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres"
	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/audit"
	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/resource"
	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/stats"
	"github.com/stagedesk/stagedesk-backend/internal/adapter/postgres/team"
	"github.com/stagedesk/stagedesk-backend/internal/config"
	"github.com/stagedesk/stagedesk-backend/internal/scope"
	"github.com/stagedesk/stagedesk-backend/internal/service/workspace"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to the database, and wires the workspace service.
// It blocks until the context is cancelled. Transport layers (HTTP, gRPC)
// plug in on top of the returned wiring in later phases.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	NewWorkspaceService(logger, pool)

	logger.Info("application ready")

	<-ctx.Done()
	logger.Info("shutting down")

	return nil
}

// NewWorkspaceService wires the repositories, scope resolver, and transaction
// manager into a ready workspace service on top of the given pool.
func NewWorkspaceService(logger *slog.Logger, pool postgres.Pool) *workspace.Service {
	teamRepo := team.New(pool)
	resolver := scope.NewResolver(teamRepo, teamRepo)

	return workspace.NewService(
		logger,
		resource.New(pool),
		resolver,
		teamRepo,
		teamRepo,
		audit.New(pool),
		stats.New(pool),
		postgres.NewTxManager(pool),
		nil,
	)
}
