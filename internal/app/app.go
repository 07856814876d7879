package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/b3ofer/config"
	"github.com/guttosm/b3ofer/internal/api"
	"github.com/guttosm/b3ofer/internal/service"
	"github.com/guttosm/b3ofer/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL through postgresOpener.
//   - Builds the run-log repository, RunsService and HTTP handler.
//   - Configures the Gin router and registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function that closes the database pool.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewRunsRepository(db)
	svc := service.NewRunsService(repo)
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler)
	api.NewHealthHandler(repo.Ping).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// OpenRunLog returns the repository batch and filter modes record into:
// PostgreSQL when the run log is enabled, otherwise a no-op store.
func OpenRunLog(cfg config.Config) (storage.RunsRepository, func(), error) {
	if !cfg.RunLog.Enabled {
		return storage.NewNopRunsRepository(), func() {}, nil
	}

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize run log: %w", err)
	}
	return storage.NewRunsRepository(db), func() { _ = db.Close() }, nil
}
