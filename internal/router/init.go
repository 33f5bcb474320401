package router

import (
	"log"

	"github.com/cvbuilder/api/internal/application"
	"github.com/cvbuilder/api/internal/container"
	pginfra "github.com/cvbuilder/api/internal/infrastructure/postgres"
	handlers "github.com/cvbuilder/api/internal/interface/http"
	"github.com/cvbuilder/api/internal/router/modules"
)

// InitModules builds the application services from container singletons and
// registers all feature modules with the router registry. Called once during
// startup; the strategy registry built here is immutable afterwards.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	resumeRepo := pginfra.NewResumeRepository(container.GetPGPool())

	userSvc := application.NewUserService(userRepo, container.GetCache(), logger, cfg.CacheTTL, cfg.CacheNegativeTTL)
	resumeSvc := application.NewResumeService(resumeRepo, container.GetCache(), logger, cfg.CacheTTL,
		container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESResumesIndex)

	verifier, err := application.NewEventVerifier(cfg.ClerkWebhookSecret, logger)
	if err != nil {
		log.Fatalf("failed to build webhook verifier: %v", err)
	}
	dispatcher, err := application.NewDispatcher(logger,
		application.NewUserCreatedStrategy(userRepo, logger),
		application.NewUserUpdatedStrategy(userSvc, logger),
		application.NewUserDeletedStrategy(userRepo, userSvc, logger),
	)
	if err != nil {
		log.Fatalf("failed to build webhook dispatcher: %v", err)
	}

	r.Add(modules.NewWebhookModule(handlers.NewWebhookHandler(verifier, dispatcher, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(logger), userSvc))
	r.Add(modules.NewResumeModule(handlers.NewResumeHandler(resumeSvc, logger), userSvc))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
