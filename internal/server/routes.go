package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lexipedia/internal/db"
	"lexipedia/internal/email"
	"lexipedia/internal/handlers"
	"lexipedia/internal/handlers/api"
	"lexipedia/internal/middleware"
	"lexipedia/internal/review"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, engine *review.Engine, notifier *email.Notifier) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(s.Store, database)

	// Initialize handlers
	dictionaryHandler := handlers.NewDictionaryHandler(database, s.Cfg)
	submissionHandler := handlers.NewSubmissionHandler(database, s.Cfg, notifier)
	contributionHandler := handlers.NewContributionHandler(database, s.Cfg)
	moderationHandler := handlers.NewModerationHandler(database, s.Cfg, engine)
	userHandler := handlers.NewUserHandler(database, s.Cfg)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - OIDC is required for contributor and moderator access
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. Contributors must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Login page
	s.App.Get("/login", func(c fiber.Ctx) error {
		return c.Render("login", handlers.MergeBranding(fiber.Map{}, s.Cfg))
	})

	// Public dictionary routes - reading never requires an account
	s.App.Get("/", dictionaryHandler.Index, authMiddleware.OptionalAuth)
	s.App.Get("/browse", dictionaryHandler.Browse, authMiddleware.OptionalAuth)
	s.App.Get("/words/:slug", dictionaryHandler.Show, authMiddleware.OptionalAuth)
	s.App.Get("/contributors", contributionHandler.Leaderboard, authMiddleware.OptionalAuth)

	// Contributor routes
	s.App.Get("/submit", submissionHandler.New, authMiddleware.RequireAuth)
	s.App.Post("/submit", submissionHandler.Create, authMiddleware.RequireAuth)
	s.App.Get("/words/:slug/meanings/:id/examples", submissionHandler.NewExample, authMiddleware.RequireAuth)
	s.App.Post("/words/:slug/meanings/:id/examples", submissionHandler.CreateExample, authMiddleware.RequireAuth)
	s.App.Get("/contributions", contributionHandler.Dashboard, authMiddleware.RequireAuth)

	// Moderation routes (moderators only)
	moderators := []any{authMiddleware.RequireAuth, authMiddleware.RequireModerator}
	s.App.Get("/moderation", moderationHandler.Index, moderators...)
	s.App.Post("/moderation/words/approve", moderationHandler.BulkApproveWords, moderators...)
	s.App.Get("/moderation/words/reject", moderationHandler.RejectWordsConfirm, moderators...)
	s.App.Post("/moderation/words/reject", moderationHandler.BulkRejectWords, moderators...)
	s.App.Post("/moderation/examples/:id/approve", moderationHandler.ApproveExample, moderators...)
	s.App.Post("/moderation/examples/:id/reject", moderationHandler.RejectExample, moderators...)

	// Admin routes (admin only)
	admins := []any{authMiddleware.RequireAuth, authMiddleware.RequireAdmin}
	s.App.Get("/admin/users", userHandler.ListUsers, admins...)
	s.App.Post("/admin/users/:id/role", userHandler.UpdateUserRole, admins...)
	s.App.Delete("/admin/users/:id", userHandler.DeleteUser, admins...)

	// JSON API
	apiWords := api.NewWordHandler(database, s.Cfg)
	apiSubmissions := api.NewSubmissionHandler(database, s.Cfg, notifier)
	apiModeration := api.NewModerationHandler(database, engine)

	v1 := s.App.Group("/api/v1")
	v1.Get("/words", apiWords.List)
	v1.Get("/words/:id", apiWords.Get)
	v1.Get("/words/slug/:slug", apiWords.GetBySlug)
	v1.Get("/submissions", apiSubmissions.ListMine, authMiddleware.RequireAuth)
	v1.Post("/submissions", apiSubmissions.Create, authMiddleware.RequireAuth)
	v1.Get("/contributors/:id/stats", apiSubmissions.GetStats, authMiddleware.RequireAuth)
	v1.Get("/moderation/queue", apiModeration.Queue, moderators...)
	v1.Post("/moderation/words/:id/approve", apiModeration.ApproveWord, moderators...)
	v1.Post("/moderation/words/:id/reject", apiModeration.RejectWord, moderators...)
	v1.Post("/moderation/words/approve", apiModeration.BulkApproveWords, moderators...)
	v1.Post("/moderation/words/reject", apiModeration.BulkRejectWords, moderators...)
	v1.Post("/moderation/examples/:id/approve", apiModeration.ApproveExample, moderators...)
	v1.Post("/moderation/examples/:id/reject", apiModeration.RejectExample, moderators...)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
