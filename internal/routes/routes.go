package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/example/tavola/internal/cache"
	"github.com/example/tavola/internal/config"
	"github.com/example/tavola/internal/handlers"
	"github.com/example/tavola/internal/middleware"
	"github.com/example/tavola/internal/ratelimit"
	"github.com/example/tavola/internal/repository"
	"github.com/example/tavola/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, store cache.Store, storage services.LogoStorage, log zerolog.Logger) {
	contactInfoRepo := repository.NewContactInfoRepository(db, store)
	reviewRepo := repository.NewReviewRepository(db, store)
	sectionRepo := repository.NewContentSectionRepository(db, store)
	partnerRepo := repository.NewPartnerRepository(db, store)
	submissionRepo := repository.NewSubmissionRepository(db)
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewSecurityEventRepository(db)

	monitor := services.NewSecurityMonitor(eventRepo, log)
	partnerService := services.NewPartnerService(partnerRepo, storage, log)

	authHandler := handlers.NewAuthHandler(userRepo, monitor, cfg)
	contactInfoHandler := handlers.NewContactInfoHandler(contactInfoRepo)
	reviewHandler := handlers.NewReviewHandler(reviewRepo)
	sectionHandler := handlers.NewContentSectionHandler(sectionRepo)
	partnerHandler := handlers.NewPartnerHandler(partnerRepo, partnerService)
	submissionHandler := handlers.NewSubmissionHandler(submissionRepo, log)
	exportHandler := handlers.NewExportHandler(contactInfoRepo, reviewRepo, sectionRepo, partnerRepo, submissionRepo)
	adminHandler := handlers.NewAdminHandler(db, eventRepo)

	contactLimiter := ratelimit.New(cfg.ContactRateLimit, cfg.ContactRateWindow)

	api := app.Group("/api")

	// Public marketing endpoints
	public := api.Group("/public")
	public.Get("/contact-info", contactInfoHandler.List)
	public.Get("/reviews", reviewHandler.List)
	public.Get("/content-sections", sectionHandler.List)
	public.Get("/content-sections/:key", sectionHandler.GetByKey)
	public.Get("/partners", partnerHandler.List)
	public.Post("/contact", middleware.RateLimit(contactLimiter), submissionHandler.Submit)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)

	// Admin back-office
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminRequired(userRepo))

	admin.Get("/dashboard", adminHandler.DashboardStats)
	admin.Get("/security-events", adminHandler.SecurityEvents)

	contactInfo := admin.Group("/contact-info")
	contactInfo.Get("/", contactInfoHandler.List)
	contactInfo.Post("/", contactInfoHandler.Create)
	contactInfo.Get("/:id", contactInfoHandler.Get)
	contactInfo.Put("/:id", contactInfoHandler.Update)
	contactInfo.Delete("/:id", contactInfoHandler.Delete)

	reviews := admin.Group("/reviews")
	reviews.Get("/", reviewHandler.List)
	reviews.Post("/", reviewHandler.Create)
	reviews.Get("/:id", reviewHandler.Get)
	reviews.Put("/:id", reviewHandler.Update)
	reviews.Delete("/:id", reviewHandler.Delete)

	sections := admin.Group("/content-sections")
	sections.Get("/", sectionHandler.List)
	sections.Post("/", sectionHandler.Create)
	sections.Get("/:id", sectionHandler.Get)
	sections.Put("/:id", sectionHandler.Update)
	sections.Delete("/:id", sectionHandler.Delete)

	partners := admin.Group("/partners")
	partners.Get("/", partnerHandler.List)
	partners.Post("/", partnerHandler.Create)
	partners.Put("/reorder", partnerHandler.Reorder)
	partners.Post("/logo", partnerHandler.UploadLogo)
	partners.Get("/:id", partnerHandler.Get)
	partners.Put("/:id", partnerHandler.Update)
	partners.Delete("/:id", partnerHandler.Delete)

	submissions := admin.Group("/submissions")
	submissions.Get("/", submissionHandler.List)
	submissions.Get("/:id", submissionHandler.Get)
	submissions.Delete("/:id", submissionHandler.Delete)

	exports := admin.Group("/export")
	exports.Get("/backup", exportHandler.Backup)
	exports.Post("/restore-preview", exportHandler.RestorePreview)
	exports.Get("/:entity", exportHandler.CSV)
}
