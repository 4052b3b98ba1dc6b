package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/goroti11/trutube-sub003/internal/handler"
	"github.com/goroti11/trutube-sub003/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Feed    *handler.FeedHandler
	Session *handler.SessionHandler
	Trust   *handler.TrustHandler
	Video   *handler.VideoHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group, no rate limits)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	feedLimit := middleware.NewFeedRateLimiter().Handler()
	sessionStartLimit := middleware.NewSessionStartRateLimiter().Handler()
	sessionUpdateLimit := middleware.NewSessionUpdateRateLimiter().Handler()
	trustLimit := middleware.NewTrustLookupRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Feed routes
	api.Get("/feed", h.Feed.GetGlobal, feedLimit)
	api.Get("/feed/personalized/:userId", h.Feed.GetPersonalized, feedLimit)
	api.Get("/feed/universe/:universeId", h.Feed.GetUniverse, feedLimit)
	api.Get("/feed/preferences/:userId", h.Feed.GetPreferences, feedLimit)

	// Watch session routes
	api.Post("/sessions", h.Session.Start, sessionStartLimit)
	api.Patch("/sessions/:sessionId", h.Session.Update, sessionUpdateLimit)
	api.Post("/sessions/:sessionId/end", h.Session.End, sessionUpdateLimit)

	// Trust routes
	api.Get("/users/:userId/trust", h.Trust.GetByUserID, trustLimit)

	// Video score routes
	api.Get("/videos/:videoId/scores", h.Video.GetScores)
}
