package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/goroti11/trutube-sub003/internal/config"
	"github.com/goroti11/trutube-sub003/internal/db"
	"github.com/goroti11/trutube-sub003/internal/handler"
	"github.com/goroti11/trutube-sub003/internal/middleware"
	"github.com/goroti11/trutube-sub003/internal/repository"
	"github.com/goroti11/trutube-sub003/internal/router"
	"github.com/goroti11/trutube-sub003/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "trutube-ranking")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)

	// Repositories
	videoRepo := repository.NewVideoRepo(pool)
	userRepo := repository.NewUserRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	trustRepo := repository.NewTrustRepo(pool)

	// Services
	rankingSvc := service.NewRankingService()
	feedSvc := service.NewFeedService(rankingSvc)
	feedQuerySvc := service.NewFeedQueryService(videoRepo, userRepo, feedSvc, cache)
	sessionSvc := service.NewSessionService()
	playbackSvc := service.NewPlaybackService(sessionRepo, sessionSvc)
	abuseSvc := service.NewAbuseService()
	aggregateSvc := service.NewAggregateService()
	trustSvc := service.NewTrustService()

	// Background workers
	trustWorker := service.NewTrustWorker(trustSvc, trustRepo)
	go trustWorker.Start(ctx)

	validationWorker := service.NewValidationWorker(
		sessionRepo, videoRepo, sessionSvc, abuseSvc, aggregateSvc,
		trustWorker, cfg.ValidationInterval,
	)
	go validationWorker.Start(ctx)

	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "TruTube Ranking API",
		ServerHeader: "TruTube",
	})

	handlers := &router.Handlers{
		Feed:    handler.NewFeedHandler(feedQuerySvc),
		Session: handler.NewSessionHandler(playbackSvc, cfg.IPHashSalt),
		Trust:   handler.NewTrustHandler(trustRepo),
		Video:   handler.NewVideoHandler(videoRepo),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, handlers, cfg.CORSOrigins)

	// Graceful shutdown: stop accepting traffic, then let the workers drain.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutdown signal received")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("TruTube ranking backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
