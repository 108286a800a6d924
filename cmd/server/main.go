package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bedspace/backend/internal/billing"
	"github.com/bedspace/backend/internal/config"
	"github.com/bedspace/backend/internal/database"
	"github.com/bedspace/backend/internal/handler"
	"github.com/bedspace/backend/internal/middleware"
	"github.com/bedspace/backend/internal/repository"
	"github.com/bedspace/backend/internal/router"
	"github.com/bedspace/backend/internal/storage"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	photos, err := storage.NewPhotoStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
	if err != nil {
		log.Fatalf("object store client failed: %v", err)
	}
	// Bucket existence is checked once at startup, never per request. An
	// unreachable object store degrades photo uploads, not the whole API.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := photos.EnsureBucket(ctx); err != nil {
		log.Printf("bucket check failed (photo uploads may not work): %v", err)
	}
	cancel()

	stripeClient := billing.NewStripeClient(cfg.StripeSecret)

	// Rate limiting degrades to a no-op when redis is unavailable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewFixedWindow(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	listings := repository.NewListingRepo(db)
	payments := repository.NewPaymentRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	listingHandler := handler.NewListingHandler(listings, photos, stripeClient)
	paymentHandler := handler.NewPaymentHandler(users, listings, payments)

	e := echo.New()
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowCredentials: true,
	}))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, limiter)
	router.RegisterListings(e, listingHandler, cfg.JWTSecret)
	router.RegisterPayments(e, paymentHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
