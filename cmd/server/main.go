package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/barber-loyalty/internal/config"     // Internal config loader
	"github.com/iliyamo/barber-loyalty/internal/database"   // MySQL pool setup
	"github.com/iliyamo/barber-loyalty/internal/handler"    // HTTP handlers
	"github.com/iliyamo/barber-loyalty/internal/middleware" // rate limit and cache middleware
	"github.com/iliyamo/barber-loyalty/internal/queue"      // broker consumer
	"github.com/iliyamo/barber-loyalty/internal/repository" // DB repositories
	"github.com/iliyamo/barber-loyalty/internal/router"     // Internal router setup
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the public-catalog response cache and the token bucket
	// rate limiter.  Both middlewares fail open when Redis is down.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	haircuts := repository.NewHaircutRepo(db)
	points := repository.NewPointsRepo(db)
	coupons := repository.NewCouponRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewCatalogHandler(haircuts)
	adminCatalogH := handler.NewAdminCatalogHandler(haircuts)
	customerH := handler.NewCustomerLoyaltyHandler(cfg, users, haircuts, points, coupons)
	adminH := handler.NewAdminLoyaltyHandler(points, coupons)

	// Consume review and redemption events into the activity log.  The
	// consumer reconnects on its own; a broker outage never blocks startup.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e) // health check and /metrics
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, adminCatalogH, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
