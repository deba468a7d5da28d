package main

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/magicdancearts/server/internal/config"
	"github.com/magicdancearts/server/internal/database"
	"github.com/magicdancearts/server/internal/handler"
	"github.com/magicdancearts/server/internal/middleware"
	"github.com/magicdancearts/server/internal/queue"
	"github.com/magicdancearts/server/internal/repository"
	"github.com/magicdancearts/server/internal/router"
	"github.com/magicdancearts/server/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("index bootstrap failed", zap.Error(err))
	}

	stripe.Key = cfg.StripeKey

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	classes := repository.NewClassRepo(db)
	selections := repository.NewSelectionRepo(db)
	payments := repository.NewPaymentRepo(db)

	paySvc := &service.PaymentService{
		Payments:   payments,
		Selections: selections,
		Classes:    classes,
		RunTxn:     service.MongoTxnRunner(client),
		AMQPURL:    cfg.AMQPURL,
		Logger:     logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	lookup := middleware.RoleLookup(users.RoleByEmail)

	router.RegisterRoot(e, &handler.HealthHandler{Client: client})
	router.RegisterAuth(e, &handler.TokenHandler{Secret: cfg.TokenSecret})
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.TokenSecret, lookup, cache)
	router.RegisterClasses(e, handler.NewClassHandler(classes), cfg.TokenSecret, lookup, cache)
	router.RegisterSelections(e, handler.NewSelectionHandler(selections), cfg.TokenSecret)
	router.RegisterPayments(e, handler.NewPaymentHandler(payments, paySvc, paySvc), cfg.TokenSecret)

	if cfg.AMQPURL != "" {
		go queue.StartPaymentConsumer(cfg.AMQPURL, logger)
	}

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
