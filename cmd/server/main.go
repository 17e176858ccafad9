package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Edonabdullahu1/city-sub003/internal/cache"
	"github.com/Edonabdullahu1/city-sub003/internal/config"
	"github.com/Edonabdullahu1/city-sub003/internal/database"
	"github.com/Edonabdullahu1/city-sub003/internal/handler"
	"github.com/Edonabdullahu1/city-sub003/internal/logger"
	"github.com/Edonabdullahu1/city-sub003/internal/middleware"
	"github.com/Edonabdullahu1/city-sub003/internal/queue"
	"github.com/Edonabdullahu1/city-sub003/internal/ratelimit"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
	"github.com/Edonabdullahu1/city-sub003/internal/router"
	"github.com/Edonabdullahu1/city-sub003/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is down
	if rdb != nil {
		defer rdb.Close()
	}
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	events := queue.NewPublisher(cfg.RabbitURL, log)
	if cfg.RabbitURL != "" {
		go queue.NewConsumer(cfg.RabbitURL, cfg.EventLogPath, log).Run(ctx)
	}

	// Repositories
	packages := repository.NewPackageRepo(db)
	hotels := repository.NewHotelRepo(db)
	flights := repository.NewFlightRepo(db)
	prices := repository.NewPackagePriceRepo(db)
	bookings := repository.NewBookingRepo(db)

	// Services
	priceSvc := service.NewPriceService(packages, flights, hotels, prices,
		cache.New(rdb, cacheCfg.MatrixTTL), events, log, cfg.Pricing)
	bookingSvc := service.NewBookingService(db, bookings, flights, hotels, priceSvc, events, log, cfg.Booking)
	go bookingSvc.RunSweeper(ctx, cfg.Booking.SweepInterval)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestLogger(log))

	limit := middleware.NewRateLimit(rlCfg, ratelimit.New(rlCfg, rdb), log)
	respCache := middleware.NewResponseCache(cacheCfg, rdb, log)

	bookingH := handler.NewBookingHandler(bookingSvc, log)
	router.RegisterRoutes(e, handler.NewHealthHandler(db))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db), log), cfg.JWTSecret, limit)
	router.RegisterPackages(e, handler.NewPackageHandler(packages, priceSvc, log), limit, respCache)
	router.RegisterBookings(e, bookingH, limit)
	router.RegisterAdmin(e, router.AdminHandlers{
		Prices:    handler.NewAdminPriceHandler(priceSvc, log),
		Inventory: handler.NewInventoryHandler(hotels, flights, packages, priceSvc, log),
		Bookings:  bookingH,
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.WithField("addr", addr).WithField("env", cfg.Env).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
