package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nurpe/moto-rental/internal/auth"
	"github.com/nurpe/moto-rental/internal/cache"
	"github.com/nurpe/moto-rental/internal/config"
	"github.com/nurpe/moto-rental/internal/db"
	"github.com/nurpe/moto-rental/internal/excel"
	httphandler "github.com/nurpe/moto-rental/internal/http"
	"github.com/nurpe/moto-rental/internal/http/middleware"
	"github.com/nurpe/moto-rental/internal/logger"
	"github.com/nurpe/moto-rental/internal/pdf"
	"github.com/nurpe/moto-rental/internal/queue"
	"github.com/nurpe/moto-rental/internal/repository"
	"github.com/nurpe/moto-rental/internal/service"
	"github.com/nurpe/moto-rental/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	rdb, err := cache.NewClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer rdb.Close()

	images, err := storage.NewImageStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init object storage")
	}

	queueClient := queue.NewClient(cfg)
	defer queueClient.Close()

	motoRepo := repository.NewMotoRepository(database)
	personRepo := repository.NewDeliveryPersonRepository(database)
	rentalRepo := repository.NewRentalRepository(database)
	guard := cache.NewGuard(rdb, cfg.Guard.TTL)

	motoService := service.NewMotoService(
		motoRepo,
		rentalRepo,
		queue.NewProducer(queueClient, cfg.Queue.Name, log),
		guard,
		excel.NewGenerator(),
		log,
	)
	personService := service.NewDeliveryPersonService(personRepo, images, guard, log)
	rentalService := service.NewRentalService(
		rentalRepo,
		personRepo,
		motoRepo,
		guard,
		pdf.NewGenerator(),
		cfg.Rentals.CheckAvailability,
		log,
	)

	queueServer := queue.NewServer(cfg, log)
	mux := asynq.NewServeMux()
	queue.NewConsumer(motoRepo, cfg.Motos.AcceptedYear, log).Register(mux)
	if err := queueServer.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("failed to start queue consumer")
	}
	defer queueServer.Shutdown()

	handler := httphandler.NewHandler(
		motoService,
		personService,
		rentalService,
		auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		log,
	)
	health := httphandler.NewHealth(
		httphandler.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			sqlDB, err := database.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		httphandler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}},
	)
	authMiddleware := middleware.Auth(auth.NewParser(cfg.Auth.Secret))
	router := httphandler.NewRouter(handler, health, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting rental service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
