package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"hotel-frontdesk/apiclient"
	"hotel-frontdesk/config"
	"hotel-frontdesk/controllers"
	"hotel-frontdesk/events"
	"hotel-frontdesk/flowstore"
	"hotel-frontdesk/idgen"
	"hotel-frontdesk/routes"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
	"hotel-frontdesk/walkin"
)

func main() {
	cfg, dotenv, err := config.Load()
	logger, closer := utils.InitLogger(utils.LogOptions{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	defer closer.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if !dotenv {
		logger.Info().Msg(".env not found; continuing with environment variables")
	}

	var (
		roomController   *controllers.RoomController
		roomTypes        *controllers.RoomTypeController
		walkInController *controllers.WalkInController
		frontDesk        *controllers.FrontDeskController
	)

	if cfg.ServesBackend() {
		db, err := config.ConnectDatabase(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("database connect failed")
		}
		logger.Info().Msg("database connection established and migrations applied")

		publisher := events.New(cfg.AMQPURL, logger)
		roomController = controllers.NewRoomController(services.NewRoomService(db))
		roomTypes = controllers.NewRoomTypeController(services.NewRoomTypeService(db))
		walkInController = controllers.NewWalkInController(services.NewWalkInService(db, publisher, logger))
	}

	if cfg.ServesFrontDesk() {
		backend, err := openFlowStore(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("store", cfg.FlowStore).Msg("flow store unavailable")
		}
		defer backend.Close()

		api := apiclient.New(apiclient.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout}, logger)
		if !cfg.ServesBackend() {
			probe, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := api.Health(probe); err != nil {
				logger.Warn().Err(err).Str("api", cfg.APIBaseURL).Msg("hotel backend not reachable yet")
			}
			cancel()
		}
		counter := idgen.New()
		registry := walkin.NewRegistry(func(terminal string) *walkin.Controller {
			return walkin.NewController(walkin.Options{
				Backend: api,
				Store:   flowstore.For(backend, terminal),
				Logger:  logger.With().Str("terminal", terminal).Logger(),
				Counter: counter,
			})
		}, walkin.WithIdleTimeout(cfg.FlowIdle))
		frontDesk = controllers.NewFrontDeskController(registry)
		logger.Info().Str("api", cfg.APIBaseURL).Str("store", cfg.FlowStore).Msg("front desk ready")
	}

	router := routes.SetupRouter(roomController, roomTypes, walkInController, frontDesk, cfg.CorsOrigins, logger)

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("mode", cfg.Mode).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server stopped gracefully")
}

func openFlowStore(cfg config.Config, logger zerolog.Logger) (flowstore.Backend, error) {
	switch cfg.FlowStore {
	case config.StoreSQLite:
		return flowstore.OpenSQLite(cfg.FlowSQLitePath)
	case config.StoreRedis:
		client := config.NewRedisClient(cfg)
		if client == nil {
			return nil, errors.New("redis is not reachable at " + cfg.RedisAddress())
		}
		return flowstore.NewRedis(client, cfg.FlowStateTTL), nil
	default:
		logger.Warn().Msg("flow state is kept in memory and is lost on restart")
		return flowstore.NewMemory(), nil
	}
}
