package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"runonstreet-backend/config"
	"runonstreet-backend/handlers"
	"runonstreet-backend/services"
	"runonstreet-backend/store"
	"runonstreet-backend/utils"
	"runonstreet-backend/workers"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogPretty)

	db, err := store.OpenPostgres(cfg.DatabaseURL, store.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	st := store.New(db)
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database pool")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	app := handlers.NewApp(handlers.AppDeps{
		AllowedOrigins: cfg.AllowedOrigins,
		Pinger:         st,
		Offers: services.NewOfferService(st, services.RankPolicy{
			EnforceRadius: cfg.EnforceRadius,
		}, cfg.DefaultRadiusMeters),
		Challenges: services.NewChallengeService(st),
		Users:      services.NewUserService(st),
		Stats:      services.NewStatsService(st),
	})

	monitor := workers.NewPoolMonitor(st, cfg.PoolStatsInterval)
	if err := monitor.Start(); err != nil {
		log.Error().Err(err).Msg("pool monitor not started")
	}
	defer monitor.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Bool("enforce_radius", cfg.EnforceRadius).
		Str("origins", cfg.AllowedOrigins).
		Msg("✅ Server running")

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
