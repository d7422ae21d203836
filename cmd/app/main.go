package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Hotel Reservation API
// @version 1.0
// @description Room booking conflict detection and room status projection for the hotel back office.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	app := di.InitializeService()

	if err := app.StatusSync.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start room status sync")
	}
	defer app.StatusSync.Stop()

	app.HTTP.Serve()
}
