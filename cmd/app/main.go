package main

import (
	"daybooker/config"
	"daybooker/di"
	"daybooker/helper"
	"daybooker/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title DayBooker API
// @version 1.0
// @description Day-use hotel booking platform for clients, partners and admins.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg, "api")

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
