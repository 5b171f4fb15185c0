// Package main is the entry point for the packaging-service application.
//
// @title           Packaging Service API
// @version         1.0.0
// @description     API for estimating the packages needed to ship products.
//
//	It packs product quantities into the cheapest suitable package types of a location's catalog.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/packaging-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Packaging
// @tag.description Packaging estimates
//
// @tag.name        Package Types
// @tag.description Per-location package catalog administration
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/packaging-service/docs" // swagger docs

	"github.com/guttosm/packaging-service/config"
	"github.com/guttosm/packaging-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env file")
	}
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
