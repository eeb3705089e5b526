package main

import (
	"context"
	"fmt"

	"github.com/studynexus/studynexus/internal/config"
	myHTTP "github.com/studynexus/studynexus/internal/handler/http"
	"github.com/studynexus/studynexus/internal/identity"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/server"
	"github.com/studynexus/studynexus/internal/service"
	"github.com/studynexus/studynexus/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("studynexus-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configuration")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, cfg, log)

	verifier := newVerifier(ctx, cfg, log)
	handler := myHTTP.NewHandler(services, verifier, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newVerifier picks the assertion verifier: real ID-token verification when a
// Google client id is configured, otherwise a trusting fallback for local
// development.
func newVerifier(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) identity.AssertionVerifier {
	if cfg.App.GoogleClientID == "" {
		return identity.NewTrustingVerifier(log)
	}

	verifier, err := identity.NewGoogleVerifier(ctx, cfg.App.GoogleClientID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating Google verifier")
	}
	return verifier
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
