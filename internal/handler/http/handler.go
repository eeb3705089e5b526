package http

import (
	"github.com/studynexus/studynexus/internal/identity"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/service"
)

type Handler struct {
	services *service.Services
	verifier identity.AssertionVerifier

	logger *logger.Logger
}

func NewHandler(services *service.Services, verifier identity.AssertionVerifier, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		verifier: verifier,
		logger:   logger,
	}
}
