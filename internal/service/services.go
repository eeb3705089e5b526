package service

import (
	"github.com/studynexus/studynexus/internal/config"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/store"
)

type Services struct {
	AuthService AuthService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.App, logger),
	}
}
