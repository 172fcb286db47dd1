package handler

import (
	"github.com/user/cinevibe/internal/config"
	"github.com/user/cinevibe/internal/repository"
	"github.com/user/cinevibe/internal/service"
)

// Handler HTTP 处理器集合
type Handler struct {
	Repos      *repository.Repositories
	Config     *config.Config
	SmartPicks *service.SmartPicksService
}

// NewHandler 创建 Handler
func NewHandler(repos *repository.Repositories, cfg *config.Config, smartPicks *service.SmartPicksService) *Handler {
	return &Handler{
		Repos:      repos,
		Config:     cfg,
		SmartPicks: smartPicks,
	}
}
