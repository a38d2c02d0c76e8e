package handler

import (
	"time"

	"github.com/user/mediashelf/internal/config"
	"github.com/user/mediashelf/internal/repository"
	"github.com/user/mediashelf/internal/service"
	"github.com/user/mediashelf/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos       *repository.Repositories
	Config      *config.Config
	TMDB        *service.TMDBService
	Books       *service.GoogleBooksService
	Resolver    *service.ContentResolver
	Mailer      *service.Mailer
	SearchCache *utils.SearchCache[[]service.CatalogItem]
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	registerValidations()

	// 外部资料库客户端
	tmdb := service.NewTMDBService(cfg)
	books := service.NewGoogleBooksService(cfg)

	// 内容解析器
	resolver := service.NewContentResolver(repos.Content, tmdb, books)

	return &Handler{
		Repos:       repos,
		Config:      cfg,
		TMDB:        tmdb,
		Books:       books,
		Resolver:    resolver,
		Mailer:      service.NewMailer(cfg),
		SearchCache: utils.NewSearchCache[[]service.CatalogItem](1000, time.Hour),
	}
}
