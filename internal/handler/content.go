package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/service"
	"github.com/user/mediashelf/internal/utils"
)

// SearchContent 搜索外部资料库（电影或图书）
func (h *Handler) SearchContent(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	contentType := c.DefaultQuery("type", model.ContentTypeMovie)

	if query == "" {
		utils.BadRequest(c, "请输入搜索关键词")
		return
	}
	if contentType != model.ContentTypeMovie && contentType != model.ContentTypeBook {
		utils.BadRequest(c, "type 只能是 movie 或 book")
		return
	}

	// 搜索结果缓存，避免重复打外部接口
	cacheKey := contentType + ":" + strings.ToLower(query)
	if cached, ok := h.SearchCache.Get(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	var items []service.CatalogItem
	var err error
	if contentType == model.ContentTypeMovie {
		items, err = h.TMDB.SearchMovies(query)
	} else {
		items, err = h.Books.SearchBooks(query)
	}
	if err != nil {
		utils.InternalServerError(c, "搜索失败，请稍后重试")
		return
	}

	h.SearchCache.Set(cacheKey, items)
	utils.Success(c, items)
}

// PopularMovies 热门电影榜（短缓存）
func (h *Handler) PopularMovies(c *gin.Context) {
	const cacheKey = "popular:movies"
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	items, err := h.TMDB.PopularMovies()
	if err != nil {
		utils.InternalServerError(c, "榜单获取失败，请稍后重试")
		return
	}

	utils.CacheSet(cacheKey, items, 30*time.Minute)
	utils.Success(c, items)
}

// TopRatedBooks 高分图书榜（短缓存）
func (h *Handler) TopRatedBooks(c *gin.Context) {
	const cacheKey = "top_rated:books"
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	items, err := h.Books.TopRatedBooks()
	if err != nil {
		utils.InternalServerError(c, "榜单获取失败，请稍后重试")
		return
	}

	utils.CacheSet(cacheKey, items, 30*time.Minute)
	utils.Success(c, items)
}

// TopRatedContent 站内评分榜（按本站用户评分聚合）
func (h *Handler) TopRatedContent(c *gin.Context) {
	contentType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("top_rated:local:%s:%d", contentType, limit)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	contents, err := h.Repos.Content.ListTopRated(contentType, limit)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.CacheSet(cacheKey, contents, 5*time.Minute)
	utils.Success(c, contents)
}

// GetContent 按 (type, external_id) 取内容详情，本地没有就抓取入库
func (h *Handler) GetContent(c *gin.Context) {
	contentType := c.Param("type")
	externalID := c.Param("externalId")

	if contentType != model.ContentTypeMovie && contentType != model.ContentTypeBook {
		utils.BadRequest(c, "type 只能是 movie 或 book")
		return
	}

	content, err := h.Resolver.Resolve(contentType, externalID)
	if err != nil {
		utils.InternalServerError(c, "内容详情暂时不可用")
		return
	}
	utils.Success(c, content)
}
