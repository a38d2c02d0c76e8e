package service

import (
	"fmt"
	"log"

	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/repository"
	"golang.org/x/sync/singleflight"
)

// ContentResolver 内容解析器：外部 ID 换本地记录，缺失时抓取并落库
type ContentResolver struct {
	contentRepo *repository.ContentRepository
	tmdb        *TMDBService
	books       *GoogleBooksService
	group       singleflight.Group
}

func NewContentResolver(repo *repository.ContentRepository, tmdb *TMDBService, books *GoogleBooksService) *ContentResolver {
	return &ContentResolver{
		contentRepo: repo,
		tmdb:        tmdb,
		books:       books,
	}
}

// Resolve 按 (type, external_id) 解析内容。
// 本地没有就去外部资料库抓详情并入库。
// 使用 singleflight 避免并发重复抓取；
// 先查后插没有唯一约束兜底，极端并发下可能产生重复行（沿用现有产品行为）。
func (s *ContentResolver) Resolve(contentType, externalID string) (*model.Content, error) {
	key := contentType + ":" + externalID
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.resolveInternal(contentType, externalID)
	})
	if err != nil {
		return nil, err
	}
	return val.(*model.Content), nil
}

func (s *ContentResolver) resolveInternal(contentType, externalID string) (*model.Content, error) {
	content, err := s.contentRepo.FindByExternal(externalID, contentType)
	if err != nil {
		return nil, err
	}
	if content != nil {
		return content, nil
	}

	var fetched *model.Content
	switch contentType {
	case model.ContentTypeMovie:
		fetched, err = s.tmdb.MovieDetails(externalID)
	case model.ContentTypeBook:
		fetched, err = s.books.BookDetails(externalID)
	default:
		return nil, fmt.Errorf("未知的内容类型: %s", contentType)
	}
	if err != nil {
		log.Printf("[Resolver] 抓取内容详情失败 (%s/%s): %v", contentType, externalID, err)
		return nil, err
	}

	if err := s.contentRepo.Create(fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}
