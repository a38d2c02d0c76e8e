package service

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/user/mediashelf/internal/config"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/utils"
)

type GoogleBooksService struct {
	config *config.Config
	client *utils.HTTPClient
}

func NewGoogleBooksService(cfg *config.Config) *GoogleBooksService {
	return &GoogleBooksService{
		config: cfg,
		client: utils.NewHTTPClient(),
	}
}

type booksVolume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PublishedDate string   `json:"publishedDate"`
		PageCount     int      `json:"pageCount"`
		Categories    []string `json:"categories"`
		AverageRating float64  `json:"averageRating"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type booksSearchResponse struct {
	Items []booksVolume `json:"items"`
}

// SearchBooks 搜索图书
func (s *GoogleBooksService) SearchBooks(query string) ([]CatalogItem, error) {
	reqURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=20%s",
		s.config.GoogleBooksURL, url.QueryEscape(query), s.keyParam())

	var result booksSearchResponse
	if err := s.client.GetJSON(reqURL, &result); err != nil {
		return nil, fmt.Errorf("Google Books 搜索失败: %w", err)
	}

	items := make([]CatalogItem, 0, len(result.Items))
	for _, v := range result.Items {
		items = append(items, s.toCatalogItem(&v))
	}
	return items, nil
}

// BookDetails 取图书详情，返回未入库的 Content
func (s *GoogleBooksService) BookDetails(externalID string) (*model.Content, error) {
	reqURL := fmt.Sprintf("%s/volumes/%s%s",
		s.config.GoogleBooksURL, url.PathEscape(externalID), s.keyParamFirst())

	var v booksVolume
	if err := s.client.GetJSON(reqURL, &v); err != nil {
		return nil, fmt.Errorf("Google Books 详情获取失败: %w", err)
	}
	if v.ID == "" {
		return nil, fmt.Errorf("Google Books 未找到图书: %s", externalID)
	}

	return &model.Content{
		ExternalID:  v.ID,
		Type:        model.ContentTypeBook,
		Title:       v.VolumeInfo.Title,
		Description: v.VolumeInfo.Description,
		Year:        yearFromDate(v.VolumeInfo.PublishedDate),
		PosterURL:   v.VolumeInfo.ImageLinks.Thumbnail,
		Author:      strings.Join(v.VolumeInfo.Authors, ", "),
		Genres:      strings.Join(v.VolumeInfo.Categories, ", "),
		PageCount:   v.VolumeInfo.PageCount,
	}, nil
}

// TopRatedBooks 高分图书：取小说类样本，按评分过滤排序后取前 20
func (s *GoogleBooksService) TopRatedBooks() ([]CatalogItem, error) {
	reqURL := fmt.Sprintf("%s/volumes?q=subject:fiction&orderBy=relevance&maxResults=40%s",
		s.config.GoogleBooksURL, s.keyParam())

	var result booksSearchResponse
	if err := s.client.GetJSON(reqURL, &result); err != nil {
		return nil, fmt.Errorf("Google Books 榜单获取失败: %w", err)
	}

	rated := make([]booksVolume, 0, len(result.Items))
	for _, v := range result.Items {
		if v.VolumeInfo.AverageRating > 0 {
			rated = append(rated, v)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].VolumeInfo.AverageRating > rated[j].VolumeInfo.AverageRating
	})
	if len(rated) > 20 {
		rated = rated[:20]
	}

	items := make([]CatalogItem, 0, len(rated))
	for _, v := range rated {
		items = append(items, s.toCatalogItem(&v))
	}
	return items, nil
}

func (s *GoogleBooksService) toCatalogItem(v *booksVolume) CatalogItem {
	return CatalogItem{
		ExternalID:  v.ID,
		Type:        model.ContentTypeBook,
		Title:       v.VolumeInfo.Title,
		Description: v.VolumeInfo.Description,
		Year:        yearFromDate(v.VolumeInfo.PublishedDate),
		PosterURL:   v.VolumeInfo.ImageLinks.Thumbnail,
		Author:      strings.Join(v.VolumeInfo.Authors, ", "),
	}
}

func (s *GoogleBooksService) keyParam() string {
	if s.config.GoogleBooksAPIKey == "" {
		return ""
	}
	return "&key=" + s.config.GoogleBooksAPIKey
}

func (s *GoogleBooksService) keyParamFirst() string {
	if s.config.GoogleBooksAPIKey == "" {
		return ""
	}
	return "?key=" + s.config.GoogleBooksAPIKey
}
