package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/mediashelf/internal/config"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/utils"
)

// CatalogItem 外部资料库搜索结果（尚未入库的内容）
type CatalogItem struct {
	ExternalID    string `json:"external_id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title,omitempty"`
	Description   string `json:"description,omitempty"`
	Year          int    `json:"year,omitempty"`
	PosterURL     string `json:"poster_url,omitempty"`
	Author        string `json:"author,omitempty"`
}

type TMDBService struct {
	config *config.Config
	client *utils.HTTPClient
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		config: cfg,
		client: utils.NewHTTPClient(),
	}
}

type tmdbSearchResponse struct {
	Results []struct {
		ID            int    `json:"id"`
		Title         string `json:"title"`
		OriginalTitle string `json:"original_title"`
		Overview      string `json:"overview"`
		ReleaseDate   string `json:"release_date"`
		PosterPath    string `json:"poster_path"`
	} `json:"results"`
}

// SearchMovies 搜索电影
func (s *TMDBService) SearchMovies(query string) ([]CatalogItem, error) {
	reqURL := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s&language=%s",
		s.config.TMDBBaseURL, s.config.TMDBAPIKey, url.QueryEscape(query), s.config.TMDBLanguage)

	var result tmdbSearchResponse
	if err := s.client.GetJSON(reqURL, &result); err != nil {
		return nil, fmt.Errorf("TMDB 搜索失败: %w", err)
	}

	items := make([]CatalogItem, 0, len(result.Results))
	for _, r := range result.Results {
		items = append(items, CatalogItem{
			ExternalID:    strconv.Itoa(r.ID),
			Type:          model.ContentTypeMovie,
			Title:         r.Title,
			OriginalTitle: r.OriginalTitle,
			Description:   r.Overview,
			Year:          yearFromDate(r.ReleaseDate),
			PosterURL:     s.posterURL(r.PosterPath),
		})
	}
	return items, nil
}

type tmdbDetailsResponse struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Overview      string `json:"overview"`
	ReleaseDate   string `json:"release_date"`
	PosterPath    string `json:"poster_path"`
	Runtime       int    `json:"runtime"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

// MovieDetails 取电影详情（含导演），返回未入库的 Content
func (s *TMDBService) MovieDetails(externalID string) (*model.Content, error) {
	reqURL := fmt.Sprintf("%s/movie/%s?api_key=%s&language=%s&append_to_response=credits",
		s.config.TMDBBaseURL, url.PathEscape(externalID), s.config.TMDBAPIKey, s.config.TMDBLanguage)

	var result tmdbDetailsResponse
	if err := s.client.GetJSON(reqURL, &result); err != nil {
		return nil, fmt.Errorf("TMDB 详情获取失败: %w", err)
	}
	if result.ID == 0 {
		return nil, fmt.Errorf("TMDB 未找到电影: %s", externalID)
	}

	var director string
	for _, crew := range result.Credits.Crew {
		if crew.Job == "Director" {
			director = crew.Name
			break
		}
	}

	var genres []string
	for _, g := range result.Genres {
		genres = append(genres, g.Name)
	}

	return &model.Content{
		ExternalID:    strconv.Itoa(result.ID),
		Type:          model.ContentTypeMovie,
		Title:         result.Title,
		OriginalTitle: result.OriginalTitle,
		Description:   result.Overview,
		Year:          yearFromDate(result.ReleaseDate),
		PosterURL:     s.posterURL(result.PosterPath),
		Director:      director,
		Genres:        strings.Join(genres, ", "),
		Runtime:       result.Runtime,
	}, nil
}

// PopularMovies 热门电影榜
func (s *TMDBService) PopularMovies() ([]CatalogItem, error) {
	reqURL := fmt.Sprintf("%s/movie/popular?api_key=%s&language=%s",
		s.config.TMDBBaseURL, s.config.TMDBAPIKey, s.config.TMDBLanguage)

	var result tmdbSearchResponse
	if err := s.client.GetJSON(reqURL, &result); err != nil {
		return nil, fmt.Errorf("TMDB 热门榜获取失败: %w", err)
	}

	items := make([]CatalogItem, 0, len(result.Results))
	for _, r := range result.Results {
		items = append(items, CatalogItem{
			ExternalID:    strconv.Itoa(r.ID),
			Type:          model.ContentTypeMovie,
			Title:         r.Title,
			OriginalTitle: r.OriginalTitle,
			Description:   r.Overview,
			Year:          yearFromDate(r.ReleaseDate),
			PosterURL:     s.posterURL(r.PosterPath),
		})
	}
	return items, nil
}

func (s *TMDBService) posterURL(path string) string {
	if path == "" {
		return ""
	}
	return s.config.TMDBImageBaseURL + path
}

// yearFromDate 从 "2024-05-17" 这类日期取年份
func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, _ := strconv.Atoi(date[:4])
	return year
}
