package model

import (
	"time"
)

// 内容类型
const (
	ContentTypeMovie = "movie"
	ContentTypeBook  = "book"
)

// Content 内容模型（电影/图书的本地副本）
// 注意：(external_id, type) 没有数据库唯一约束，去重靠查询前置检查，
// 并发首次访问可能产生重复行（已知缺口，见 DESIGN.md）。
type Content struct {
	ID            int       `json:"id" db:"id"`
	ExternalID    string    `json:"external_id" db:"external_id" gorm:"index"`
	Type          string    `json:"type" db:"type" gorm:"index"`
	Title         string    `json:"title" db:"title"`
	OriginalTitle string    `json:"original_title,omitempty" db:"original_title"`
	Description   string    `json:"description" db:"description"`
	Year          int       `json:"year" db:"year"`
	PosterURL     string    `json:"poster_url" db:"poster_url"`
	Director      string    `json:"director,omitempty" db:"director"`
	Author        string    `json:"author,omitempty" db:"author"`
	Genres        string    `json:"genres" db:"genres"`
	PageCount     int       `json:"page_count,omitempty" db:"page_count"`
	Runtime       int       `json:"runtime,omitempty" db:"runtime"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ContentSummary 动态、书架等场景下的内容摘要
type ContentSummary struct {
	ID         int    `json:"id"`
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Year       int    `json:"year"`
	PosterURL  string `json:"poster_url"`
}

// Summary 裁剪出摘要字段
func (c *Content) Summary() ContentSummary {
	return ContentSummary{
		ID:         c.ID,
		ExternalID: c.ExternalID,
		Title:      c.Title,
		Type:       c.Type,
		Year:       c.Year,
		PosterURL:  c.PosterURL,
	}
}
