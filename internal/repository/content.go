package repository

import (
	"errors"
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// FindByExternal 按 (external_id, type) 查找本地内容
func (r *ContentRepository) FindByExternal(externalID, contentType string) (*model.Content, error) {
	var content model.Content
	err := r.db.Where("external_id = ? AND type = ?", externalID, contentType).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &content, nil
}

// FindByID 按 ID 查找本地内容
func (r *ContentRepository) FindByID(id int) (*model.Content, error) {
	var content model.Content
	err := r.db.First(&content, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &content, nil
}

// Create 写入新内容行
func (r *ContentRepository) Create(content *model.Content) error {
	if content.CreatedAt.IsZero() {
		content.CreatedAt = time.Now()
	}
	return r.db.Create(content).Error
}

// RatedContent 带均分的内容（站内 top-rated 榜单）
type RatedContent struct {
	model.Content
	AverageScore float64 `json:"average_score"`
	RatingCount  int     `json:"rating_count"`
}

// ListTopRated 按站内评分均分降序取内容，type 为空时不过滤
func (r *ContentRepository) ListTopRated(contentType string, limit int) ([]RatedContent, error) {
	query := r.db.Table("contents c").
		Select(`c.*,
			COALESCE(AVG(rt.score), 0) AS average_score,
			COUNT(rt.id) AS rating_count`).
		Joins("LEFT JOIN ratings rt ON rt.content_id = c.id").
		Group("c.id").
		Order("average_score DESC").
		Limit(limit)
	if contentType != "" {
		query = query.Where("c.type = ?", contentType)
	}

	var contents []RatedContent
	err := query.Scan(&contents).Error
	return contents, err
}
