package repository

import (
	"errors"
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// FindByUserContent 查找用户对某内容的评分
func (r *RatingRepository) FindByUserContent(userID, contentID int) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// Create 写入评分
func (r *RatingRepository) Create(rating *model.Rating) error {
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}
	rating.UpdatedAt = time.Now()
	return r.db.Create(rating).Error
}

// UpdateScore 就地更新分数（upsert 的更新分支）
func (r *RatingRepository) UpdateScore(ratingID, score int) error {
	return r.db.Model(&model.Rating{}).Where("id = ?", ratingID).Updates(map[string]interface{}{
		"score":      score,
		"updated_at": time.Now(),
	}).Error
}

// ListByContent 某内容的全部评分（带用户）
func (r *RatingRepository) ListByContent(contentID int) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.Preload("User").
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// Delete 删除用户对某内容的评分，返回是否真的删了
func (r *RatingRepository) Delete(userID, contentID int) (bool, error) {
	result := r.db.Where("user_id = ? AND content_id = ?", userID, contentID).Delete(&model.Rating{})
	return result.RowsAffected > 0, result.Error
}
