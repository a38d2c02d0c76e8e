package repository

import (
	"errors"
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create 写入评论。注意：同一 (user, content) 没有唯一约束，
// 重复调用会产生多条评论（沿用现有产品行为）。
func (r *ReviewRepository) Create(review *model.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	review.UpdatedAt = time.Now()
	return r.db.Create(review).Error
}

// FindByID 按 ID 查找评论
func (r *ReviewRepository) FindByID(id int) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// FindByIDWithUser 按 ID 查找评论并带上作者
func (r *ReviewRepository) FindByIDWithUser(id int) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("User").First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// UpdateText 更新评论正文
func (r *ReviewRepository) UpdateText(reviewID int, text string) error {
	return r.db.Model(&model.Review{}).Where("id = ?", reviewID).Updates(map[string]interface{}{
		"review_text": text,
		"updated_at":  time.Now(),
	}).Error
}

// Delete 删除评论
func (r *ReviewRepository) Delete(reviewID int) error {
	return r.db.Delete(&model.Review{}, reviewID).Error
}

// ListByContent 某内容的全部评论（带作者，按时间倒序）
func (r *ReviewRepository) ListByContent(contentID int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("User").
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByUser 某用户的全部评论（带内容，按时间倒序）
func (r *ReviewRepository) ListByUser(userID int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("Content").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
