package repository

import (
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Exists 检查用户是否赞过某动态
func (r *LikeRepository) Exists(userID, activityID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.ActivityLike{}).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Count(&count).Error
	return count > 0, err
}

// Create 点赞
func (r *LikeRepository) Create(userID, activityID int) error {
	like := &model.ActivityLike{
		UserID:     userID,
		ActivityID: activityID,
		CreatedAt:  time.Now(),
	}
	return r.db.Create(like).Error
}

// Delete 取消点赞
func (r *LikeRepository) Delete(userID, activityID int) error {
	return r.db.Where("user_id = ? AND activity_id = ?", userID, activityID).
		Delete(&model.ActivityLike{}).Error
}

// CountForActivity 某动态的点赞数
func (r *LikeRepository) CountForActivity(activityID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.ActivityLike{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error
	return count, err
}
