package repository

import (
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Exists 检查关注边是否存在
func (r *FollowRepository) Exists(followerID, followingID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Create 建立关注边（调用方负责查重和自关注校验）
func (r *FollowRepository) Create(followerID, followingID int) (*model.Follow, error) {
	follow := &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}
	if err := r.db.Create(follow).Error; err != nil {
		return nil, err
	}
	return follow, nil
}

// Delete 删除关注边，不存在时静默成功
func (r *FollowRepository) Delete(followerID, followingID int) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

// Followers 关注某用户的人
func (r *FollowRepository) Followers(userID int) ([]model.PublicUser, error) {
	var users []model.PublicUser
	err := r.db.Table("users u").
		Select("u.id, u.username, u.email, u.avatar_url, u.bio").
		Joins("INNER JOIN follows f ON u.id = f.follower_id").
		Where("f.following_id = ?", userID).
		Order("f.created_at DESC").
		Scan(&users).Error
	return users, err
}

// Following 某用户关注的人
func (r *FollowRepository) Following(userID int) ([]model.PublicUser, error) {
	var users []model.PublicUser
	err := r.db.Table("users u").
		Select("u.id, u.username, u.email, u.avatar_url, u.bio").
		Joins("INNER JOIN follows f ON u.id = f.following_id").
		Where("f.follower_id = ?", userID).
		Order("f.created_at DESC").
		Scan(&users).Error
	return users, err
}

// CountFollowing 用户关注的人数
func (r *FollowRepository) CountFollowing(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowers 用户的粉丝数
func (r *FollowRepository) CountFollowers(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}
