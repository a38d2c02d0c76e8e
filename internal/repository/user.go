package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/user/mediashelf/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(username, email, password string) (*model.User, error) {
	// 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// FindByEmail 根据邮箱查找用户
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByUsername 根据用户名查找用户
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CheckPassword 验证密码
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// UpdateProfile 更新资料字段（username/email/avatar_url/bio）
func (r *UserRepository) UpdateProfile(userID int, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

// UpdatePassword 更新密码
func (r *UserRepository) UpdatePassword(userID int, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password_hash", string(hash)).Error
}

// SetResetToken 写入密码重置验证码及其有效期
func (r *UserRepository) SetResetToken(userID int, token string, expires time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_token":         token,
		"reset_token_expires": expires,
	}).Error
}

// ClearResetToken 清除密码重置验证码
func (r *UserRepository) ClearResetToken(userID int) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_token":         nil,
		"reset_token_expires": nil,
	}).Error
}

// SuggestedUser 推荐关注候选（带粉丝数）
type SuggestedUser struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	AvatarURL      string `json:"avatar_url"`
	FollowersCount int    `json:"followers_count"`
}

// Suggestions 推荐关注：排除自己和已关注的人，按粉丝数降序
func (r *UserRepository) Suggestions(viewerID, limit int) ([]SuggestedUser, error) {
	var users []SuggestedUser
	err := r.db.Table("users u").
		Select(`u.id, u.username, u.email, u.avatar_url,
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers_count`).
		Where("u.id <> ?", viewerID).
		Where("u.id NOT IN (SELECT following_id FROM follows WHERE follower_id = ?)", viewerID).
		Order("followers_count DESC").
		Limit(limit).
		Scan(&users).Error
	return users, err
}

// SearchResult 用户搜索结果（带关注状态）
type SearchResult struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	IsFollowing bool   `json:"is_following"`
}

// Search 用户名模糊搜索，排除查询者本人，并标注是否已关注
func (r *UserRepository) Search(query string, viewerID, limit int) ([]SearchResult, error) {
	var users []SearchResult
	err := r.db.Table("users u").
		Select(`u.id, u.username, u.avatar_url, u.bio,
			(SELECT COUNT(*) FROM follows WHERE follower_id = ? AND following_id = u.id) > 0 AS is_following`, viewerID).
		Where("LOWER(u.username) LIKE ?", "%"+strings.ToLower(query)+"%").
		Where("u.id <> ?", viewerID).
		Order("u.username ASC").
		Limit(limit).
		Scan(&users).Error
	return users, err
}

// Profile 个人页资料（带关注统计）
type Profile struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	AvatarURL      string    `json:"avatar_url"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
}

// FindProfile 查询个人页资料
func (r *UserRepository) FindProfile(userID int) (*Profile, error) {
	var profile Profile
	err := r.db.Table("users u").
		Select(`u.id, u.username, u.email, u.avatar_url, u.bio, u.created_at,
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = u.id) AS following_count`).
		Where("u.id = ?", userID).
		Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == 0 {
		return nil, nil
	}
	return &profile, nil
}
