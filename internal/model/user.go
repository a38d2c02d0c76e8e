package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID                int        `json:"id" db:"id"`
	Username          string     `json:"username" db:"username" gorm:"unique"`
	Email             string     `json:"email" db:"email" gorm:"unique"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	AvatarURL         string     `json:"avatar_url" db:"avatar_url"`
	Bio               string     `json:"bio" db:"bio"`
	ResetToken        *string    `json:"-" db:"reset_token"`
	ResetTokenExpires *time.Time `json:"-" db:"reset_token_expires"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// PublicUser 对外展示的用户信息（嵌入动态、关注列表等）
type PublicUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio,omitempty"`
}

// Public 裁剪出公开字段
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
	}
}
