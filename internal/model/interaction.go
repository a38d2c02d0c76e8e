package model

import (
	"time"
)

// Rating 评分（1-10，一人一内容一条）
type Rating struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_rating_user_content"`
	ContentID int       `json:"content_id" db:"content_id" gorm:"uniqueIndex:idx_rating_user_content"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Content   *Content  `json:"content,omitempty" gorm:"foreignKey:ContentID"`
}

// Review 评论（自由文本，同一 (user, content) 可有多条）
type Review struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id" gorm:"index"`
	ContentID  int       `json:"content_id" db:"content_id" gorm:"index"`
	ReviewText string    `json:"review_text" db:"review_text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Content    *Content  `json:"content,omitempty" gorm:"foreignKey:ContentID"`
}

// 书架状态
const (
	LibraryStatusWatched = "watched"
	LibraryStatusToWatch = "to_watch"
	LibraryStatusRead    = "read"
	LibraryStatusToRead  = "to_read"
)

// Library 书架条目。唯一键是 (user, content, status) 三元组，
// 同一内容可以以不同状态同时存在多行。
type Library struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_library_user_content_status"`
	ContentID int       `json:"content_id" db:"content_id" gorm:"uniqueIndex:idx_library_user_content_status"`
	Status    string    `json:"status" db:"status" gorm:"uniqueIndex:idx_library_user_content_status"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`
	Content   *Content  `json:"content,omitempty" gorm:"foreignKey:ContentID"`
}

// ActivityLike 动态点赞（toggle 语义）
type ActivityLike struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_like_user_activity"`
	ActivityID int       `json:"activity_id" db:"activity_id" gorm:"uniqueIndex:idx_like_user_activity"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
