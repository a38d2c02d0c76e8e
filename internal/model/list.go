package model

import (
	"time"
)

// List 用户自建片单/书单
type List struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id" gorm:"index"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ListItem 片单成员，按加入时间排序
type ListItem struct {
	ID        int       `json:"id" db:"id"`
	ListID    int       `json:"list_id" db:"list_id" gorm:"uniqueIndex:idx_list_item_pair"`
	ContentID int       `json:"content_id" db:"content_id" gorm:"uniqueIndex:idx_list_item_pair"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`
	Content   *Content  `json:"content,omitempty" gorm:"foreignKey:ContentID"`
}
