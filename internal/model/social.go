package model

import (
	"time"
)

// Follow 关注边（有向，唯一）
type Follow struct {
	ID          int       `json:"id" db:"id"`
	FollowerID  int       `json:"follower_id" db:"follower_id" gorm:"uniqueIndex:idx_follow_pair"`
	FollowingID int       `json:"following_id" db:"following_id" gorm:"uniqueIndex:idx_follow_pair"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// 动态类型
const (
	ActivityTypeRating     = "rating"
	ActivityTypeReview     = "review"
	ActivityTypeLibraryAdd = "library_add"
)

// Activity 动态日志，评分/评论/加入书架时追加，供 Feed 消费
type Activity struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id" gorm:"index"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	ContentID    int       `json:"content_id" db:"content_id"`
	RatingID     *int      `json:"rating_id,omitempty" db:"rating_id"`
	ReviewID     *int      `json:"review_id,omitempty" db:"review_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"index"`
}

// FeedActivity Feed 的一行，关联数据已经拍平成嵌套结构
type FeedActivity struct {
	ID           any            `json:"id"`
	Source       string         `json:"source,omitempty"`
	ActivityType string         `json:"activity_type"`
	CreatedAt    time.Time      `json:"created_at"`
	LikeCount    int            `json:"like_count"`
	LikedByUser  bool           `json:"user_liked"`
	User         PublicUser     `json:"user"`
	Content      ContentSummary `json:"content"`
	Rating       *FeedRating    `json:"rating"`
	Review       *FeedReview    `json:"review"`

	// 仅 source=like 的合成行
	LikedActivityType string `json:"liked_activity_type,omitempty"`
	LikedUsername     string `json:"liked_username,omitempty"`
}

// FeedRating Feed 行内嵌的评分
type FeedRating struct {
	Score int `json:"score"`
}

// FeedReview Feed 行内嵌的评论
type FeedReview struct {
	ReviewText string `json:"review_text"`
}
