package repository

import (
	"fmt"
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create 追加一条动态（评分/评论/加入书架的副作用）
func (r *ActivityRepository) Create(userID int, activityType string, contentID int, ratingID, reviewID *int) (*model.Activity, error) {
	activity := &model.Activity{
		UserID:       userID,
		ActivityType: activityType,
		ContentID:    contentID,
		RatingID:     ratingID,
		ReviewID:     reviewID,
		CreatedAt:    time.Now(),
	}
	if err := r.db.Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

// FindByID 按 ID 查找动态
func (r *ActivityRepository) FindByID(id int) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.First(&activity, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// FeedRow Feed 查询的平铺扫描行
type FeedRow struct {
	ID           int
	ActivityType string
	CreatedAt    time.Time
	UserID       int
	Username     string
	Email        string
	AvatarURL    string
	ContentID    int
	Title        string
	Year         int
	Type         string
	PosterURL    string
	ExternalID   string
	RatingScore  *int
	ReviewText   *string
	LikeCount    int
	LikedByUser  int
}

// Format 把平铺行整理成嵌套的 Feed 结构
func (row *FeedRow) Format() model.FeedActivity {
	activity := model.FeedActivity{
		ID:           row.ID,
		ActivityType: row.ActivityType,
		CreatedAt:    row.CreatedAt,
		LikeCount:    row.LikeCount,
		LikedByUser:  row.LikedByUser > 0,
		User: model.PublicUser{
			ID:        row.UserID,
			Username:  row.Username,
			Email:     row.Email,
			AvatarURL: row.AvatarURL,
		},
		Content: model.ContentSummary{
			ID:         row.ContentID,
			ExternalID: row.ExternalID,
			Title:      row.Title,
			Type:       row.Type,
			Year:       row.Year,
			PosterURL:  row.PosterURL,
		},
	}
	if row.RatingScore != nil {
		activity.Rating = &model.FeedRating{Score: *row.RatingScore}
	}
	if row.ReviewText != nil && *row.ReviewText != "" {
		activity.Review = &model.FeedReview{ReviewText: *row.ReviewText}
	}
	return activity
}

// feedSelect Feed 与个人时间线共用的列清单，viewerID 用于 liked_by_user 子查询
const feedSelect = `a.id, a.activity_type, a.created_at,
	u.id AS user_id, u.username, u.email, u.avatar_url,
	c.id AS content_id, c.title, c.year, c.type, c.poster_url, c.external_id,
	rat.score AS rating_score,
	rev.review_text,
	(SELECT COUNT(*) FROM activity_likes al WHERE al.activity_id = a.id) AS like_count,
	(SELECT COUNT(*) FROM activity_likes al WHERE al.activity_id = a.id AND al.user_id = ?) AS liked_by_user`

// Feed 取关注的人的动态，时间倒序，LIMIT/OFFSET 分页。
// OFFSET 在并发写入下可能重复/跳行，属于既定设计。
func (r *ActivityRepository) Feed(viewerID, limit, offset int) ([]FeedRow, error) {
	var rows []FeedRow
	err := r.db.Table("activities a").
		Select(feedSelect, viewerID).
		Joins("INNER JOIN follows f ON a.user_id = f.following_id AND f.follower_id = ?", viewerID).
		Joins("INNER JOIN users u ON a.user_id = u.id").
		Joins("INNER JOIN contents c ON a.content_id = c.id").
		Joins("LEFT JOIN ratings rat ON a.rating_id = rat.id").
		Joins("LEFT JOIN reviews rev ON a.review_id = rev.id").
		Order("a.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	return rows, err
}

// CountFeed 与 Feed 相同过滤条件下的总行数（算 totalPages 用）
func (r *ActivityRepository) CountFeed(viewerID int) (int64, error) {
	var count int64
	err := r.db.Table("activities a").
		Joins("INNER JOIN follows f ON a.user_id = f.following_id AND f.follower_id = ?", viewerID).
		Count(&count).Error
	return count, err
}

// ListByUser 某用户的全部动态（个人时间线用，不分页，由调用方合并切片）
func (r *ActivityRepository) ListByUser(userID, viewerID int) ([]FeedRow, error) {
	var rows []FeedRow
	err := r.db.Table("activities a").
		Select(feedSelect, viewerID).
		Joins("INNER JOIN users u ON a.user_id = u.id").
		Joins("INNER JOIN contents c ON a.content_id = c.id").
		Joins("LEFT JOIN ratings rat ON a.rating_id = rat.id").
		Joins("LEFT JOIN reviews rev ON a.review_id = rev.id").
		Where("a.user_id = ?", userID).
		Scan(&rows).Error
	return rows, err
}

// LikeRow 个人时间线里合成的“点赞了某动态”行
type LikeRow struct {
	ID                int
	CreatedAt         time.Time
	UserID            int
	Username          string
	Email             string
	AvatarURL         string
	ContentID         int
	Title             string
	Year              int
	Type              string
	PosterURL         string
	ExternalID        string
	LikedActivityType string
	LikedUsername     string
}

// Format 把点赞行整理成合成动态
func (row *LikeRow) Format() model.FeedActivity {
	return model.FeedActivity{
		ID:           fmt.Sprintf("like-%d", row.ID),
		Source:       "like",
		ActivityType: "like",
		CreatedAt:    row.CreatedAt,
		User: model.PublicUser{
			ID:        row.UserID,
			Username:  row.Username,
			Email:     row.Email,
			AvatarURL: row.AvatarURL,
		},
		Content: model.ContentSummary{
			ID:         row.ContentID,
			ExternalID: row.ExternalID,
			Title:      row.Title,
			Type:       row.Type,
			Year:       row.Year,
			PosterURL:  row.PosterURL,
		},
		LikedActivityType: row.LikedActivityType,
		LikedUsername:     row.LikedUsername,
	}
}

// ListLikesByUser 某用户点过的赞（个人时间线的合成行）
func (r *ActivityRepository) ListLikesByUser(userID int) ([]LikeRow, error) {
	var rows []LikeRow
	err := r.db.Table("activity_likes al").
		Select(`al.id, al.created_at,
			u.id AS user_id, u.username, u.email, u.avatar_url,
			c.id AS content_id, c.title, c.year, c.type, c.poster_url, c.external_id,
			a.activity_type AS liked_activity_type,
			liked_user.username AS liked_username`).
		Joins("INNER JOIN activities a ON al.activity_id = a.id").
		Joins("INNER JOIN users u ON al.user_id = u.id").
		Joins("INNER JOIN contents c ON a.content_id = c.id").
		Joins("INNER JOIN users liked_user ON a.user_id = liked_user.id").
		Where("al.user_id = ?", userID).
		Scan(&rows).Error
	return rows, err
}
