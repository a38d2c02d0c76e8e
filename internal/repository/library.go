package repository

import (
	"errors"
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// FindEntry 查找 (user, content, status) 三元组对应的行
func (r *LibraryRepository) FindEntry(userID, contentID int, status string) (*model.Library, error) {
	var entry model.Library
	err := r.db.Where("user_id = ? AND content_id = ? AND status = ?", userID, contentID, status).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Add 加入书架：三元组已存在则刷新时间，否则插入新行。
// 不同状态各占一行，同一内容可同时是“想看”和“已看”。
func (r *LibraryRepository) Add(userID, contentID int, status string) (*model.Library, error) {
	existing, err := r.FindEntry(userID, contentID, status)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.AddedAt = time.Now()
		if err := r.db.Model(existing).Update("added_at", existing.AddedAt).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	entry := &model.Library{
		UserID:    userID,
		ContentID: contentID,
		Status:    status,
		AddedAt:   time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByUser 用户书架（带内容），status 为空时返回全部
func (r *LibraryRepository) ListByUser(userID int, status string) ([]*model.Library, error) {
	query := r.db.Preload("Content").
		Where("user_id = ?", userID).
		Order("id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var entries []*model.Library
	err := query.Find(&entries).Error
	return entries, err
}

// StatusOf 某内容在用户书架上的状态列表
func (r *LibraryRepository) StatusOf(userID, contentID int) ([]string, error) {
	var statuses []string
	err := r.db.Model(&model.Library{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Order("added_at DESC").
		Pluck("status", &statuses).Error
	return statuses, err
}

// UpdateStatus 修改某条书架记录的状态（仅限本人）
func (r *LibraryRepository) UpdateStatus(userID, entryID int, status string) (bool, error) {
	result := r.db.Model(&model.Library{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Update("status", status)
	return result.RowsAffected > 0, result.Error
}

// Remove 从书架移除（仅限本人）
func (r *LibraryRepository) Remove(userID, entryID int) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&model.Library{})
	return result.RowsAffected > 0, result.Error
}

// StatusCounts 按状态统计书架数量
type StatusCounts struct {
	Watched int `json:"watched"`
	ToWatch int `json:"to_watch"`
	Read    int `json:"read"`
	ToRead  int `json:"to_read"`
	Total   int `json:"total"`
}

// CountByStatus 用户书架分状态统计
func (r *LibraryRepository) CountByStatus(userID int) (*StatusCounts, error) {
	var counts StatusCounts
	err := r.db.Model(&model.Library{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = 'watched' THEN 1 ELSE 0 END) AS watched,
			SUM(CASE WHEN status = 'to_watch' THEN 1 ELSE 0 END) AS to_watch,
			SUM(CASE WHEN status = 'read' THEN 1 ELSE 0 END) AS read,
			SUM(CASE WHEN status = 'to_read' THEN 1 ELSE 0 END) AS to_read`).
		Where("user_id = ?", userID).
		Scan(&counts).Error
	return &counts, err
}
