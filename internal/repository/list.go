package repository

import (
	"errors"
	"time"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create 新建片单
func (r *ListRepository) Create(list *model.List) error {
	if list.CreatedAt.IsZero() {
		list.CreatedAt = time.Now()
	}
	return r.db.Create(list).Error
}

// FindByID 按 ID 查找片单
func (r *ListRepository) FindByID(id int) (*model.List, error) {
	var list model.List
	err := r.db.First(&list, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// ListSummary 片单列表行（带条目数）
type ListSummary struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	ItemCount   int       `json:"item_count"`
}

// ListByUser 某用户的全部片单，带条目数，按创建时间倒序
func (r *ListRepository) ListByUser(userID int) ([]ListSummary, error) {
	var lists []ListSummary
	err := r.db.Table("lists l").
		Select(`l.id, l.name, l.description, l.is_public, l.created_at,
			(SELECT COUNT(*) FROM list_items li WHERE li.list_id = l.id) AS item_count`).
		Where("l.user_id = ?", userID).
		Order("l.created_at DESC").
		Scan(&lists).Error
	return lists, err
}

// ListDetail 片单详情（含主人和条目）
type ListDetail struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	IsPublic    bool                   `json:"is_public"`
	CreatedAt   time.Time              `json:"created_at"`
	UserID      int                    `json:"user_id"`
	Username    string                 `json:"username"`
	Items       []model.ContentSummary `json:"items" gorm:"-"`
}

// Detail 取片单详情，条目按加入时间倒序
func (r *ListRepository) Detail(listID int) (*ListDetail, error) {
	var detail ListDetail
	err := r.db.Table("lists l").
		Select("l.id, l.name, l.description, l.is_public, l.created_at, l.user_id, u.username").
		Joins("INNER JOIN users u ON l.user_id = u.id").
		Where("l.id = ?", listID).
		Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, nil
	}

	var items []model.ContentSummary
	err = r.db.Table("contents c").
		Select("c.id, c.external_id, c.title, c.type, c.year, c.poster_url").
		Joins("INNER JOIN list_items li ON c.id = li.content_id").
		Where("li.list_id = ?", listID).
		Order("li.added_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.ContentSummary{}
	}
	detail.Items = items
	return &detail, nil
}

// HasItem 内容是否已在片单里
func (r *ListRepository) HasItem(listID, contentID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.ListItem{}).
		Where("list_id = ? AND content_id = ?", listID, contentID).
		Count(&count).Error
	return count > 0, err
}

// AddItem 往片单加内容（调用方负责查重）
func (r *ListRepository) AddItem(listID, contentID int) error {
	item := &model.ListItem{
		ListID:    listID,
		ContentID: contentID,
		AddedAt:   time.Now(),
	}
	return r.db.Create(item).Error
}

// RemoveItem 从片单移除内容，返回是否真的删了
func (r *ListRepository) RemoveItem(listID, contentID int) (bool, error) {
	result := r.db.Where("list_id = ? AND content_id = ?", listID, contentID).
		Delete(&model.ListItem{})
	return result.RowsAffected > 0, result.Error
}

// Delete 删除片单及其全部条目
func (r *ListRepository) Delete(listID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&model.ListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.List{}, listID).Error
	})
}
