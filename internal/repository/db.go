package repository

import (
	"fmt"

	"github.com/user/mediashelf/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 同步表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Content{},
		&model.Rating{},
		&model.Review{},
		&model.Library{},
		&model.Follow{},
		&model.Activity{},
		&model.ActivityLike{},
		&model.List{},
		&model.ListItem{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Content  *ContentRepository
	Rating   *RatingRepository
	Review   *ReviewRepository
	Library  *LibraryRepository
	Follow   *FollowRepository
	Activity *ActivityRepository
	Like     *LikeRepository
	List     *ListRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Content:  NewContentRepository(db),
		Rating:   NewRatingRepository(db),
		Review:   NewReviewRepository(db),
		Library:  NewLibraryRepository(db),
		Follow:   NewFollowRepository(db),
		Activity: NewActivityRepository(db),
		Like:     NewLikeRepository(db),
		List:     NewListRepository(db),
	}
}
