package repository

import (
	"fmt"

	"github.com/user/cinevibe/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 自动迁移
	if err := db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Rating{},
		&model.WatchlistItem{},
		&model.UserPreference{},
		&model.AIFeedback{},
	); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB         *gorm.DB
	User       *UserRepository
	Movie      *MovieRepository
	Rating     *RatingRepository
	Watchlist  *WatchlistRepository
	Preference *PreferenceRepository
	Feedback   *FeedbackRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:         db,
		User:       NewUserRepository(db),
		Movie:      NewMovieRepository(db),
		Rating:     NewRatingRepository(db),
		Watchlist:  NewWatchlistRepository(db),
		Preference: NewPreferenceRepository(db),
		Feedback:   NewFeedbackRepository(db),
	}
}
