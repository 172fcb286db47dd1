package repository

import (
	"time"

	"github.com/user/cinevibe/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Upsert(rating *model.Rating) error {
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "year", "category"}),
	}).Create(rating).Error
}

// ListByUser 获取用户的全部评分历史
// 注意：不加 Limit。排除过滤依赖完整历史，截断会让已评分的片子重新出现在推荐里
func (r *RatingRepository) ListByUser(userID int) ([]model.Rating, error) {
	var records []model.Rating
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *RatingRepository) CountByUser(userID int) (int, error) {
	var count int64
	err := r.db.Model(&model.Rating{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}
