package repository

import (
	"time"

	"github.com/user/cinevibe/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get 获取用户偏好，没有设置过返回 nil
func (r *PreferenceRepository) Get(userID int) (*model.UserPreference, error) {
	var pref model.UserPreference
	err := r.db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

// Upsert 整行替换用户偏好
func (r *PreferenceRepository) Upsert(pref *model.UserPreference) error {
	pref.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"languages", "genres", "year_from", "year_to", "min_score",
			"min_box_office", "max_budget", "ai_instructions", "updated_at",
		}),
	}).Create(pref).Error
}
