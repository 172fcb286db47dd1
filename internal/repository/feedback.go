package repository

import (
	"time"

	"github.com/user/cinevibe/internal/model"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create 记录一条推荐反馈
func (r *FeedbackRepository) Create(f *model.AIFeedback) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	f.Active = true
	return r.db.Create(f).Error
}

// ListRecentActive 获取用户最近 N 条生效中的反馈（拼进提示词）
func (r *FeedbackRepository) ListRecentActive(userID, limit int) ([]model.AIFeedback, error) {
	var records []model.AIFeedback
	err := r.db.Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Deactivate 反馈被采纳后置为失效
func (r *FeedbackRepository) Deactivate(userID, id int) error {
	return r.db.Model(&model.AIFeedback{}).
		Where("user_id = ? AND id = ?", userID, id).
		UpdateColumn("active", false).Error
}
