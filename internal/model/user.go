package model

import (
	"time"

	"github.com/lib/pq"
)

// User 用户模型
type User struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email" gorm:"unique"`
	Username  string    `json:"username" db:"username" gorm:"unique"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserPreference 用户推荐偏好设置
// Languages/Genres 存的是展示名（如 "Hindi"、"Thriller"），查询时再映射成代码
type UserPreference struct {
	UserID         int            `json:"user_id" db:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Languages      pq.StringArray `json:"languages" db:"languages" gorm:"type:text[]"`
	Genres         pq.StringArray `json:"genres" db:"genres" gorm:"type:text[]"`
	YearFrom       *int           `json:"year_from" db:"year_from"`
	YearTo         *int           `json:"year_to" db:"year_to"`
	MinScore       *float64       `json:"min_score" db:"min_score"`
	MinBoxOffice   *int64         `json:"min_box_office" db:"min_box_office"`
	MaxBudget      *int64         `json:"max_budget" db:"max_budget"`
	AIInstructions string         `json:"ai_instructions" db:"ai_instructions"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}
