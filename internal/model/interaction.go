package model

import (
	"time"
)

// 评分分类
const (
	CategoryAmazing       = "amazing"
	CategoryGood          = "good"
	CategoryMeh           = "meh"
	CategoryAwful         = "awful"
	CategoryNotInterested = "not-interested"
	CategorySkipped       = "skipped"
)

// Rating 用户评分记录（用户创建后只读）
type Rating struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_rating_movie"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_rating_movie"`
	Title     string    `json:"title" db:"title"`
	Year      int       `json:"year" db:"year"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WatchlistItem 想看清单条目
type WatchlistItem struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_watchlist_movie"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_watchlist_movie"`
	Title     string    `json:"title" db:"title"`
	Year      *int      `json:"year" db:"year"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AIFeedback 用户对 AI 推荐结果的反馈，最近几条会拼进提示词
type AIFeedback struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	Feedback  string    `json:"feedback" db:"feedback"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index"`
}
