package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Movie 电影模型（本地目录是 TMDB 目录的可 Upsert 缓存）
// 注意：主键直接使用 TMDB 的 ID，本地不单独编号
type Movie struct {
	ID                int              `json:"id" db:"id" gorm:"primaryKey;autoIncrement:false"`
	Title             string           `json:"title" db:"title"`
	OriginalTitle     string           `json:"original_title" db:"original_title"`
	Overview          string           `json:"overview" db:"overview"`
	PosterPath        string           `json:"poster_path" db:"poster_path"`
	BackdropPath      string           `json:"backdrop_path" db:"backdrop_path"`
	Year              int              `json:"year" db:"year" gorm:"index"`
	VoteAverage       float64          `json:"vote_average" db:"vote_average" gorm:"index"`
	VoteCount         int              `json:"vote_count" db:"vote_count"`
	Popularity        float64          `json:"popularity" db:"popularity"`
	Language          string           `json:"language" db:"language" gorm:"index"`
	Genres            pq.StringArray   `json:"genres" db:"genres" gorm:"type:text[]"`
	Runtime           int              `json:"runtime" db:"runtime"`
	Tagline           string           `json:"tagline" db:"tagline"`
	IMDbRating        *float64         `json:"imdb_rating" db:"imdb_rating"`
	IMDbVoterCount    *int             `json:"imdb_voter_count" db:"imdb_voter_count"`
	UserReviewSummary string           `json:"user_review_summary" db:"user_review_summary"`
	Budget            *int64           `json:"budget" db:"budget"`
	BoxOffice         *int64           `json:"box_office" db:"box_office"`
	EmbeddingContent  string           `json:"embedding_content" db:"embedding_content"`
	Embedding         *pgvector.Vector `json:"-" db:"embedding" gorm:"type:vector(768)"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at" gorm:"index"`
}
