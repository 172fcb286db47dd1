package repository

import (
	"time"

	"github.com/user/cinevibe/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Upsert 创建或更新电影（按 TMDB ID 幂等，后写覆盖）
func (r *MovieRepository) Upsert(movie *model.Movie) error {
	movie.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "original_title", "overview", "poster_path", "backdrop_path",
			"year", "vote_average", "vote_count", "popularity", "language", "genres",
			"runtime", "tagline", "budget", "box_office", "updated_at",
		}),
	}).Create(movie).Error
}

// UpdateEnrichment 补充异步采集的元数据（IMDb 评分、评论摘要、向量）
func (r *MovieRepository) UpdateEnrichment(movieID int, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.Model(&model.Movie{}).Where("id = ?", movieID).Updates(fields).Error
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("id = ?", id).First(&movie).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

// FindByIDs 批量查找
func (r *MovieRepository) FindByIDs(ids []int) ([]model.Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var movies []model.Movie
	err := r.db.Where("id IN ?", ids).Find(&movies).Error
	return movies, err
}

// FindByTitleYear 标题包含匹配（不区分大小写）+ 年份精确匹配
func (r *MovieRepository) FindByTitleYear(title string, year int, excludeIDs []int, limit int) ([]model.Movie, error) {
	q := r.db.Where("title ILIKE ? AND year = ?", "%"+title+"%", year)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var movies []model.Movie
	err := q.Order("vote_average DESC, vote_count DESC").Limit(limit).Find(&movies).Error
	return movies, err
}

// FindByTitleYearFuzzy 标题包含匹配 + 年份在 ±span 内
func (r *MovieRepository) FindByTitleYearFuzzy(title string, year, span int, excludeIDs []int, limit int) ([]model.Movie, error) {
	q := r.db.Where("title ILIKE ? AND year BETWEEN ? AND ?", "%"+title+"%", year-span, year+span)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var movies []model.Movie
	err := q.Order("vote_average DESC, vote_count DESC").Limit(limit).Find(&movies).Error
	return movies, err
}

// PreferenceFilter 偏好兜底查询的过滤条件
type PreferenceFilter struct {
	MinScore     float64
	YearFrom     int   // 0 表示不限
	YearTo       int   // 0 表示不限
	MinBoxOffice int64 // 0 表示不限
	MaxBudget    int64 // 0 表示不限
}

// FindByPreference 按用户偏好筛选高分电影（解析失败时的兜底数据源）
func (r *MovieRepository) FindByPreference(languageCodes []string, filter PreferenceFilter, excludeIDs []int, limit int) ([]model.Movie, error) {
	q := r.db.Where("vote_average >= ?", filter.MinScore)
	if len(languageCodes) > 0 {
		q = q.Where("language IN ?", languageCodes)
	}
	if filter.YearFrom > 0 {
		q = q.Where("year >= ?", filter.YearFrom)
	}
	if filter.YearTo > 0 {
		q = q.Where("year <= ?", filter.YearTo)
	}
	if filter.MinBoxOffice > 0 {
		q = q.Where("box_office >= ?", filter.MinBoxOffice)
	}
	if filter.MaxBudget > 0 {
		q = q.Where("budget > 0 AND budget <= ?", filter.MaxBudget)
	}
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var movies []model.Movie
	err := q.Order("vote_average DESC, vote_count DESC").Limit(limit).Find(&movies).Error
	return movies, err
}
