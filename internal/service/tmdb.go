package service

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/user/cinevibe/internal/config"
	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/repository"
	"github.com/user/cinevibe/internal/utils"
	"golang.org/x/sync/singleflight"
)

// TMDBService TMDB 目录查询与回填
type TMDBService struct {
	movieRepo   *repository.MovieRepository
	config      *config.Config
	group       singleflight.Group
	searchCache *utils.LookupCache[int]
}

func NewTMDBService(repo *repository.MovieRepository, cfg *config.Config) *TMDBService {
	return &TMDBService{
		movieRepo:   repo,
		config:      cfg,
		searchCache: utils.NewLookupCache[int](1000, 1*time.Hour),
	}
}

func (s *TMDBService) get(rawURL string, target interface{}) error {
	req, _ := http.NewRequest("GET", rawURL, nil)
	req.Header.Set("Authorization", "Bearer "+s.config.TMDBToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

type tmdbSearchResponse struct {
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
}

// SearchByTitleYear 按片名+年份搜索 TMDB，返回第一个命中的 ID，没有命中返回 0
func (s *TMDBService) SearchByTitleYear(title string, year int) (int, error) {
	cacheKey := fmt.Sprintf("%s|%d", utils.NormalizeTitleKey(title), year)
	if id, ok := s.searchCache.Get(cacheKey); ok {
		return id, nil
	}

	searchURL := fmt.Sprintf(
		"https://api.themoviedb.org/3/search/movie?query=%s&primary_release_year=%d&language=en-US",
		url.QueryEscape(title), year)

	var result tmdbSearchResponse
	if err := s.get(searchURL, &result); err != nil {
		return 0, err
	}

	id := 0
	if len(result.Results) > 0 {
		id = result.Results[0].ID
	}
	s.searchCache.Set(cacheKey, id)
	return id, nil
}

type tmdbDetailsResponse struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Runtime          int     `json:"runtime"`
	Tagline          string  `json:"tagline"`
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	Genres           []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

// fetchDetails 获取 TMDB 电影详情
func (s *TMDBService) fetchDetails(tmdbID int) (*tmdbDetailsResponse, error) {
	detailURL := fmt.Sprintf("https://api.themoviedb.org/3/movie/%d?language=en-US", tmdbID)
	var result tmdbDetailsResponse
	if err := s.get(detailURL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchAndStore 搜索 + 拉详情 + Upsert 入库
// 使用 singleflight 避免并发请求同一部片重复抓取；无命中返回 (nil, nil)
func (s *TMDBService) FetchAndStore(title string, year int) (*model.Movie, error) {
	key := fmt.Sprintf("%s|%d", utils.NormalizeTitleKey(title), year)
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.fetchAndStoreInternal(title, year)
	})
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	return val.(*model.Movie), nil
}

func (s *TMDBService) fetchAndStoreInternal(title string, year int) (*model.Movie, error) {
	tmdbID, err := s.SearchByTitleYear(title, year)
	if err != nil {
		return nil, fmt.Errorf("tmdb search failed: %w", err)
	}
	if tmdbID == 0 {
		log.Printf("[TMDB] 无搜索结果: %s (%d)", title, year)
		return nil, nil
	}

	details, err := s.fetchDetails(tmdbID)
	if err != nil {
		return nil, fmt.Errorf("tmdb details failed: %w", err)
	}

	movie := detailsToMovie(details)
	if err := s.movieRepo.Upsert(movie); err != nil {
		return nil, fmt.Errorf("upsert movie failed: %w", err)
	}

	return movie, nil
}

// detailsToMovie 映射 TMDB 字段到本地模型，ID 与 TMDB 共享同一个编号空间
func detailsToMovie(d *tmdbDetailsResponse) *model.Movie {
	movie := &model.Movie{
		ID:            d.ID,
		Title:         d.Title,
		OriginalTitle: d.OriginalTitle,
		Overview:      d.Overview,
		PosterPath:    d.PosterPath,
		BackdropPath:  d.BackdropPath,
		VoteAverage:   d.VoteAverage,
		VoteCount:     d.VoteCount,
		Popularity:    d.Popularity,
		Language:      d.OriginalLanguage,
		Runtime:       d.Runtime,
		Tagline:       d.Tagline,
	}

	if len(d.ReleaseDate) >= 4 {
		var year int
		fmt.Sscanf(d.ReleaseDate[:4], "%d", &year)
		movie.Year = year
	}

	for _, g := range d.Genres {
		movie.Genres = append(movie.Genres, g.Name)
	}

	if d.Budget > 0 {
		budget := d.Budget
		movie.Budget = &budget
	}
	if d.Revenue > 0 {
		revenue := d.Revenue
		movie.BoxOffice = &revenue
	}

	return movie
}

type tmdbReviewsResponse struct {
	Results []struct {
		Author  string `json:"author"`
		Content string `json:"content"`
	} `json:"results"`
}

// FetchReviews 获取 TMDB 用户评论正文（元数据补全用）
func (s *TMDBService) FetchReviews(tmdbID int) ([]string, error) {
	reviewURL := fmt.Sprintf("https://api.themoviedb.org/3/movie/%d/reviews?language=en-US", tmdbID)
	var result tmdbReviewsResponse
	if err := s.get(reviewURL, &result); err != nil {
		return nil, err
	}

	reviews := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		if r.Content != "" {
			reviews = append(reviews, r.Content)
		}
	}
	return reviews, nil
}
