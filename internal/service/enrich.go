package service

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/user/cinevibe/internal/config"
	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/repository"
	"github.com/user/cinevibe/internal/utils"
)

// enrichBatchSize 每批并发补全的电影数
const enrichBatchSize = 3

// ReviewSource 评论来源（TMDB）
type ReviewSource interface {
	FetchReviews(movieID int) ([]string, error)
}

// EnrichmentService 异步元数据补全：IMDb 评分、评论摘要、语义向量
// 推荐请求本身从不等待它，失败也不影响结果
type EnrichmentService struct {
	movieRepo *repository.MovieRepository
	reviews   ReviewSource
	config    *config.Config
}

func NewEnrichmentService(repo *repository.MovieRepository, reviews ReviewSource, cfg *config.Config) *EnrichmentService {
	return &EnrichmentService{
		movieRepo: repo,
		reviews:   reviews,
		config:    cfg,
	}
}

// EnrichAsync 后台补全一批电影，按固定批次并发（每批 3 个，整批等完再下一批）
func (s *EnrichmentService) EnrichAsync(movies []model.Movie) {
	if len(movies) == 0 {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Enrich] 异步补全发生恐慌: %v", r)
			}
		}()

		for start := 0; start < len(movies); start += enrichBatchSize {
			end := start + enrichBatchSize
			if end > len(movies) {
				end = len(movies)
			}

			var wg sync.WaitGroup
			for _, movie := range movies[start:end] {
				wg.Add(1)
				go func(m model.Movie) {
					defer wg.Done()
					s.enrichOne(m)
				}(movie)
			}
			wg.Wait()
		}
	}()
}

// enrichOne 补全单部电影，每一项各自失败各自放弃
func (s *EnrichmentService) enrichOne(m model.Movie) {
	fields := make(map[string]interface{})

	// 1. IMDb 评分（OMDb）
	if s.config.OMDBKey != "" && m.IMDbRating == nil {
		rating, votes, err := s.fetchIMDbRating(m.Title, m.Year)
		if err != nil {
			log.Printf("[Enrich] 获取 IMDb 评分失败 (%s): %v", m.Title, err)
		} else if rating > 0 {
			fields["imdb_rating"] = rating
			if votes > 0 {
				fields["imdb_voter_count"] = votes
			}
		}
	}

	// 2. 评论摘要（TMDB 评论 + LLM 总结）
	if s.config.PerplexityKey != "" && m.UserReviewSummary == "" {
		summary, err := s.summarizeReviews(m.ID, m.Title)
		if err != nil {
			log.Printf("[Enrich] 生成评论摘要失败 (%s): %v", m.Title, err)
		} else if summary != "" {
			fields["user_review_summary"] = summary
		}
	}

	// 3. 语义向量（本地 Ollama）
	if m.Embedding == nil && m.Overview != "" {
		content := fmt.Sprintf("%s. %s. %s", m.Title, strings.Join(m.Genres, ", "), m.Overview)
		embedding, err := utils.GenerateEmbedding(content)
		if err != nil {
			log.Printf("[Enrich] 生成向量失败 (%s): %v", m.Title, err)
		} else if len(embedding) > 0 {
			vec := pgvector.NewVector(embedding)
			fields["embedding"] = vec
			fields["embedding_content"] = content
		}
	}

	if len(fields) == 0 {
		return
	}
	if err := s.movieRepo.UpdateEnrichment(m.ID, fields); err != nil {
		log.Printf("[Enrich] 保存补全数据失败 (%s): %v", m.Title, err)
	}
}

type omdbResponse struct {
	Response   string `json:"Response"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
}

// fetchIMDbRating 从 OMDb 查 IMDb 评分，结果短期缓存避免重复请求
func (s *EnrichmentService) fetchIMDbRating(title string, year int) (float64, int, error) {
	cacheKey := fmt.Sprintf("omdb:%s|%d", utils.NormalizeTitleKey(title), year)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		if r, ok := cached.(omdbResponse); ok {
			return parseOMDbRating(r)
		}
	}

	omdbURL := fmt.Sprintf("https://www.omdbapi.com/?apikey=%s&t=%s&y=%d",
		s.config.OMDBKey, url.QueryEscape(title), year)
	resp, err := http.Get(omdbURL)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	var result omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, 0, err
	}

	utils.CacheSet(cacheKey, result, 30*time.Minute)
	return parseOMDbRating(result)
}

func parseOMDbRating(r omdbResponse) (float64, int, error) {
	if r.Response != "True" {
		return 0, 0, nil
	}
	rating, err := strconv.ParseFloat(r.IMDbRating, 64)
	if err != nil {
		return 0, 0, nil // "N/A"
	}
	votes, _ := strconv.Atoi(strings.ReplaceAll(r.IMDbVotes, ",", ""))
	return rating, votes, nil
}

// summarizeReviews 拉 TMDB 评论并让 LLM 压缩成两三句摘要
func (s *EnrichmentService) summarizeReviews(movieID int, title string) (string, error) {
	reviews, err := s.reviews.FetchReviews(movieID)
	if err != nil {
		return "", err
	}
	if len(reviews) == 0 {
		return "", nil
	}
	if len(reviews) > 5 {
		reviews = reviews[:5]
	}

	prompt := fmt.Sprintf(
		"Summarize what audiences think of the movie %q in 2-3 sentences, based on these reviews:\n\n%s",
		title, strings.Join(reviews, "\n---\n"))

	return utils.ChatCompletion(s.config.PerplexityKey, s.config.PerplexityModel,
		"You are a film critic assistant. Be concise and neutral.", prompt)
}
