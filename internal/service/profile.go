package service

import (
	"fmt"

	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/repository"
)

// recentFeedbackLimit 拼进提示词的反馈条数上限
const recentFeedbackLimit = 5

// UserProfile 一次推荐请求的用户画像，每次请求都重新聚合，不做服务端缓存
type UserProfile struct {
	UserID         int
	Ratings        []model.Rating
	Watchlist      []model.WatchlistItem
	Preference     *model.UserPreference // 未设置时为 nil
	RecentFeedback []string
}

// ExcludedIDs 已评分 + 已加想看清单的电影 ID 集合
func (p *UserProfile) ExcludedIDs() []int {
	seen := make(map[int]bool, len(p.Ratings)+len(p.Watchlist))
	ids := make([]int, 0, len(p.Ratings)+len(p.Watchlist))
	for _, r := range p.Ratings {
		if !seen[r.MovieID] {
			seen[r.MovieID] = true
			ids = append(ids, r.MovieID)
		}
	}
	for _, w := range p.Watchlist {
		if !seen[w.MovieID] {
			seen[w.MovieID] = true
			ids = append(ids, w.MovieID)
		}
	}
	return ids
}

// ExcludedTitles 已评分 + 想看清单的片名集合（模糊排除用）
func (p *UserProfile) ExcludedTitles() []string {
	titles := make([]string, 0, len(p.Ratings)+len(p.Watchlist))
	for _, r := range p.Ratings {
		titles = append(titles, r.Title)
	}
	for _, w := range p.Watchlist {
		titles = append(titles, w.Title)
	}
	return titles
}

// HasPositiveRating 是否存在正面评分（amazing/good）
func (p *UserProfile) HasPositiveRating() bool {
	for _, r := range p.Ratings {
		if r.Category == model.CategoryAmazing || r.Category == model.CategoryGood {
			return true
		}
	}
	return false
}

// ProfileService 用户画像聚合
type ProfileService struct {
	repos *repository.Repositories
}

func NewProfileService(repos *repository.Repositories) *ProfileService {
	return &ProfileService{repos: repos}
}

// BuildProfile 聚合用户的完整评分历史、想看清单、偏好和最近反馈
// 评分必须拉全量、全分类：排除过滤依赖完整覆盖，任何截断都会把
// 用户已经拒绝过的片子重新放进推荐结果
func (s *ProfileService) BuildProfile(userID int) (*UserProfile, error) {
	ratings, err := s.repos.Rating.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("加载评分历史失败: %w", err)
	}

	watchlist, err := s.repos.Watchlist.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("加载想看清单失败: %w", err)
	}

	pref, err := s.repos.Preference.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("加载偏好设置失败: %w", err)
	}

	feedbacks, err := s.repos.Feedback.ListRecentActive(userID, recentFeedbackLimit)
	if err != nil {
		return nil, fmt.Errorf("加载推荐反馈失败: %w", err)
	}
	feedbackTexts := make([]string, 0, len(feedbacks))
	for _, f := range feedbacks {
		feedbackTexts = append(feedbackTexts, f.Feedback)
	}

	return &UserProfile{
		UserID:         userID,
		Ratings:        ratings,
		Watchlist:      watchlist,
		Preference:     pref,
		RecentFeedback: feedbackTexts,
	}, nil
}
