package service

import (
	"fmt"
	"strings"

	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/utils"
)

// 匹配度打分常量。都是产品调出来的数值，保持原样，别试图推导
const (
	baseMatchScore    = 70
	maxMatchScore     = 95
	languageBonus     = 15
	highRatingBonus   = 10
	midRatingBonus    = 5
	genreBonus        = 10
	genreBonusCap     = 20
	recentYearBonus   = 8
	newishYearBonus   = 5
	hugeAudienceBonus = 12
	bigAudienceBonus  = 7
	personalizedBonus = 10
)

// MatchReason 单项加分的人类可读说明
type MatchReason struct {
	Factor      string `json:"factor"`
	Score       int    `json:"score"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ScoredRecommendation 最终返回给客户端的推荐条目
type ScoredRecommendation struct {
	model.Movie
	MatchPercent int           `json:"match_percent"`
	MatchReasons []MatchReason `json:"match_reasons"`
}

// FilterAndScore 排除已评分/已想看的电影，并为剩下的算匹配度
func FilterAndScore(movies []model.Movie, profile *UserProfile) []ScoredRecommendation {
	excludedIDs := make(map[int]bool)
	for _, id := range profile.ExcludedIDs() {
		excludedIDs[id] = true
	}
	excludedTitles := profile.ExcludedTitles()

	result := make([]ScoredRecommendation, 0, len(movies))
	for _, m := range movies {
		if excludedIDs[m.ID] {
			continue
		}
		if matchesAnyTitle(m, excludedTitles) {
			// AI 可能用略有差异的名字再推一遍同一部片（续集编号、别名、版本名），
			// ID 对不上也要按片名模糊排除
			continue
		}
		percent, reasons := CalculateMatchScore(m, profile)
		result = append(result, ScoredRecommendation{
			Movie:        m,
			MatchPercent: percent,
			MatchReasons: reasons,
		})
	}
	return result
}

// matchesAnyTitle 片名或原名与任一已排除片名模糊匹配
func matchesAnyTitle(m model.Movie, excludedTitles []string) bool {
	for _, t := range excludedTitles {
		if utils.TitlesMatch(m.Title, t) {
			return true
		}
		if m.OriginalTitle != "" && m.OriginalTitle != m.Title && utils.TitlesMatch(m.OriginalTitle, t) {
			return true
		}
	}
	return false
}

// CalculateMatchScore 确定性的加法打分：基础 70，各项加成独立叠加，上限 95
func CalculateMatchScore(m model.Movie, profile *UserProfile) (int, []MatchReason) {
	score := baseMatchScore
	var reasons []MatchReason

	addReason := func(factor string, bonus int, desc, icon string) {
		score += bonus
		reasons = append(reasons, MatchReason{
			Factor:      factor,
			Score:       bonus,
			Description: desc,
			Icon:        icon,
		})
	}

	pref := profile.Preference

	// 语言命中
	if pref != nil && m.Language != "" {
		languageName := LanguageName(m.Language)
		for _, preferred := range pref.Languages {
			if strings.EqualFold(preferred, languageName) {
				addReason("language", languageBonus,
					fmt.Sprintf("In your preferred language (%s)", languageName), "🌐")
				break
			}
		}
	}

	// 评分加成：有 IMDb 评分用 IMDb，否则用 TMDB 平均分
	rating := m.VoteAverage
	if m.IMDbRating != nil && *m.IMDbRating > 0 {
		rating = *m.IMDbRating
	}
	if rating >= 8.0 {
		addReason("rating", highRatingBonus,
			fmt.Sprintf("Critically acclaimed (%.1f/10)", rating), "⭐")
	} else if rating >= 7.0 {
		addReason("rating", midRatingBonus,
			fmt.Sprintf("Well rated (%.1f/10)", rating), "⭐")
	}

	// 类型重合：每个命中 +10，封顶 +20
	if pref != nil && len(pref.Genres) > 0 {
		var matched []string
		for _, g := range m.Genres {
			for _, preferred := range pref.Genres {
				if strings.EqualFold(g, preferred) {
					matched = append(matched, g)
					break
				}
			}
		}
		if len(matched) > 0 {
			bonus := genreBonus * len(matched)
			if bonus > genreBonusCap {
				bonus = genreBonusCap
			}
			addReason("genre", bonus,
				fmt.Sprintf("Matches your favorite genres: %s", strings.Join(matched, ", ")), "🎭")
		}
	}

	// 新片加成
	if m.Year >= 2023 {
		addReason("recency", recentYearBonus,
			fmt.Sprintf("Recent release (%d)", m.Year), "🆕")
	} else if m.Year >= 2020 {
		addReason("recency", newishYearBonus,
			fmt.Sprintf("Fairly recent (%d)", m.Year), "🆕")
	}

	// 热度加成（按投票人数）
	if m.VoteCount >= 10000 {
		addReason("popularity", hugeAudienceBonus, "Loved by a huge audience", "🔥")
	} else if m.VoteCount >= 5000 {
		addReason("popularity", bigAudienceBonus, "Popular with audiences", "🔥")
	}

	// 个性化加成：用户有过正面评分才给
	if profile.HasPositiveRating() {
		addReason("personalized", personalizedBonus, "AI personalized based on your taste", "🤖")
	}

	if score > maxMatchScore {
		score = maxMatchScore
	}
	return score, reasons
}
