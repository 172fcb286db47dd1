package service

import (
	"fmt"
	"strings"
)

// smartPicksSystemPrompt 系统提示词
const smartPicksSystemPrompt = "You are a movie recommendation expert. " +
	"You suggest movies that match the user's taste, language and genre preferences. " +
	"Always answer with a numbered list in the exact format \"1. Title (Year)\" and nothing else."

// BuildSmartPicksPrompt 渲染推荐提示词
// 纯函数：相同画像产生相同文本，不掺时间戳，方便用固定样例测试
func BuildSmartPicksPrompt(p *UserProfile, count int, query string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recommend exactly %d movies for me.\n", count)

	if query != "" {
		fmt.Fprintf(&b, "\nWhat I am looking for right now: %s\n", query)
	}

	if pref := p.Preference; pref != nil {
		if len(pref.Languages) > 0 {
			fmt.Fprintf(&b, "\nPreferred languages: %s.\n", strings.Join(pref.Languages, ", "))
		}
		if len(pref.Genres) > 0 {
			fmt.Fprintf(&b, "Preferred genres: %s.\n", strings.Join(pref.Genres, ", "))
		}
		if pref.YearFrom != nil && *pref.YearFrom > 1900 {
			// 1900 是 App 端“不限年代”的哨兵值
			fmt.Fprintf(&b, "Only movies released in or after %d.\n", *pref.YearFrom)
		}
		if pref.YearTo != nil && *pref.YearTo > 0 {
			fmt.Fprintf(&b, "Only movies released in or before %d.\n", *pref.YearTo)
		}
		if pref.MinScore != nil && *pref.MinScore > 0 {
			fmt.Fprintf(&b, "Only movies rated %.1f or higher.\n", *pref.MinScore)
		}
		if pref.AIInstructions != "" {
			fmt.Fprintf(&b, "\nAdditional instructions from me: %s\n", pref.AIInstructions)
		}
	}

	if len(p.RecentFeedback) > 0 {
		b.WriteString("\nMy feedback on your previous recommendations:\n")
		for _, fb := range p.RecentFeedback {
			fmt.Fprintf(&b, "- %s\n", fb)
		}
	}

	// 关键：完整的排除清单，覆盖所有评分分类和想看清单，
	// 任何遗漏都会导致模型把用户看过/拒绝过的片子再推一遍
	if len(p.Ratings) > 0 || len(p.Watchlist) > 0 {
		b.WriteString("\nIMPORTANT: Do NOT recommend any of the following movies. I have already rated them or added them to my watchlist:\n")
		for _, r := range p.Ratings {
			if r.Year > 0 {
				fmt.Fprintf(&b, "- %s (%d)\n", r.Title, r.Year)
			} else {
				fmt.Fprintf(&b, "- %s\n", r.Title)
			}
		}
		for _, w := range p.Watchlist {
			if w.Year != nil && *w.Year > 0 {
				fmt.Fprintf(&b, "- %s (%d)\n", w.Title, *w.Year)
			} else {
				fmt.Fprintf(&b, "- %s\n", w.Title)
			}
		}
	}

	fmt.Fprintf(&b, "\nAnswer with a numbered list of exactly %d movies in the format \"1. Title (Year)\".\n", count)

	return b.String()
}
