package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/user/cinevibe/internal/utils"
)

// Candidate 从 AI 回复里解析出的候选片，只在一次请求内存在
type Candidate struct {
	Title string
	Year  int
}

// TitleYearExtractor 从自由文本里提取 (片名, 年份) 对
// AI 的回复格式没有契约保证，解析策略要能整体替换，所以单独抽一层接口
type TitleYearExtractor interface {
	Extract(raw string) []Candidate
}

// PatternExtractor 按固定优先级尝试多个正则的提取器
// 容忍常见的几种列表格式：带编号加粗、带编号普通、纯加粗、裸 "Title (Year)" 行
type PatternExtractor struct {
	patterns []*regexp.Regexp
}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{
		patterns: []*regexp.Regexp{
			// 1. **Title** (2023) / 1. **Title** - 2023
			regexp.MustCompile(`(?m)^\s*\d+[.)]\s*\*\*(.+?)\*\*[\s:]*[(\-–]\s*(\d{4})\)?`),
			// 1. Title (2023) / 2. Title - 2023
			regexp.MustCompile(`(?m)^\s*\d+[.)]\s*([^\n(]+?)\s*[(\-–]\s*(\d{4})\)?`),
			// **Title (2023)** 和 **Title** (2023)
			regexp.MustCompile(`\*\*([^*\n]+?)\s*\((\d{4})\)\s*\*\*`),
			regexp.MustCompile(`\*\*([^*\n]+?)\*\*\s*\((\d{4})\)`),
			// 裸 Title (2023) 行
			regexp.MustCompile(`(?m)^([^\n(]{3,80}?)\s*\((\d{4})\)\s*$`),
		},
	}
}

// Extract 逐个正则提取，按 归一化片名|年份 去重，保留首次出现的顺序
func (e *PatternExtractor) Extract(raw string) []Candidate {
	seen := make(map[string]bool)
	var candidates []Candidate

	for _, pattern := range e.patterns {
		for _, m := range pattern.FindAllStringSubmatch(raw, -1) {
			title := cleanCandidateTitle(m[1])
			year, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			// 片名太短的基本是误匹配；年份限定在有电影的区间
			if len([]rune(title)) <= 2 || year < 1880 || year > 2100 {
				continue
			}
			key := utils.NormalizeTitleKey(title) + "|" + m[2]
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, Candidate{Title: title, Year: year})
		}
	}

	return candidates
}

var reEnumPrefix = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// cleanCandidateTitle 去掉 markdown 痕迹、列表编号和多余的标点
func cleanCandidateTitle(title string) string {
	title = strings.ReplaceAll(title, "**", "")
	title = strings.ReplaceAll(title, "*", "")
	title = reEnumPrefix.ReplaceAllString(title, "")
	title = strings.Trim(title, " \t\"'“”‘’")
	title = strings.TrimLeft(title, " -–—•")
	title = strings.TrimRight(title, " -–—:.,")
	return strings.TrimSpace(title)
}
