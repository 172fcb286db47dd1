package utils

import (
	"regexp"
	"strings"
)

// AI 返回的片名经常和库里存的不完全一致（续集数字、冠词、年份后缀、版本名），
// 这里用多种归一化变体做模糊比对，而不是单一的字符串相等。

var (
	reNonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	reYearSuffix = regexp.MustCompile(`[\s\-:\(\[]*(19|20)\d{2}\)?\]?\s*$`)
	reDigits     = regexp.MustCompile(`\d+`)
	reArticle    = regexp.MustCompile(`^(the|a|an)\s+`)
)

// TitleVariants 生成片名的归一化变体集合
// 变体：纯小写字母数字、去年份后缀、去数字（抓 "Drishyam 2" vs "Drishyam"）、
// 去冠词（"The X" vs "X"）、前两个词拼接
func TitleVariants(title string) []string {
	lower := strings.ToLower(strings.TrimSpace(title))
	if lower == "" {
		return nil
	}

	seen := make(map[string]bool)
	variants := make([]string, 0, 6)
	add := func(s string) {
		s = reNonAlnum.ReplaceAllString(s, "")
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		variants = append(variants, s)
	}

	// 1. 纯字母数字
	add(lower)

	// 2. 去掉结尾的年份（"Jawan (2023)" / "Jawan - 2023"）
	add(reYearSuffix.ReplaceAllString(lower, ""))

	// 3. 去掉所有数字（续集）
	add(reDigits.ReplaceAllString(lower, ""))

	// 4. 去掉开头冠词
	add(reArticle.ReplaceAllString(lower, ""))

	// 5. 前两个词
	words := strings.Fields(reArticle.ReplaceAllString(lower, ""))
	if len(words) >= 2 {
		add(words[0] + words[1])
	}

	return variants
}

// TitlesMatch 判断两个片名是否指向同一部电影（对称的纯函数）
// 命中条件：变体完全相等；变体互相包含（仅限长度 >=5）；
// 80% 前缀包含（仅限双方长度 >=6，容忍结尾的版本/别名差异）
func TitlesMatch(a, b string) bool {
	va := TitleVariants(a)
	vb := TitleVariants(b)

	for _, x := range va {
		for _, y := range vb {
			if x == y {
				return true
			}
			if len(x) >= 5 && len(y) >= 5 {
				if strings.Contains(x, y) || strings.Contains(y, x) {
					return true
				}
			}
			if len(x) >= 6 && len(y) >= 6 {
				shorter, longer := x, y
				if len(shorter) > len(longer) {
					shorter, longer = longer, shorter
				}
				prefix := shorter[:len(shorter)*4/5]
				if strings.HasPrefix(longer, prefix) {
					return true
				}
			}
		}
	}
	return false
}

// NormalizeTitleKey 提取去重用的归一化 key（小写字母数字）
func NormalizeTitleKey(title string) string {
	return reNonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "")
}
