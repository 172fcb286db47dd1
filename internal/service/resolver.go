package service

import (
	"fmt"
	"log"

	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/repository"
)

// fuzzyYearSpan 模糊档期匹配允许的年份偏差
const fuzzyYearSpan = 2

// defaultMinScore 偏好兜底查询的默认评分下限
const defaultMinScore = 7.0

// MovieStore 候选解析需要的本地目录查询
type MovieStore interface {
	FindByTitleYear(title string, year int, excludeIDs []int, limit int) ([]model.Movie, error)
	FindByTitleYearFuzzy(title string, year, span int, excludeIDs []int, limit int) ([]model.Movie, error)
	FindByPreference(languageCodes []string, filter repository.PreferenceFilter, excludeIDs []int, limit int) ([]model.Movie, error)
}

// CatalogSource 外部目录回填
type CatalogSource interface {
	FetchAndStore(title string, year int) (*model.Movie, error)
}

// Resolver 把解析出的候选片对齐到本地目录
// 解析顺序：精确命中 → ±2年模糊命中 → 偏好兜底 → 外部目录回填 → 剩余候补
type Resolver struct {
	store   MovieStore
	catalog CatalogSource
}

func NewResolver(store MovieStore, catalog CatalogSource) *Resolver {
	return &Resolver{store: store, catalog: catalog}
}

// Resolve 解析候选清单，最多返回 desired 部、彼此不重复、不在排除集合内的电影
// 本地库查询失败对整个请求是致命的；单个候选的外部回填失败只丢弃该候选
func (r *Resolver) Resolve(candidates []Candidate, desired int, excludeIDs []int, pref *model.UserPreference) ([]model.Movie, error) {
	selected := make([]model.Movie, 0, desired)
	selectedIDs := make(map[int]bool)
	excluded := make(map[int]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	resolved := make(map[string]bool, len(candidates))
	var leftovers []model.Movie // 查出来但没用上的本地记录，最后候补

	notIn := func() []int {
		ids := make([]int, 0, len(excluded)+len(selectedIDs))
		for id := range excluded {
			ids = append(ids, id)
		}
		for id := range selectedIDs {
			ids = append(ids, id)
		}
		return ids
	}

	accept := func(m model.Movie) bool {
		if selectedIDs[m.ID] || excluded[m.ID] {
			return false
		}
		selected = append(selected, m)
		selectedIDs[m.ID] = true
		return true
	}

	// 第一层：片名包含匹配 + 年份精确
	for _, c := range candidates {
		if len(selected) >= desired {
			break
		}
		movies, err := r.store.FindByTitleYear(c.Title, c.Year, notIn(), 3)
		if err != nil {
			return nil, fmt.Errorf("精确匹配查询失败: %w", err)
		}
		if len(movies) == 0 {
			continue
		}
		if accept(movies[0]) {
			resolved[candidateKey(c)] = true
		}
		leftovers = append(leftovers, movies[1:]...)
	}

	// 第二层：年份放宽到 ±2
	if len(selected) < desired {
		for _, c := range candidates {
			if len(selected) >= desired {
				break
			}
			if resolved[candidateKey(c)] {
				continue
			}
			movies, err := r.store.FindByTitleYearFuzzy(c.Title, c.Year, fuzzyYearSpan, notIn(), 3)
			if err != nil {
				return nil, fmt.Errorf("模糊匹配查询失败: %w", err)
			}
			if len(movies) == 0 {
				continue
			}
			if accept(movies[0]) {
				resolved[candidateKey(c)] = true
			}
			leftovers = append(leftovers, movies[1:]...)
		}
	}

	// 第三层：按用户偏好兜底补齐
	if len(selected) < desired {
		movies, err := r.store.FindByPreference(
			preferenceLanguageCodes(pref),
			buildPreferenceFilter(pref),
			notIn(),
			desired-len(selected),
		)
		if err != nil {
			return nil, fmt.Errorf("偏好兜底查询失败: %w", err)
		}
		for _, m := range movies {
			if len(selected) >= desired {
				break
			}
			accept(m)
		}
	}

	// 外部目录回填：本地没对上的候选去 TMDB 搜索并入库
	// 单个候选失败只记日志丢弃，不影响整批；凑够数就提前停
	for _, c := range candidates {
		if len(selected) >= desired {
			break
		}
		if resolved[candidateKey(c)] {
			continue
		}
		movie, err := r.catalog.FetchAndStore(c.Title, c.Year)
		if err != nil {
			log.Printf("[Resolver] 候选回填失败 %s (%d): %v", c.Title, c.Year, err)
			continue
		}
		if movie == nil {
			// 哪里都查不到的候选静默丢弃，多半是正则误匹配
			continue
		}
		if accept(*movie) {
			resolved[candidateKey(c)] = true
		}
	}

	// 还不够就用之前查出来但没选上的本地记录候补
	for _, m := range leftovers {
		if len(selected) >= desired {
			break
		}
		accept(m)
	}

	return selected, nil
}

func candidateKey(c Candidate) string {
	return fmt.Sprintf("%s|%d", c.Title, c.Year)
}

// preferenceLanguageCodes 偏好语言展示名映射成查询用的代码
func preferenceLanguageCodes(pref *model.UserPreference) []string {
	if pref == nil {
		return nil
	}
	return LanguageCodesOf(pref.Languages)
}

// buildPreferenceFilter 偏好设置转查询过滤条件
// 评分下限缺省 7.0；年代下限只有明确设置且大于 1900 才生效（1900 是“不限”哨兵）
func buildPreferenceFilter(pref *model.UserPreference) repository.PreferenceFilter {
	filter := repository.PreferenceFilter{MinScore: defaultMinScore}
	if pref == nil {
		return filter
	}
	if pref.MinScore != nil && *pref.MinScore > 0 {
		filter.MinScore = *pref.MinScore
	}
	if pref.YearFrom != nil && *pref.YearFrom > 1900 {
		filter.YearFrom = *pref.YearFrom
	}
	if pref.YearTo != nil && *pref.YearTo > 0 {
		filter.YearTo = *pref.YearTo
	}
	if pref.MinBoxOffice != nil && *pref.MinBoxOffice > 0 {
		filter.MinBoxOffice = *pref.MinBoxOffice
	}
	if pref.MaxBudget != nil && *pref.MaxBudget > 0 {
		filter.MaxBudget = *pref.MaxBudget
	}
	return filter
}
