package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/repository"
	"github.com/user/cinevibe/internal/utils"
)

// stubStore 内存版电影目录，复刻仓库层的过滤和排序语义
type stubStore struct {
	movies  []model.Movie
	failAll bool
}

func (s *stubStore) query(keep func(model.Movie) bool, excludeIDs []int, limit int) ([]model.Movie, error) {
	if s.failAll {
		return nil, errors.New("db down")
	}
	excluded := make(map[int]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []model.Movie
	for _, m := range s.movies {
		if excluded[m.ID] || !keep(m) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VoteAverage != out[j].VoteAverage {
			return out[i].VoteAverage > out[j].VoteAverage
		}
		return out[i].VoteCount > out[j].VoteCount
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) FindByTitleYear(title string, year int, excludeIDs []int, limit int) ([]model.Movie, error) {
	return s.query(func(m model.Movie) bool {
		return strings.Contains(strings.ToLower(m.Title), strings.ToLower(title)) && m.Year == year
	}, excludeIDs, limit)
}

func (s *stubStore) FindByTitleYearFuzzy(title string, year, span int, excludeIDs []int, limit int) ([]model.Movie, error) {
	return s.query(func(m model.Movie) bool {
		return strings.Contains(strings.ToLower(m.Title), strings.ToLower(title)) &&
			m.Year >= year-span && m.Year <= year+span
	}, excludeIDs, limit)
}

func (s *stubStore) FindByPreference(languageCodes []string, filter repository.PreferenceFilter, excludeIDs []int, limit int) ([]model.Movie, error) {
	return s.query(func(m model.Movie) bool {
		if m.VoteAverage < filter.MinScore {
			return false
		}
		if len(languageCodes) > 0 {
			hit := false
			for _, code := range languageCodes {
				if m.Language == code {
					hit = true
				}
			}
			if !hit {
				return false
			}
		}
		if filter.YearFrom > 0 && m.Year < filter.YearFrom {
			return false
		}
		if filter.YearTo > 0 && m.Year > filter.YearTo {
			return false
		}
		return true
	}, excludeIDs, limit)
}

// stubCatalog 内存版外部目录
type stubCatalog struct {
	byKey   map[string]model.Movie
	errKeys map[string]bool
	calls   []string
}

func catalogKey(title string, year int) string {
	return fmt.Sprintf("%s|%d", utils.NormalizeTitleKey(title), year)
}

func (c *stubCatalog) FetchAndStore(title string, year int) (*model.Movie, error) {
	key := catalogKey(title, year)
	c.calls = append(c.calls, key)
	if c.errKeys[key] {
		return nil, errors.New("tmdb unavailable")
	}
	if m, ok := c.byKey[key]; ok {
		return &m, nil
	}
	return nil, nil
}

func TestResolverExactMatch(t *testing.T) {
	store := &stubStore{movies: []model.Movie{
		{ID: 1, Title: "Oppenheimer", Year: 2023, VoteAverage: 8.4},
	}}
	catalog := &stubCatalog{}
	r := NewResolver(store, catalog)

	got, err := r.Resolve([]Candidate{{"Oppenheimer", 2023}}, 5, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Resolve = %v, want [Oppenheimer]", got)
	}
	// 本地已命中的候选不应触发外部回填
	if len(catalog.calls) != 0 {
		t.Errorf("外部目录被调用了 %v, want 无调用", catalog.calls)
	}
}

// 档期差一两年的候选靠模糊匹配兜住
func TestResolverFuzzyYear(t *testing.T) {
	store := &stubStore{movies: []model.Movie{
		{ID: 2, Title: "Kantara", Year: 2022, VoteAverage: 8.2},
	}}
	r := NewResolver(store, &stubCatalog{})

	got, err := r.Resolve([]Candidate{{"Kantara", 2023}}, 5, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Resolve = %v, want [Kantara]", got)
	}
}

func TestResolverSkipsExcludedIDs(t *testing.T) {
	store := &stubStore{movies: []model.Movie{
		{ID: 3, Title: "Inception", Year: 2010, VoteAverage: 8.8},
	}}
	r := NewResolver(store, &stubCatalog{})

	got, err := r.Resolve([]Candidate{{"Inception", 2010}}, 5, []int{3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Resolve = %v, want 空", got)
	}
}

func TestResolverPreferenceFallback(t *testing.T) {
	store := &stubStore{movies: []model.Movie{
		{ID: 10, Title: "Dangal", Year: 2016, Language: "hi", VoteAverage: 8.4},
		{ID: 11, Title: "3 Idiots", Year: 2009, Language: "hi", VoteAverage: 8.1},
		{ID: 12, Title: "Low Rated", Year: 2020, Language: "hi", VoteAverage: 5.0},
		{ID: 13, Title: "Parasite", Year: 2019, Language: "ko", VoteAverage: 8.5},
	}}
	r := NewResolver(store, &stubCatalog{})
	pref := &model.UserPreference{UserID: 1, Languages: pq.StringArray{"Hindi"}}

	got, err := r.Resolve(nil, 5, nil, pref)
	if err != nil {
		t.Fatal(err)
	}
	// 只有语言命中且评分达到默认下限 7.0 的片，按评分降序
	if len(got) != 2 || got[0].ID != 10 || got[1].ID != 11 {
		t.Errorf("Resolve = %v, want [Dangal, 3 Idiots]", got)
	}
}

func TestResolverCatalogBackfill(t *testing.T) {
	movie := model.Movie{ID: 42, Title: "Sita Ramam", Year: 2022, VoteAverage: 8.3}
	catalog := &stubCatalog{byKey: map[string]model.Movie{
		catalogKey("Sita Ramam", 2022): movie,
	}}
	r := NewResolver(&stubStore{}, catalog)

	got, err := r.Resolve([]Candidate{{"Sita Ramam", 2022}}, 5, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 42 {
		t.Errorf("Resolve = %v, want [Sita Ramam]", got)
	}
	if len(catalog.calls) != 1 {
		t.Errorf("外部目录调用 %d 次, want 1", len(catalog.calls))
	}
}

// 单个候选的外部回填失败只丢弃该候选，不拖垮整批
func TestResolverCatalogErrorIsSoft(t *testing.T) {
	good := model.Movie{ID: 50, Title: "Kantara", Year: 2022}
	catalog := &stubCatalog{
		byKey:   map[string]model.Movie{catalogKey("Kantara", 2022): good},
		errKeys: map[string]bool{catalogKey("Broken Movie", 2020): true},
	}
	r := NewResolver(&stubStore{}, catalog)

	got, err := r.Resolve([]Candidate{{"Broken Movie", 2020}, {"Kantara", 2022}}, 5, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 50 {
		t.Errorf("Resolve = %v, want [Kantara]", got)
	}
}

// 本地库故障对整个请求是致命的
func TestResolverStoreErrorIsFatal(t *testing.T) {
	r := NewResolver(&stubStore{failAll: true}, &stubCatalog{})

	if _, err := r.Resolve([]Candidate{{"Anything", 2020}}, 5, nil, nil); err == nil {
		t.Error("Resolve 应返回错误")
	}
}

// 哪里都查不到的候选（多半是正则误匹配或 AI 幻觉）静默丢弃
func TestResolverUnknownCandidateDropped(t *testing.T) {
	r := NewResolver(&stubStore{}, &stubCatalog{})

	got, err := r.Resolve([]Candidate{{"Zzyzx Road", 1999}}, 5, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Resolve = %v, want 空", got)
	}
}

// 两个候选对齐到同一部片时只出现一次
func TestResolverNoDuplicateIDs(t *testing.T) {
	store := &stubStore{movies: []model.Movie{
		{ID: 5, Title: "Dune: Part Two", Year: 2024, VoteAverage: 8.3},
	}}
	r := NewResolver(store, &stubCatalog{})

	got, err := r.Resolve([]Candidate{{"Dune", 2024}, {"Dune: Part Two", 2024}}, 5, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 5 {
		t.Errorf("Resolve = %v, want 一部 Dune: Part Two", got)
	}
}

func TestResolverStopsAtDesired(t *testing.T) {
	store := &stubStore{movies: []model.Movie{
		{ID: 1, Title: "Movie One", Year: 2020},
		{ID: 2, Title: "Movie Two", Year: 2020},
		{ID: 3, Title: "Movie Three", Year: 2020},
		{ID: 4, Title: "Movie Four", Year: 2020},
	}}
	r := NewResolver(store, &stubCatalog{})
	candidates := []Candidate{
		{"Movie One", 2020}, {"Movie Two", 2020}, {"Movie Three", 2020}, {"Movie Four", 2020},
	}

	got, err := r.Resolve(candidates, 3, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("Resolve 返回 %d 部, want 3", len(got))
	}
}

// 完整的多层解析：精确命中优先，其次模糊命中，缺口由偏好兜底和外部回填补齐
func TestResolverTieredResolution(t *testing.T) {
	store := &stubStore{movies: []model.Movie{
		{ID: 1, Title: "Oppenheimer", Year: 2023, VoteAverage: 8.4},
		{ID: 2, Title: "Kantara", Year: 2022, VoteAverage: 8.2},
		{ID: 10, Title: "Dangal", Year: 2016, Language: "hi", VoteAverage: 8.4},
		{ID: 11, Title: "3 Idiots", Year: 2009, Language: "hi", VoteAverage: 8.1},
	}}
	backfilled := model.Movie{ID: 42, Title: "Sita Ramam", Year: 2022, VoteAverage: 8.3}
	catalog := &stubCatalog{byKey: map[string]model.Movie{
		catalogKey("Sita Ramam", 2022): backfilled,
	}}
	r := NewResolver(store, catalog)
	pref := &model.UserPreference{UserID: 1, Languages: pq.StringArray{"Hindi"}}

	candidates := []Candidate{
		{"Oppenheimer", 2023}, // 精确命中
		{"Kantara", 2023},     // 年份差 1，模糊命中
		{"Sita Ramam", 2022},  // 本地缺失，外部回填
	}
	got, err := r.Resolve(candidates, 5, nil, pref)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 5 {
		t.Fatalf("Resolve 返回 %d 部, want 5: %v", len(got), got)
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("前两部应是精确/模糊命中, got %v", got[:2])
	}
	seen := make(map[int]bool)
	for _, m := range got {
		if seen[m.ID] {
			t.Errorf("结果中 ID %d 重复", m.ID)
		}
		seen[m.ID] = true
	}
	if !seen[42] {
		t.Errorf("结果缺少外部回填的 Sita Ramam: %v", got)
	}
}
