package service

import (
	"log"

	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/utils"
)

// CompletionClient 外部文本补全服务
// 返回的是自然语言，通常是编号列表，但格式没有任何保证
type CompletionClient interface {
	Complete(systemPrompt, userPrompt string) (string, error)
}

// ProfileBuilder 用户画像聚合
type ProfileBuilder interface {
	BuildProfile(userID int) (*UserProfile, error)
}

// Enricher 异步元数据补全
type Enricher interface {
	EnrichAsync(movies []model.Movie)
}

// PerplexityClient 生产环境的补全客户端，固定模型
type PerplexityClient struct {
	apiKey string
	model  string
}

func NewPerplexityClient(apiKey, model string) *PerplexityClient {
	return &PerplexityClient{apiKey: apiKey, model: model}
}

func (c *PerplexityClient) Complete(systemPrompt, userPrompt string) (string, error) {
	return utils.ChatCompletion(c.apiKey, c.model, systemPrompt, userPrompt)
}

// SmartPicksResult 推荐流水线输出
type SmartPicksResult struct {
	Movies       []ScoredRecommendation
	RawText      string
	RatingsCount int
}

// SmartPicksService AI 智能推荐流水线
// 五个阶段严格顺序执行：聚合画像 → 构造提示词 → 调补全服务 → 解析对齐候选 → 排除过滤并打分
type SmartPicksService struct {
	profiles  ProfileBuilder
	resolver  *Resolver
	completer CompletionClient
	enricher  Enricher
	extractor TitleYearExtractor
}

func NewSmartPicksService(
	profiles ProfileBuilder,
	store MovieStore,
	catalog CatalogSource,
	completer CompletionClient,
	enricher Enricher,
) *SmartPicksService {
	return &SmartPicksService{
		profiles:  profiles,
		resolver:  NewResolver(store, catalog),
		completer: completer,
		enricher:  enricher,
		extractor: NewPatternExtractor(),
	}
}

// GetSmartPicks 为用户生成一批 AI 推荐
// 前四个阶段任何失败对整个请求致命；凑不够 count 部不算错误，有多少返回多少
func (s *SmartPicksService) GetSmartPicks(userID, count int, query string) (*SmartPicksResult, error) {
	// 1. 聚合画像（全量评分历史，数据库故障直接失败，不做部分画像）
	profile, err := s.profiles.BuildProfile(userID)
	if err != nil {
		return nil, err
	}

	// 2. 构造提示词
	prompt := BuildSmartPicksPrompt(profile, count, query)

	// 3. 调用补全服务，单次尝试，不重试
	rawText, err := s.completer.Complete(smartPicksSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	// 4. 从自由文本里解析候选并对齐到本地目录
	candidates := s.extractor.Extract(rawText)
	log.Printf("[SmartPicks] 用户 %d: 解析出 %d 个候选 (评分历史 %d 条)",
		userID, len(candidates), len(profile.Ratings))

	movies, err := s.resolver.Resolve(candidates, count, profile.ExcludedIDs(), profile.Preference)
	if err != nil {
		return nil, err
	}

	// 元数据补全是后台任务，请求不等待
	if s.enricher != nil {
		s.enricher.EnrichAsync(movies)
	}

	// 5. 排除过滤 + 打分
	scored := FilterAndScore(movies, profile)
	if len(scored) > count {
		scored = scored[:count]
	}

	log.Printf("[SmartPicks] 用户 %d: 返回 %d 部推荐", userID, len(scored))

	return &SmartPicksResult{
		Movies:       scored,
		RawText:      rawText,
		RatingsCount: len(profile.Ratings),
	}, nil
}
