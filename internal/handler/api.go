package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/user/cinevibe/internal/middleware"
	"github.com/user/cinevibe/internal/model"
	"github.com/user/cinevibe/internal/utils"
)

// FeedbackRequest 推荐反馈请求体
type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// SubmitRecommendationFeedback 记录用户对推荐结果的反馈
// 最近几条生效中的反馈会拼进下一次推荐的提示词
func (h *Handler) SubmitRecommendationFeedback(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请填写反馈内容")
		return
	}

	feedback := &model.AIFeedback{
		UserID:   userID,
		Feedback: strings.TrimSpace(req.Feedback),
	}
	if err := h.Repos.Feedback.Create(feedback); err != nil {
		utils.InternalServerError(c, "提交反馈失败")
		return
	}

	utils.Success(c, feedback)
}

// GetPreferences 获取推荐偏好
func (h *Handler) GetPreferences(c *gin.Context) {
	userID := middleware.GetUserID(c)

	pref, err := h.Repos.Preference.Get(userID)
	if err != nil {
		utils.InternalServerError(c, "获取偏好失败")
		return
	}
	if pref == nil {
		// 没设置过返回空偏好，客户端据此渲染默认表单
		pref = &model.UserPreference{UserID: userID}
	}

	utils.Success(c, pref)
}

// PreferencesRequest 偏好更新请求体
type PreferencesRequest struct {
	Languages      []string `json:"languages"`
	Genres         []string `json:"genres"`
	YearFrom       *int     `json:"year_from"`
	YearTo         *int     `json:"year_to"`
	MinScore       *float64 `json:"min_score"`
	MinBoxOffice   *int64   `json:"min_box_office"`
	MaxBudget      *int64   `json:"max_budget"`
	AIInstructions string   `json:"ai_instructions"`
}

// UpdatePreferences 整行替换推荐偏好
func (h *Handler) UpdatePreferences(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "偏好格式不正确")
		return
	}

	pref := &model.UserPreference{
		UserID:         userID,
		Languages:      pq.StringArray(req.Languages),
		Genres:         pq.StringArray(req.Genres),
		YearFrom:       req.YearFrom,
		YearTo:         req.YearTo,
		MinScore:       req.MinScore,
		MinBoxOffice:   req.MinBoxOffice,
		MaxBudget:      req.MaxBudget,
		AIInstructions: strings.TrimSpace(req.AIInstructions),
	}
	if err := h.Repos.Preference.Upsert(pref); err != nil {
		utils.InternalServerError(c, "保存偏好失败")
		return
	}

	utils.Success(c, pref)
}
