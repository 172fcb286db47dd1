package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinevibe/internal/middleware"
)

// maxSmartPicksCount 单次请求最多返回的推荐数
const maxSmartPicksCount = 10

// SmartPicksRequest 智能推荐请求体
type SmartPicksRequest struct {
	Count int    `json:"count"`
	Query string `json:"query"`
}

// SmartPicksHandler AI 智能推荐
// 成功返回 {success, movies, rawCompletionText, metadata}；
// 失败统一返回 {error, details}，不把裸异常漏给客户端
func (h *Handler) SmartPicksHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录", "details": "missing user session"})
		return
	}

	// 配置错误在任何阶段执行前就拦下
	if h.Config.PerplexityKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "AI 服务未配置",
			"details": "PERPLEXITY_API_KEY is not set",
		})
		return
	}

	// 请求体可以为空，缺省取 10 部
	var req SmartPicksRequest
	_ = c.ShouldBindJSON(&req)

	count := req.Count
	if count <= 0 {
		count = maxSmartPicksCount
	}
	if count > maxSmartPicksCount {
		count = maxSmartPicksCount
	}

	start := time.Now()
	result, err := h.SmartPicks.GetSmartPicks(userID, count, strings.TrimSpace(req.Query))
	if err != nil {
		log.Printf("[SmartPicks] 用户 %d 推荐失败: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "智能推荐生成失败",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"movies":            result.Movies,
		"rawCompletionText": result.RawText,
		"metadata": gin.H{
			"userRatingsCount": result.RatingsCount,
			"moviesFound":      len(result.Movies),
			"durationMs":       time.Since(start).Milliseconds(),
		},
	})
}
