package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinevibe/internal/handler"
	"github.com/user/cinevibe/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== API（需要登录）====================
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		// AI 智能推荐
		api.POST("/search/smart-picks", h.SmartPicksHandler)

		// 推荐反馈
		api.POST("/feedback/recommendation", h.SubmitRecommendationFeedback)

		// 推荐偏好
		api.GET("/preferences", h.GetPreferences)
		api.PUT("/preferences", h.UpdatePreferences)
	}
}
