package campaign

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/CreateCampaign", h.CreateCampaign)
	r.GET("/list", h.ListCampaigns)
	r.GET("/:id", h.GetCampaign)
	r.POST("/:id/posts", h.CreatePost)
	r.GET("/:id/posts", h.ListPosts)
	r.GET("/:id/analytics", h.GetAnalytics)
	r.GET("/:id/performance", h.GetPerformance)
	r.POST("/:id/refresh", h.RefreshSnapshots)

	h.log.Info("маршруты кампаний зарегистрированы")
}
