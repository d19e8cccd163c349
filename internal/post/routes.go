package post

import "github.com/gin-gonic/gin"

func SetupRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/:id", h.GetPost)
	r.DELETE("/:id", h.DeletePost)
}
