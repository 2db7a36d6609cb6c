package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/users")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.PATCH("/me", h.UpdateMe)
		group.DELETE("/me", h.DeleteMe)
		group.GET("/:id", h.Get)
	}
}
