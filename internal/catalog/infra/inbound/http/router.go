package http

import "github.com/gin-gonic/gin"

func RegisterCatalogRoutes(r *gin.Engine, handler *CatalogHandler) {
	r.GET("/events", handler.ListEvents)

	users := r.Group("/users")
	{
		users.GET("/:id/snapshot", handler.GetSnapshot)
	}
}
