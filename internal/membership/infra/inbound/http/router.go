package http

import "github.com/gin-gonic/gin"

func RegisterMembershipRoutes(r *gin.Engine, handler *MembershipHandler) {
	users := r.Group("/users")
	{
		users.POST("/:id/memberships/:kind/:eventId/toggle", handler.ToggleMembership)
	}

	r.GET("/ops/toggles/partial-rate", handler.GetPartialRate)
}
