package http

import "github.com/gin-gonic/gin"

func RegisterAssistantRoutes(r *gin.Engine, handler *AssistantHandler) {
	users := r.Group("/users")
	{
		users.POST("/:id/assistant", handler.Ask)
		users.GET("/:id/assistant", handler.GetTranscript)
		users.DELETE("/:id/assistant", handler.ClearConversation)
	}
}
