package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	assistantApp "github.com/annaclara1997/event-buddy-project/internal/assistant/application"
	"github.com/annaclara1997/event-buddy-project/internal/assistant/domain"
	catalogApp "github.com/annaclara1997/event-buddy-project/internal/catalog/application"
)

// AssistantHandler encapsula os endpoints HTTP do assistente. As
// conversas vivem em memória, uma por utilizador; reiniciar o processo
// esvazia os transcripts, o que é aceitável para um chat de sessão.
type AssistantHandler struct {
	assistant *assistantApp.AssistantService
	snapshots *catalogApp.SnapshotService

	mu            sync.Mutex
	conversations map[string]*domain.Conversation
}

func NewAssistantHandler(assistant *assistantApp.AssistantService, snapshots *catalogApp.SnapshotService) *AssistantHandler {
	return &AssistantHandler{
		assistant:     assistant,
		snapshots:     snapshots,
		conversations: make(map[string]*domain.Conversation),
	}
}

func (h *AssistantHandler) conversation(userID string) *domain.Conversation {
	h.mu.Lock()
	defer h.mu.Unlock()
	conv, ok := h.conversations[userID]
	if !ok {
		conv = &domain.Conversation{}
		h.conversations[userID] = conv
	}
	return conv
}

// ---------------- Handlers ----------------

// Ask endpoint POST /users/:id/assistant
func (h *AssistantHandler) Ask(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// O assistente responde sempre sobre um snapshot fresco, para que a
	// resposta reflita os toggles mais recentes do próprio utilizador.
	snap, err := h.snapshots.Load(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, catalogApp.ErrEmptyUserID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	conv := h.conversation(userID)
	reply, err := h.assistant.Ask(c.Request.Context(), conv, req.Message, snap, time.Now())
	if err != nil {
		if errors.Is(err, assistantApp.ErrEmptyUtterance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":      reply,
		"transcript": conv.Messages(),
	})
}

// GetTranscript endpoint GET /users/:id/assistant
func (h *AssistantHandler) GetTranscript(c *gin.Context) {
	conv := h.conversation(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"transcript": conv.Messages()})
}

// ClearConversation endpoint DELETE /users/:id/assistant
func (h *AssistantHandler) ClearConversation(c *gin.Context) {
	conv := h.conversation(c.Param("id"))
	conv.Clear()
	c.Status(http.StatusNoContent)
}
