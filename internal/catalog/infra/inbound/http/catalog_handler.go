package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/annaclara1997/event-buddy-project/internal/catalog/application"
	"github.com/annaclara1997/event-buddy-project/internal/catalog/domain"
)

// CatalogHandler encapsula os endpoints HTTP do catálogo de eventos.
type CatalogHandler struct {
	service *application.SnapshotService
}

func NewCatalogHandler(service *application.SnapshotService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ---------------- Handlers ----------------

// GetSnapshot endpoint GET /users/:id/snapshot
func (h *CatalogHandler) GetSnapshot(c *gin.Context) {
	userID := c.Param("id")

	snap, err := h.service.Load(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, application.ErrEmptyUserID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		// Falha de load é tudo-ou-nada: não devolvemos metade de um
		// snapshot. O cliente mantém o que já tinha (stale mas utilizável).
		var loadErr *domain.SnapshotLoadError
		if errors.As(err, &loadErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": loadErr.Error()})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// ListEvents endpoint GET /events devolve o catálogo sem contexto de
// utilizador (útil para o ecrã público).
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	snap, err := h.service.Load(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		if errors.Is(err, application.ErrEmptyUserID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query param is required"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": snap.Version, "events": snap.Events})
}
