package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/annaclara1997/event-buddy-project/internal/membership/application"
	"github.com/annaclara1997/event-buddy-project/internal/membership/domain"
	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
)

// SnapshotInvalidator quebra o ciclo com o módulo de catálogo: depois de
// um toggle, o snapshot em cache do utilizador deixa de ser válido.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// PartialRater expõe a fração de toggles que ficaram parciais, medida
// pelo sink de auditoria.
type PartialRater interface {
	PartialRate(ctx context.Context, windowHours int) (float64, error)
}

// MembershipHandler encapsula os endpoints HTTP de favoritos/participações.
type MembershipHandler struct {
	service   *application.MembershipService
	snapshots SnapshotInvalidator // opcional
	partials  PartialRater        // opcional, só com audit ligado
}

func NewMembershipHandler(service *application.MembershipService, snapshots SnapshotInvalidator, partials PartialRater) *MembershipHandler {
	return &MembershipHandler{service: service, snapshots: snapshots, partials: partials}
}

// ---------------- Handlers ----------------

// ToggleMembership endpoint POST /users/:id/memberships/:kind/:eventId/toggle
func (h *MembershipHandler) ToggleMembership(c *gin.Context) {
	userID := c.Param("id")
	eventID := c.Param("eventId")

	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Add bool `json:"add"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), kind, userID, eventID, req.Add)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Falha parcial: o lado do utilizador já ficou escrito. O payload
		// tem de ser distinguível de uma falha total, porque o cliente
		// pode manter a alteração local que corresponde ao lado gravado.
		var partial *domain.PartialSyncError
		if errors.As(err, &partial) {
			if h.snapshots != nil {
				h.snapshots.Invalidate(c.Request.Context(), userID)
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":          partial.Error(),
				"partial_sync":   true,
				"succeeded_side": partial.SucceededSide,
				"failed_side":    partial.FailedSide,
				"owner_set":      result.OwnerSet,
			})
			return
		}

		var storeErr *sharedDomain.StoreError
		if errors.As(err, &storeErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": storeErr.Error(), "partial_sync": false})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.snapshots != nil {
		h.snapshots.Invalidate(c.Request.Context(), userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":       kind,
		"added":      req.Add,
		"owner_set":  result.OwnerSet,
		"target_set": result.TargetSet,
	})
}

// GetPartialRate endpoint GET /ops/toggles/partial-rate
func (h *MembershipHandler) GetPartialRate(c *gin.Context) {
	if h.partials == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "toggle audit is disabled"})
		return
	}

	window := 24
	if w := c.Query("window_hours"); w != "" {
		v, err := strconv.Atoi(w)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window_hours"})
			return
		}
		window = v
	}

	rate, err := h.partials.PartialRate(c.Request.Context(), window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"window_hours": window, "partial_rate": rate})
}
