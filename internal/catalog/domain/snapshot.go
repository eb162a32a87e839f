package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDisplayName é usado quando o documento do utilizador não tem nome.
const DefaultDisplayName = "Utilizador"

// Snapshot é uma cópia imutável, de um instante, do catálogo e dos
// conjuntos de membership do utilizador autenticado. Nunca é mutado:
// um refresh substitui o snapshot inteiro, para que um render em curso
// nunca veja um estado meio atualizado.
type Snapshot struct {
	Version          int64           `json:"version"`
	TakenAt          time.Time       `json:"taken_at"`
	UserID           string          `json:"user_id"`
	DisplayName      string          `json:"display_name"`
	Events           []Event         `json:"events"`
	FavoriteIDs      map[string]bool `json:"favorite_ids"`
	ParticipationIDs map[string]bool `json:"participation_ids"`
}

// NewSnapshot constrói o snapshot a partir dos conjuntos lidos do store.
func NewSnapshot(version int64, userID, displayName string, events []Event, favoriteIDs, participationIDs []string) *Snapshot {
	favs := make(map[string]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favs[id] = true
	}
	parts := make(map[string]bool, len(participationIDs))
	for _, id := range participationIDs {
		parts[id] = true
	}
	if displayName == "" {
		displayName = DefaultDisplayName
	}
	return &Snapshot{
		Version:          version,
		TakenAt:          time.Now().UTC(),
		UserID:           userID,
		DisplayName:      displayName,
		Events:           events,
		FavoriteIDs:      favs,
		ParticipationIDs: parts,
	}
}

func (s *Snapshot) IsFavorite(eventID string) bool {
	return s != nil && s.FavoriteIDs[eventID]
}

func (s *Snapshot) IsParticipating(eventID string) bool {
	return s != nil && s.ParticipationIDs[eventID]
}

// DisplayNameFromFields extrai o nome de apresentação do documento do
// utilizador. String vazia significa "usa o default".
func DisplayNameFromFields(fields map[string]any) string {
	return strings.TrimSpace(stringField(fields, "name"))
}

// SnapshotLoadError sinaliza que o refresh falhou por inteiro. O caller
// mantém o snapshot anterior (stale mas utilizável) em vez de o limpar.
type SnapshotLoadError struct {
	UserID string
	Cause  error
}

func (e *SnapshotLoadError) Error() string {
	return fmt.Sprintf("snapshot load for user %s: %v", e.UserID, e.Cause)
}

func (e *SnapshotLoadError) Unwrap() error { return e.Cause }
