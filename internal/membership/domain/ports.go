package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ToggleRecord é a linha de auditoria de um toggle, tal como é enviada
// para o sink analítico.
type ToggleRecord struct {
	ID      uuid.UUID
	UserID  string
	EventID string
	Kind    Kind
	Added   bool
	Partial bool // true quando só o lado owner ficou escrito
	At      time.Time
}

// ToggleAuditor regista toggles para análise posterior. Best-effort:
// falhas de auditoria nunca afetam o resultado do toggle.
type ToggleAuditor interface {
	RecordToggle(ctx context.Context, rec ToggleRecord) error
}
