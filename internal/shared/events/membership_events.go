package events

import (
	"time"
)

// Contratos de integração, NÃO entidades do domínio.
// Definem-se planos para intercâmbio entre contextos.

const MembershipToggledType = "membership.toggled"

type MembershipToggled struct {
	UserID  string    `json:"user_id"`
	EventID string    `json:"event_id"`
	Kind    string    `json:"kind"` // "favorite" | "participation"
	Added   bool      `json:"added"`
	At      time.Time `json:"at"`
}

// PartitionKey agrupa os toggles do mesmo par user/event na mesma partição,
// preservando a ordem relativa entre eles no broker.
func (m MembershipToggled) PartitionKey() string {
	return m.UserID + ":" + m.EventID
}
