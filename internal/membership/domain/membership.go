package domain

import (
	"errors"
	"fmt"
)

// Kind identifica a relação entre utilizador e evento.
type Kind string

const (
	KindFavorite      Kind = "favorite"
	KindParticipation Kind = "participation"
)

// ---------- Erros de domínio ----------
var (
	ErrEmptyID     = errors.New("user and event ids must be non-empty")
	ErrUnknownKind = errors.New("unknown membership kind")
)

// ParseKind valida a string vinda do caller (URL, payload).
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFavorite, KindParticipation:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// OwnerField é o campo de conjunto no documento do utilizador.
func (k Kind) OwnerField() string {
	if k == KindParticipation {
		return "participations"
	}
	return "favorites"
}

// TargetField é o campo espelho no documento do evento. Note a assimetria
// histórica: as participações chamam-se "participants" do lado do evento.
func (k Kind) TargetField() string {
	if k == KindParticipation {
		return "participants"
	}
	return "favorites"
}

// Side identifica qual dos dois documentos foi escrito.
type Side string

const (
	SideOwner  Side = "owner"  // documento do utilizador
	SideTarget Side = "target" // documento do evento
)

// ToggleResult devolve os conjuntos já atualizados de cada lado, para que
// o caller comprometa a UI com o último estado confirmado em vez de
// assumir sucesso.
type ToggleResult struct {
	OwnerSet  []string `json:"owner_set"`
	TargetSet []string `json:"target_set"`
}

// PartialSyncError: o lado owner foi escrito e o lado target falhou.
// O invariante de espelho está violado até um toggle corretivo ou à
// passagem do reconciler. Tem de ser distinguível de uma falha total,
// porque a UI pode já refletir o lado que ficou escrito.
type PartialSyncError struct {
	Kind          Kind
	SucceededSide Side
	FailedSide    Side
	Err           error
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("partial %s sync: %s side updated, %s side failed: %v",
		e.Kind, e.SucceededSide, e.FailedSide, e.Err)
}

func (e *PartialSyncError) Unwrap() error { return e.Err }
