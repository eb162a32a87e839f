package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/annaclara1997/event-buddy-project/internal/membership/domain"
	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
	sharedEvents "github.com/annaclara1997/event-buddy-project/internal/shared/events"
	sharedBus "github.com/annaclara1997/event-buddy-project/internal/shared/infra/platform/bus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MembershipService mantém coerentes os dois registos de uma relação
// favorite/participation: o conjunto no documento do utilizador e o
// espelho no documento do evento.
type MembershipService struct {
	store  sharedDomain.Store
	events sharedBus.EventBus     // opcional, best-effort
	audit  domain.ToggleAuditor   // opcional, best-effort
	log    *zap.Logger
}

func NewMembershipService(store sharedDomain.Store, events sharedBus.EventBus, audit domain.ToggleAuditor, log *zap.Logger) *MembershipService {
	return &MembershipService{store: store, events: events, audit: audit, log: log}
}

// Toggle executa as duas escritas read-modify-write, lado owner
// estritamente antes do lado target. Não há retry nem rollback: se o
// target falhar depois do owner ter sido escrito, devolve
// PartialSyncError com o conjunto owner já atualizado — o invariante
// fica violado até correção posterior, e o caller tem de o saber.
func (s *MembershipService) Toggle(ctx context.Context, kind domain.Kind, userID, eventID string, shouldAdd bool) (domain.ToggleResult, error) {
	if _, err := domain.ParseKind(string(kind)); err != nil {
		return domain.ToggleResult{}, err
	}
	if userID == "" || eventID == "" {
		return domain.ToggleResult{}, domain.ErrEmptyID
	}

	ownerSet, err := s.updateSetField(ctx, sharedDomain.CollectionUsers, userID, kind.OwnerField(), eventID, shouldAdd)
	if err != nil {
		// nada ficou escrito: falha total, propaga o StoreError
		return domain.ToggleResult{}, err
	}

	targetSet, err := s.updateSetField(ctx, sharedDomain.CollectionEvents, eventID, kind.TargetField(), userID, shouldAdd)
	if err != nil {
		s.recordToggle(kind, userID, eventID, shouldAdd, true)
		return domain.ToggleResult{OwnerSet: ownerSet}, &domain.PartialSyncError{
			Kind:          kind,
			SucceededSide: domain.SideOwner,
			FailedSide:    domain.SideTarget,
			Err:           err,
		}
	}

	s.publishToggled(kind, userID, eventID, shouldAdd)
	s.recordToggle(kind, userID, eventID, shouldAdd, false)

	return domain.ToggleResult{OwnerSet: ownerSet, TargetSet: targetSet}, nil
}

// updateSetField é o read-modify-write de um lado. Cada passo é atómico
// ao nível do documento; a janela entre Get e Set fica exposta a escritas
// concorrentes (last write wins por campo).
func (s *MembershipService) updateSetField(ctx context.Context, collection, docID, field, member string, shouldAdd bool) ([]string, error) {
	doc, err := s.store.Get(ctx, collection, docID)
	if err != nil {
		return nil, err
	}

	current := sharedDomain.StringsField(doc.Fields, field)
	updated := applyMembership(current, member, shouldAdd)

	if err := s.store.Set(ctx, collection, docID, map[string]any{field: updated}, true); err != nil {
		return nil, err
	}
	return updated, nil
}

// applyMembership é idempotente nos dois sentidos: adicionar um membro
// presente ou remover um ausente devolve o conjunto inalterado.
func applyMembership(current []string, member string, shouldAdd bool) []string {
	if shouldAdd {
		for _, m := range current {
			if m == member {
				return current
			}
		}
		return append(current, member)
	}

	updated := make([]string, 0, len(current))
	for _, m := range current {
		if m != member {
			updated = append(updated, m)
		}
	}
	return updated
}

func (s *MembershipService) publishToggled(kind domain.Kind, userID, eventID string, added bool) {
	if s.events == nil {
		return
	}
	evt := sharedEvents.MembershipToggled{
		UserID:  userID,
		EventID: eventID,
		Kind:    string(kind),
		Added:   added,
		At:      time.Now().UTC(),
	}
	payload, _ := json.Marshal(evt)
	integration := sharedEvents.IntegrationEvent{
		Type:      sharedEvents.MembershipToggledType,
		Key:       evt.PartitionKey(),
		Timestamp: evt.At,
		Data:      payload,
	}
	go func() {
		ctxPub, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.events.Publish(ctxPub, integration); err != nil {
			s.log.Warn("⚠️ membership.toggled publish failed", zap.Error(err))
		}
	}()
}

func (s *MembershipService) recordToggle(kind domain.Kind, userID, eventID string, added, partial bool) {
	if s.audit == nil {
		return
	}
	rec := domain.ToggleRecord{
		ID:      uuid.New(),
		UserID:  userID,
		EventID: eventID,
		Kind:    kind,
		Added:   added,
		Partial: partial,
		At:      time.Now().UTC(),
	}
	go func() {
		ctxAudit, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.audit.RecordToggle(ctxAudit, rec); err != nil {
			s.log.Warn("⚠️ toggle audit failed", zap.Error(err))
		}
	}()
}
