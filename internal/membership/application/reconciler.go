package application

import (
	"context"
	"time"

	"github.com/annaclara1997/event-buddy-project/internal/membership/domain"
	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"

	"go.uber.org/zap"
)

// Reconciler repara violações do invariante de espelho deixadas por
// falhas parciais ou escritas concorrentes. O documento do utilizador é
// a fonte de verdade: o lado owner é escrito primeiro no Toggle, por
// isso os espelhos nos eventos seguem os conjuntos dos utilizadores.
type Reconciler struct {
	store    sharedDomain.Store
	interval time.Duration
	log      *zap.Logger
}

// SweepStats resume as reparações de uma passagem.
type SweepStats struct {
	AddedToEvents     int
	RemovedFromEvents int
}

func NewReconciler(store sharedDomain.Store, interval time.Duration, log *zap.Logger) *Reconciler {
	return &Reconciler{store: store, interval: interval, log: log}
}

// Start arranca o loop de polling em background.
func (r *Reconciler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.log.Info("🚀 membership reconciler iniciado", zap.Duration("interval", r.interval))

		for {
			select {
			case <-ctx.Done():
				r.log.Info("🛑 membership reconciler parado")
				return
			case <-ticker.C:
				stats, err := r.Sweep(ctx)
				if err != nil {
					r.log.Warn("⚠️ reconcile sweep falhou", zap.Error(err))
					continue
				}
				if stats.AddedToEvents > 0 || stats.RemovedFromEvents > 0 {
					r.log.Info("✅ reconcile sweep reparou memberships",
						zap.Int("added_to_events", stats.AddedToEvents),
						zap.Int("removed_from_events", stats.RemovedFromEvents),
					)
				}
			}
		}
	}()
}

// Sweep percorre as duas coleções e repõe o espelho de cada relação.
// Cada reparação é um Set com merge num único documento de evento.
func (r *Reconciler) Sweep(ctx context.Context) (SweepStats, error) {
	var stats SweepStats

	users, err := r.store.List(ctx, sharedDomain.CollectionUsers)
	if err != nil {
		return stats, err
	}
	events, err := r.store.List(ctx, sharedDomain.CollectionEvents)
	if err != nil {
		return stats, err
	}

	eventFields := make(map[string]map[string]any, len(events))
	for _, evt := range events {
		eventFields[evt.ID] = evt.Fields
	}

	kinds := []domain.Kind{domain.KindFavorite, domain.KindParticipation}

	for _, kind := range kinds {
		// conjunto esperado em cada evento, derivado dos documentos dos
		// utilizadores
		expected := make(map[string]map[string]bool)
		for _, user := range users {
			for _, eventID := range sharedDomain.StringsField(user.Fields, kind.OwnerField()) {
				if _, known := eventFields[eventID]; !known {
					continue // referência a evento removido, nada a reparar
				}
				if expected[eventID] == nil {
					expected[eventID] = make(map[string]bool)
				}
				expected[eventID][user.ID] = true
			}
		}

		for _, evt := range events {
			mirror := sharedDomain.StringsField(evt.Fields, kind.TargetField())
			want := expected[evt.ID]

			repaired := make([]string, 0, len(mirror))
			seen := make(map[string]bool, len(mirror))
			for _, userID := range mirror {
				if want[userID] {
					repaired = append(repaired, userID)
					seen[userID] = true
				} else {
					stats.RemovedFromEvents++
				}
			}
			for userID := range want {
				if !seen[userID] {
					repaired = append(repaired, userID)
					stats.AddedToEvents++
				}
			}

			if equalSets(mirror, repaired) {
				continue
			}

			patch := map[string]any{kind.TargetField(): repaired}
			if err := r.store.Set(ctx, sharedDomain.CollectionEvents, evt.ID, patch, true); err != nil {
				return stats, err
			}
		}
	}

	return stats, nil
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}
