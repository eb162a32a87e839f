package application

import (
	"context"
	"testing"

	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
	"github.com/annaclara1997/event-buddy-project/tests/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSweep_AddsMissingMirrorEntries(t *testing.T) {
	store := mocks.NewInMemoryStore()
	// falha parcial típica: o utilizador tem o favorito, o evento não
	store.Seed(sharedDomain.CollectionUsers, "u1", map[string]any{"favorites": []string{"e1"}})
	store.Seed(sharedDomain.CollectionEvents, "e1", map[string]any{"favorites": []string{}})

	rec := NewReconciler(store, 0, zap.NewNop())
	stats, err := rec.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.AddedToEvents)
	assert.Equal(t, 0, stats.RemovedFromEvents)
	assert.Equal(t, []string{"u1"}, store.FieldStrings(sharedDomain.CollectionEvents, "e1", "favorites"))
}

func TestSweep_RemovesStaleMirrorEntries(t *testing.T) {
	store := mocks.NewInMemoryStore()
	// o documento do utilizador é a fonte de verdade: u1 já não participa
	store.Seed(sharedDomain.CollectionUsers, "u1", map[string]any{"participations": []string{}})
	store.Seed(sharedDomain.CollectionEvents, "e1", map[string]any{"participants": []string{"u1"}})

	rec := NewReconciler(store, 0, zap.NewNop())
	stats, err := rec.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.RemovedFromEvents)
	assert.Empty(t, store.FieldStrings(sharedDomain.CollectionEvents, "e1", "participants"))
}

func TestSweep_ConsistentStateWritesNothing(t *testing.T) {
	store := mocks.NewInMemoryStore()
	store.Seed(sharedDomain.CollectionUsers, "u1", map[string]any{
		"favorites":      []string{"e1"},
		"participations": []string{"e1"},
	})
	store.Seed(sharedDomain.CollectionEvents, "e1", map[string]any{
		"favorites":    []string{"u1"},
		"participants": []string{"u1"},
	})

	rec := NewReconciler(store, 0, zap.NewNop())
	stats, err := rec.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, stats.AddedToEvents)
	assert.Zero(t, stats.RemovedFromEvents)
	assert.Empty(t, store.SetCalls, "estado coerente não gera escritas")
}

func TestSweep_IgnoresReferencesToRemovedEvents(t *testing.T) {
	store := mocks.NewInMemoryStore()
	store.Seed(sharedDomain.CollectionUsers, "u1", map[string]any{"favorites": []string{"ghost"}})

	rec := NewReconciler(store, 0, zap.NewNop())
	stats, err := rec.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, stats.AddedToEvents)
	assert.Empty(t, store.SetCalls)
}

func TestSweep_RepairsBothKindsIndependently(t *testing.T) {
	store := mocks.NewInMemoryStore()
	store.Seed(sharedDomain.CollectionUsers, "u1", map[string]any{
		"favorites":      []string{"e1"},
		"participations": []string{"e1"},
	})
	store.Seed(sharedDomain.CollectionEvents, "e1", map[string]any{
		"favorites":    []string{},
		"participants": []string{"u1", "u2"}, // u2 não existe
	})

	rec := NewReconciler(store, 0, zap.NewNop())
	stats, err := rec.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.AddedToEvents)
	assert.Equal(t, 1, stats.RemovedFromEvents)
	assert.Equal(t, []string{"u1"}, store.FieldStrings(sharedDomain.CollectionEvents, "e1", "favorites"))
	assert.Equal(t, []string{"u1"}, store.FieldStrings(sharedDomain.CollectionEvents, "e1", "participants"))
}
