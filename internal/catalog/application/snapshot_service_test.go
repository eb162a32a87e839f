package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/annaclara1997/event-buddy-project/internal/catalog/domain"
	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
	"github.com/annaclara1997/event-buddy-project/tests/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func seedCatalog(store *mocks.InMemoryStore) {
	store.Seed(sharedDomain.CollectionEvents, "e1", map[string]any{
		"title":    "Concerto no Parque",
		"location": "Lisboa",
		"category": "musica",
		"date":     "2026-09-12",
	})
	store.Seed(sharedDomain.CollectionEvents, "e2", map[string]any{
		"title":    "Feira de Tech",
		"location": "Porto",
		"category": "tech",
		"date":     "2026-08-30",
	})
	store.Seed(sharedDomain.CollectionUsers, "u1", map[string]any{
		"name":           "Ana",
		"favorites":      []string{"e1"},
		"participations": []string{"e2"},
	})
}

func TestLoad_BuildsSnapshot(t *testing.T) {
	store := mocks.NewInMemoryStore()
	seedCatalog(store)
	service := NewSnapshotService(store, nil, 30*time.Second, zap.NewNop())

	snap, err := service.Load(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", snap.DisplayName)
	assert.Len(t, snap.Events, 2)
	assert.True(t, snap.IsFavorite("e1"))
	assert.False(t, snap.IsFavorite("e2"))
	assert.True(t, snap.IsParticipating("e2"))

	// ordenação estável por data
	assert.Equal(t, "e2", snap.Events[0].ID)
	assert.Equal(t, "e1", snap.Events[1].ID)
}

func TestLoad_VersionIsMonotonic(t *testing.T) {
	store := mocks.NewInMemoryStore()
	seedCatalog(store)
	service := NewSnapshotService(store, nil, 30*time.Second, zap.NewNop())

	first, err := service.Load(context.Background(), "u1")
	assert.NoError(t, err)
	second, err := service.Load(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Greater(t, second.Version, first.Version)
}

func TestLoad_MissingUserDocumentYieldsEmptySets(t *testing.T) {
	store := mocks.NewInMemoryStore()
	store.Seed(sharedDomain.CollectionEvents, "e1", map[string]any{"title": "Algo"})
	service := NewSnapshotService(store, nil, 30*time.Second, zap.NewNop())

	snap, err := service.Load(context.Background(), "u-novo")
	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplayName, snap.DisplayName)
	assert.Empty(t, snap.FavoriteIDs)
	assert.Empty(t, snap.ParticipationIDs)
}

func TestLoad_CatalogFailureFailsWholeSnapshot(t *testing.T) {
	store := mocks.NewInMemoryStore()
	seedCatalog(store)
	store.FailList = func(collection string) error { return errors.New("timeout") }
	service := NewSnapshotService(store, nil, 30*time.Second, zap.NewNop())

	snap, err := service.Load(context.Background(), "u1")
	assert.Nil(t, snap, "não há snapshot parcial")

	var loadErr *domain.SnapshotLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoad_UserReadFailureFailsWholeSnapshot(t *testing.T) {
	store := mocks.NewInMemoryStore()
	seedCatalog(store)
	store.FailGet = func(collection, id string) error {
		if collection == sharedDomain.CollectionUsers {
			return errors.New("permission denied")
		}
		return nil
	}
	service := NewSnapshotService(store, nil, 30*time.Second, zap.NewNop())

	snap, err := service.Load(context.Background(), "u1")
	assert.Nil(t, snap)

	var loadErr *domain.SnapshotLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoad_EmptyUserID(t *testing.T) {
	store := mocks.NewInMemoryStore()
	service := NewSnapshotService(store, nil, 30*time.Second, zap.NewNop())

	_, err := service.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestLoad_CacheHitSkipsStore(t *testing.T) {
	store := mocks.NewInMemoryStore()
	store.FailList = func(collection string) error { return errors.New("store não devia ser tocado") }
	cache := mocks.NewDummyCache()
	cache.SetForTest("snapshot:user:u1", domain.NewSnapshot(7, "u1", "Ana", nil, nil, nil))

	service := NewSnapshotService(store, cache, 30*time.Second, zap.NewNop())
	snap, err := service.Load(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), snap.Version)
	assert.Equal(t, "Ana", snap.DisplayName)
}

// slowCache atrasa cada Set, para expor corridas entre o fill do cache e
// um Invalidate subsequente.
type slowCache struct {
	*mocks.DummyCache
	delay time.Duration
}

func (c *slowCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	time.Sleep(c.delay)
	return c.DummyCache.Set(ctx, key, val, ttlSecs)
}

func TestLoad_FillNeverOvertakesInvalidate(t *testing.T) {
	store := mocks.NewInMemoryStore()
	seedCatalog(store)
	cache := &slowCache{DummyCache: mocks.NewDummyCache(), delay: 50 * time.Millisecond}
	service := NewSnapshotService(store, cache, 30*time.Second, zap.NewNop())

	first, err := service.Load(context.Background(), "u1")
	assert.NoError(t, err)
	assert.False(t, first.IsFavorite("e2"))

	// toggle: o novo favorito entra no store e o snapshot em cache cai
	store.Seed(sharedDomain.CollectionUsers, "u1", map[string]any{
		"name":      "Ana",
		"favorites": []string{"e1", "e2"},
	})
	service.Invalidate(context.Background(), "u1")

	// janela em que uma escrita atrasada do primeiro Load poderia aterrar
	time.Sleep(2 * cache.delay)

	second, err := service.Load(context.Background(), "u1")
	assert.NoError(t, err)
	assert.True(t, second.IsFavorite("e2"), "o fill do primeiro Load não pode reescrever o snapshot antigo")
}

func TestInvalidate_RemovesCachedSnapshot(t *testing.T) {
	store := mocks.NewInMemoryStore()
	seedCatalog(store)
	cache := mocks.NewDummyCache()
	cache.SetForTest("snapshot:user:u1", domain.NewSnapshot(7, "u1", "Ana", nil, nil, nil))

	service := NewSnapshotService(store, cache, 30*time.Second, zap.NewNop())
	service.Invalidate(context.Background(), "u1")

	snap, err := service.Load(context.Background(), "u1")
	assert.NoError(t, err)
	assert.NotEqual(t, int64(7), snap.Version, "o Load seguinte reconstrói do store")
}
