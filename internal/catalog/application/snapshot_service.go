package application

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/annaclara1997/event-buddy-project/internal/catalog/domain"
	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
	sharedCache "github.com/annaclara1997/event-buddy-project/internal/shared/infra/platform/cache"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyUserID = errors.New("empty user id")

// SnapshotService produz snapshots ponto-no-tempo do catálogo e dos
// conjuntos de membership do utilizador. Um Load corresponde a um
// "ecrã ficou visível": recarrega tudo, nunca faz updates incrementais.
type SnapshotService struct {
	store   sharedDomain.Store
	cache   sharedCache.Cache
	ttl     time.Duration
	version atomic.Int64
	log     *zap.Logger
}

func NewSnapshotService(store sharedDomain.Store, cache sharedCache.Cache, ttl time.Duration, log *zap.Logger) *SnapshotService {
	return &SnapshotService{store: store, cache: cache, ttl: ttl, log: log}
}

func snapshotCacheKey(userID string) string {
	return "snapshot:user:" + userID
}

// Load lê o catálogo completo e o documento do utilizador em paralelo.
// Qualquer falha parcial falha o snapshot inteiro: o caller fica com o
// snapshot anterior em vez de receber metade de um novo.
func (s *SnapshotService) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if userID == "" {
		return nil, &domain.SnapshotLoadError{UserID: userID, Cause: ErrEmptyUserID}
	}

	// fast path: snapshot ainda fresco de um Load recente
	if s.cache != nil {
		var cached domain.Snapshot
		if ok, _ := s.cache.Get(ctx, snapshotCacheKey(userID), &cached); ok {
			return &cached, nil
		}
	}

	var (
		events  []domain.Event
		userDoc sharedDomain.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		docs, err := s.store.List(gctx, sharedDomain.CollectionEvents)
		if err != nil {
			return err
		}
		events = make([]domain.Event, 0, len(docs))
		for _, doc := range docs {
			events = append(events, domain.EventFromFields(doc.ID, doc.Fields))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		userDoc, err = s.store.Get(gctx, sharedDomain.CollectionUsers, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, &domain.SnapshotLoadError{UserID: userID, Cause: err}
	}

	// Ordenação estável por data, como o catálogo original. É esta ordem
	// que o assistente usa para desempatar eventos com a mesma data.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Datetime < events[j].Datetime
	})

	snap := domain.NewSnapshot(
		s.version.Add(1),
		userID,
		domain.DisplayNameFromFields(userDoc.Fields),
		events,
		sharedDomain.StringsField(userDoc.Fields, "favorites"),
		sharedDomain.StringsField(userDoc.Fields, "participations"),
	)

	// A escrita no cache acontece antes de devolver: um Invalidate emitido
	// depois de o Load terminar nunca é ultrapassado por um fill em voo.
	if s.cache != nil {
		ctxCache, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		if err := s.cache.Set(ctxCache, snapshotCacheKey(userID), snap, int(s.ttl.Seconds())); err != nil {
			s.log.Warn("⚠️ snapshot cache update failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return snap, nil
}

// Invalidate remove o snapshot em cache de um utilizador. É chamado após
// um toggle para que o próximo Load reflita a alteração.
func (s *SnapshotService) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, snapshotCacheKey(userID)); err != nil {
		s.log.Warn("⚠️ snapshot cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
