package roster

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dotadrafter/draft-client/internal/hero"
)

// Source is the remote roster service: a catalog fetch plus the one-shot
// administrative refresh of its upstream.
type Source interface {
	FetchRoster(ctx context.Context) ([]hero.Hero, error)
	SyncRoster(ctx context.Context) (string, error)
}

// Store holds the session's hero catalog. The collection is replaced
// atomically on a successful load and never merged; a failed load leaves the
// previous contents alone.
type Store struct {
	source Source
	cache  *Cache // optional warm cache, may be nil
	log    *zap.Logger

	group singleflight.Group

	mu     sync.RWMutex
	heroes []hero.Hero
	byID   map[int64]hero.Hero
}

func NewStore(source Source, cache *Cache, log *zap.Logger) *Store {
	return &Store{source: source, cache: cache, log: log}
}

// Load fetches the full catalog and swaps it in. The warm cache is updated
// best-effort; a cache write failure does not fail the load.
func (s *Store) Load(ctx context.Context) error {
	heroes, err := s.source.FetchRoster(ctx)
	if err != nil {
		return err
	}
	s.replace(heroes)
	if s.cache != nil {
		if err := s.cache.Save(heroes); err != nil {
			s.log.Warn("roster cache write failed", zap.Error(err))
		}
	}
	return nil
}

// Sync triggers the upstream catalog refresh and then reloads. Concurrent
// calls collapse onto the one in flight and share its result, so a second
// trigger while syncing is a no-op.
func (s *Store) Sync(ctx context.Context) (string, error) {
	v, err, _ := s.group.Do("sync", func() (any, error) {
		msg, err := s.source.SyncRoster(ctx)
		if err != nil {
			return "", err
		}
		if err := s.Load(ctx); err != nil {
			return "", err
		}
		return msg, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// LoadCached fills the store from the local warm cache. Used at startup when
// the roster source is unreachable; the data may be stale.
func (s *Store) LoadCached() error {
	if s.cache == nil {
		return ErrNoCache
	}
	heroes, syncedAt, err := s.cache.LoadAll()
	if err != nil {
		return err
	}
	s.replace(heroes)
	s.log.Info("roster restored from cache",
		zap.Int("heroes", len(heroes)), zap.Time("synced_at", syncedAt))
	return nil
}

func (s *Store) replace(heroes []hero.Hero) {
	byID := make(map[int64]hero.Hero, len(heroes))
	for _, h := range heroes {
		byID[h.ID] = h
	}
	s.mu.Lock()
	s.heroes = heroes
	s.byID = byID
	s.mu.Unlock()
}

func (s *Store) FindByID(id int64) (hero.Hero, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byID[id]
	return h, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.heroes)
}

// Filter returns the heroes whose name contains search (case-insensitive)
// and, when attr is non-empty, whose primary attribute matches. Order is the
// catalog's own.
func (s *Store) Filter(search string, attr hero.Attribute) []hero.Hero {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(search)
	out := make([]hero.Hero, 0, len(s.heroes))
	for _, h := range s.heroes {
		if needle != "" && !strings.Contains(strings.ToLower(h.Name), needle) {
			continue
		}
		if attr != "" && h.PrimaryAttribute != attr {
			continue
		}
		out = append(out, h)
	}
	return out
}
