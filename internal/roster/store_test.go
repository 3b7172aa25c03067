package roster

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dotadrafter/draft-client/internal/hero"
)

type fakeSource struct {
	mu        sync.Mutex
	heroes    []hero.Hero
	fetchErr  error
	syncMsg   string
	syncErr   error
	syncGate  chan struct{} // when set, SyncRoster parks until closed
	syncCalls atomic.Int32
}

func (f *fakeSource) FetchRoster(ctx context.Context) ([]hero.Hero, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.heroes, nil
}

func (f *fakeSource) SyncRoster(ctx context.Context) (string, error) {
	f.syncCalls.Add(1)
	if f.syncGate != nil {
		<-f.syncGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.syncMsg, f.syncErr
}

func catalog() []hero.Hero {
	return []hero.Hero{
		{ID: 1, Name: "Axe", PrimaryAttribute: hero.Strength},
		{ID: 2, Name: "Mirana", PrimaryAttribute: hero.Agility},
		{ID: 3, Name: "Lina", PrimaryAttribute: hero.Intelligence},
		{ID: 4, Name: "Sand King", PrimaryAttribute: hero.Universal},
	}
}

func newTestStore(src *fakeSource) *Store {
	return NewStore(src, nil, zap.NewNop())
}

func TestLoad_ReplacesContents(t *testing.T) {
	src := &fakeSource{heroes: catalog()}
	s := newTestStore(src)

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 4, s.Len())

	h, ok := s.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Mirana", h.Name)

	// A reload with a different catalog fully replaces the old one.
	src.mu.Lock()
	src.heroes = []hero.Hero{{ID: 9, Name: "Sven", PrimaryAttribute: hero.Strength}}
	src.mu.Unlock()
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 1, s.Len())
	_, ok = s.FindByID(2)
	assert.False(t, ok)
}

func TestLoad_FailureKeepsPreviousContents(t *testing.T) {
	src := &fakeSource{heroes: catalog()}
	s := newTestStore(src)
	require.NoError(t, s.Load(context.Background()))

	src.mu.Lock()
	src.fetchErr = errors.New("roster source unreachable")
	src.mu.Unlock()

	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, 4, s.Len(), "failed load must leave the store untouched")
	_, ok := s.FindByID(1)
	assert.True(t, ok)
}

func TestFilter(t *testing.T) {
	src := &fakeSource{heroes: catalog()}
	s := newTestStore(src)
	require.NoError(t, s.Load(context.Background()))

	t.Run("empty filter returns full roster in order", func(t *testing.T) {
		got := s.Filter("", "")
		require.Len(t, got, 4)
		assert.Equal(t, catalog(), got)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, s.Filter("zz-no-match", ""))
	})

	t.Run("search is a case-insensitive substring", func(t *testing.T) {
		got := s.Filter("ax", "")
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)

		got = s.Filter("AN", "")
		require.Len(t, got, 2) // Mirana, Sand King
	})

	t.Run("search and attribute must both match", func(t *testing.T) {
		got := s.Filter("ax", hero.Strength)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)

		assert.Empty(t, s.Filter("ax", hero.Agility))
	})

	t.Run("attribute alone", func(t *testing.T) {
		got := s.Filter("", hero.Universal)
		require.Len(t, got, 1)
		assert.Equal(t, "Sand King", got[0].Name)
	})
}

func TestFindByID_Missing(t *testing.T) {
	s := newTestStore(&fakeSource{})
	_, ok := s.FindByID(42)
	assert.False(t, ok)
}

func TestSync_ReloadsAndReturnsMessageVerbatim(t *testing.T) {
	src := &fakeSource{heroes: catalog(), syncMsg: "Successfully synced 4 heroes from OpenDota API"}
	s := newTestStore(src)

	msg, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Successfully synced 4 heroes from OpenDota API", msg)
	assert.Equal(t, 4, s.Len(), "sync performs a load after the upstream refresh")
}

func TestSync_FailurePropagates(t *testing.T) {
	src := &fakeSource{syncErr: errors.New("upstream down")}
	s := newTestStore(src)

	_, err := s.Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestSync_ConcurrentCallsCollapse(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{heroes: catalog(), syncMsg: "ok", syncGate: gate}
	s := newTestStore(src)

	const callers = 5
	var wg sync.WaitGroup
	var entered atomic.Int32
	results := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entered.Add(1)
			msg, err := s.Sync(context.Background())
			if err == nil {
				results <- msg
			}
		}()
	}

	// Let every caller pile onto the in-flight sync, then release it.
	require.Eventually(t, func() bool { return entered.Load() == callers }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return src.syncCalls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(results)

	assert.Equal(t, int32(1), src.syncCalls.Load(), "concurrent syncs must share one upstream call")
	for msg := range results {
		assert.Equal(t, "ok", msg)
	}
}
