package service

import (
	"context"
	"sync"
	"time"

	"github.com/devfolio/portfolio-backend/internal/projects/cache"
	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

// refreshWindow bounds the manual refresh: its live subscription is torn
// down after this long whether or not a snapshot arrived.
const refreshWindow = 1 * time.Second

// Store is the ordered live collection the sync service runs against.
// Production uses the Firestore repository; tests swap in a fake that
// replays scripted snapshots.
type Store interface {
	Listen(ctx context.Context, onUpdate func([]domain.Project)) (cancel func(), err error)
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, draft domain.Draft) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Project, error)
}

// SyncService delivers an up-to-date ordered project list to subscribers,
// short-circuiting the remote subscription through the snapshot cache, and
// passes admin CRUD through to the remote store.
type SyncService struct {
	store Store
	cache *cache.SnapshotCache
}

func NewSyncService(store Store, snapshots *cache.SnapshotCache) *SyncService {
	return &SyncService{store: store, cache: snapshots}
}

// Subscribe registers onUpdate for project-list changes.
//
// With forceRefresh false and a non-expired cached snapshot, onUpdate is
// invoked exactly once, synchronously, with the cached list and no live
// connection is opened; the returned cancel is a no-op. Otherwise a live
// subscription is opened and every remote change invokes onUpdate with the
// full recomputed list, refreshing the cache each time.
//
// The returned cancel terminates the subscription and guarantees no further
// callbacks; calling it more than once is safe.
func (s *SyncService) Subscribe(ctx context.Context, onUpdate func([]domain.Project), forceRefresh bool) (func(), error) {
	if !forceRefresh {
		if cached, ok := s.cache.Get(ctx); ok {
			onUpdate(cached)
			return func() {}, nil
		}
	}

	var (
		mu     sync.Mutex
		closed bool
	)

	cancelListen, err := s.store.Listen(ctx, func(projects []domain.Project) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		s.cache.Set(ctx, projects)
		onUpdate(projects)
	})
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			closed = true
			mu.Unlock()
			cancelListen()
		})
	}, nil
}

// List is the request/response flavor of Subscribe: cached snapshot when
// fresh (unless forced), otherwise a single-shot remote read that refreshes
// the cache.
func (s *SyncService) List(ctx context.Context, forceRefresh bool) ([]domain.Project, error) {
	if !forceRefresh {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, projects)
	return projects, nil
}

// Refresh is the explicit manual refresh: it opens a live subscription,
// keeps the latest snapshot, and self-terminates after a fixed one-second
// window regardless of whether data arrived. It returns the freshest list
// observed, which may be nil if the window elapsed empty.
func (s *SyncService) Refresh(ctx context.Context) ([]domain.Project, error) {
	var (
		mu     sync.Mutex
		latest []domain.Project
	)

	cancel, err := s.Subscribe(ctx, func(projects []domain.Project) {
		mu.Lock()
		latest = projects
		mu.Unlock()
	}, true)
	if err != nil {
		return nil, err
	}
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(refreshWindow):
	}

	mu.Lock()
	defer mu.Unlock()
	return latest, nil
}

// Create validates the draft and writes it through to the remote store,
// which assigns the id and server timestamp.
func (s *SyncService) Create(ctx context.Context, draft domain.Draft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.Create(ctx, draft)
	if err != nil {
		return "", &domain.RemoteWriteError{Op: "create", Err: err}
	}
	return id, nil
}

// Update merges the given fields into the project and refreshes its server
// timestamp. Fields absent from the map are untouched.
func (s *SyncService) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.store.Update(ctx, id, fields); err != nil {
		return &domain.RemoteWriteError{Op: "update", Err: err}
	}
	return nil
}

// Delete removes the project. Confirmation is a UI concern; there is no
// undo at this layer.
func (s *SyncService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return &domain.RemoteWriteError{Op: "delete", Err: err}
	}
	return nil
}

// Get fetches one project; a missing id surfaces domain.ErrProjectNotFound.
func (s *SyncService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}
