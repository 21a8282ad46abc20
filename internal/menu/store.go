package menu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kiosk/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultFreshness is how long a fetched menu is served without refetching.
const DefaultFreshness = 5 * time.Minute

// CacheRepository persists the last known-good menu across restarts.
type CacheRepository interface {
	// Load returns the persisted snapshot, or nil when none exists.
	Load(ctx context.Context) (*model.MenuSnapshot, error)

	// Save stores the snapshot unless a newer one is already stored.
	Save(ctx context.Context, snapshot *model.MenuSnapshot) error
}

// Fetcher is the part of ResilientSource the store depends on.
type Fetcher interface {
	Fetch(ctx context.Context) FetchResult
}

// Store holds the current menu and refreshes it from upstream.
type Store struct {
	fetcher    Fetcher
	normalizer *Normalizer
	cache      CacheRepository
	freshness  time.Duration
	now        func() time.Time
	logger     zerolog.Logger

	group singleflight.Group

	mu         sync.RWMutex
	categories []model.Category
	products   []model.Product
	index      map[string]int
	lastFetch  time.Time
	lastErr    string
}

// NewStore creates a Store. cache may be nil.
func NewStore(fetcher Fetcher, normalizer *Normalizer, cache CacheRepository, freshness time.Duration, logger zerolog.Logger) *Store {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}

	return &Store{
		fetcher:    fetcher,
		normalizer: normalizer,
		cache:      cache,
		freshness:  freshness,
		now:        time.Now,
		logger:     logger.With().Str("component", "menu-store").Logger(),
	}
}

// Load restores the persisted menu. A missing snapshot leaves the store empty.
func (s *Store) Load(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	snapshot, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load persisted menu")
		return fmt.Errorf("failed to load persisted menu: %w", err)
	}
	if snapshot == nil {
		s.logger.Info().Msg("no persisted menu found")
		return nil
	}

	menu := &model.Menu{Categories: snapshot.Categories, Products: snapshot.Products}
	if s.apply(menu, snapshot.LastFetch) {
		s.logger.Info().
			Int("categories", len(snapshot.Categories)).
			Int("products", len(snapshot.Products)).
			Time("last_fetch", snapshot.LastFetch).
			Msg("persisted menu restored")
	}

	return nil
}

// Refresh fetches the menu unless the cached copy is still fresh. Concurrent
// callers share one fetch. On failure the cached menu is kept and the error
// recorded; the error is returned only when no menu was held before.
func (s *Store) Refresh(ctx context.Context, force bool) error {
	if !force && s.fresh() {
		s.logger.Debug().Msg("menu is fresh, skipping fetch")
		return nil
	}

	_, err, shared := s.group.Do("menu", func() (interface{}, error) {
		return nil, s.refresh(ctx)
	})
	if shared {
		s.logger.Debug().Msg("joined in-flight menu refresh")
	}

	return err
}

func (s *Store) refresh(ctx context.Context) error {
	started := s.now()
	s.logger.Info().Msg("refreshing menu")

	result := s.fetcher.Fetch(ctx)
	if result.Fallback {
		return s.fail(result.Err, result.Categories)
	}

	menu, err := s.normalizer.Map(result.Categories)
	if err != nil {
		return s.fail(err, FallbackCatalog())
	}

	if !s.apply(menu, started) {
		s.logger.Info().Time("started", started).Msg("newer menu already applied, discarding result")
		return nil
	}

	s.logger.Info().
		Int("categories", len(menu.Categories)).
		Int("products", len(menu.Products)).
		Msg("menu refreshed")

	if s.cache != nil {
		snapshot := &model.MenuSnapshot{
			Categories: menu.Categories,
			Products:   menu.Products,
			LastFetch:  started,
		}
		if err := s.cache.Save(ctx, snapshot); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist menu")
		}
	}

	return nil
}

// apply installs menu as a successful result fetched at fetchedAt. It is a
// no-op when a newer result is already in place.
func (s *Store) apply(menu *model.Menu, fetchedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastFetch.IsZero() && fetchedAt.Before(s.lastFetch) {
		return false
	}

	s.install(menu)
	s.lastFetch = fetchedAt
	s.lastErr = ""
	return true
}

// fail records cause. Substitute data is installed only into an empty store.
func (s *Store) fail(cause error, substitute []model.RawCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = cause.Error()

	if len(s.categories) > 0 || len(s.products) > 0 {
		s.logger.Warn().Err(cause).Msg("menu refresh failed, keeping cached menu")
		return nil
	}

	if menu, err := s.normalizer.Map(substitute); err == nil {
		s.install(menu)
		s.logger.Warn().Err(cause).Msg("menu refresh failed with no cached menu, serving fallback")
	} else {
		s.logger.Error().Err(cause).Msg("menu refresh failed with no cached menu")
	}

	return fmt.Errorf("menu refresh failed: %w", cause)
}

// install must be called with mu held.
func (s *Store) install(menu *model.Menu) {
	s.categories = menu.Categories
	s.products = menu.Products
	s.index = make(map[string]int, len(menu.Products))
	for i, p := range menu.Products {
		if _, ok := s.index[p.ID]; !ok {
			s.index[p.ID] = i
		}
	}
}

func (s *Store) fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.freshLocked()
}

func (s *Store) freshLocked() bool {
	if len(s.products) == 0 || s.lastFetch.IsZero() {
		return false
	}
	return s.now().Sub(s.lastFetch) < s.freshness
}

// State returns a copy of the current menu and refresh status.
func (s *Store) State() model.MenuState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := model.MenuState{
		Categories: append([]model.Category{}, s.categories...),
		Products:   append([]model.Product{}, s.products...),
		Error:      s.lastErr,
		Stale:      !s.freshLocked(),
	}
	if !s.lastFetch.IsZero() {
		lastFetch := s.lastFetch
		state.LastFetch = &lastFetch
	}

	return state
}

// Categories returns the current categories in upstream order.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Category{}, s.categories...)
}

// Product looks up a product by id.
func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Product{}, false
	}
	return s.products[i], true
}

// ProductsByCategory returns the products of a category. The second result
// reports whether the category exists.
func (s *Store) ProductsByCategory(categoryID string) ([]model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := false
	for _, c := range s.categories {
		if c.ID == categoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	products := make([]model.Product, 0)
	for _, p := range s.products {
		if p.Category == categoryID {
			products = append(products, p)
		}
	}
	return products, true
}
