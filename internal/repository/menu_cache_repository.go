package repository

import (
	"context"
	"errors"
	"fmt"

	"kiosk/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// menuCacheRepository implements MenuCacheRepository using a single-row
// PostgreSQL table.
type menuCacheRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuCacheRepository creates a new PostgreSQL-backed menu cache repository.
func NewMenuCacheRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuCacheRepository {
	return &menuCacheRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu_cache").Logger(),
	}
}

// Load retrieves the persisted menu snapshot.
func (r *menuCacheRepository) Load(ctx context.Context) (*model.MenuSnapshot, error) {
	query := `
		SELECT categories, products, last_fetch
		FROM menu_cache
		WHERE id = 1
	`

	var snapshot model.MenuSnapshot
	err := r.pool.QueryRow(ctx, query).Scan(&snapshot.Categories, &snapshot.Products, &snapshot.LastFetch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Msg("menu cache is empty")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to load menu cache")
		return nil, fmt.Errorf("failed to load menu cache: %w", err)
	}

	return &snapshot, nil
}

// Save upserts the snapshot unless the stored one was fetched later.
func (r *menuCacheRepository) Save(ctx context.Context, snapshot *model.MenuSnapshot) error {
	query := `
		INSERT INTO menu_cache (id, categories, products, last_fetch, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET categories = EXCLUDED.categories,
		    products = EXCLUDED.products,
		    last_fetch = EXCLUDED.last_fetch,
		    updated_at = NOW()
		WHERE menu_cache.last_fetch <= EXCLUDED.last_fetch
	`

	categories := snapshot.Categories
	if categories == nil {
		categories = []model.Category{}
	}
	products := snapshot.Products
	if products == nil {
		products = []model.Product{}
	}

	tag, err := r.pool.Exec(ctx, query, categories, products, snapshot.LastFetch)
	if err != nil {
		r.logger.Error().Err(err).Time("last_fetch", snapshot.LastFetch).Msg("failed to save menu cache")
		return fmt.Errorf("failed to save menu cache: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Info().
			Time("last_fetch", snapshot.LastFetch).
			Msg("stored menu is newer, snapshot not saved")
		return nil
	}

	r.logger.Debug().
		Int("categories", len(categories)).
		Int("products", len(products)).
		Time("last_fetch", snapshot.LastFetch).
		Msg("menu cache saved")

	return nil
}
