package service

import (
	"context"

	"kiosk/internal/model"

	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	store  MenuStore
	logger zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(store MenuStore, logger zerolog.Logger) MenuService {
	return &menuService{
		store:  store,
		logger: logger.With().Str("service", "menu").Logger(),
	}
}

// State returns the current menu, refreshing it when stale.
func (s *menuService) State(ctx context.Context) model.MenuState {
	if err := s.store.Refresh(ctx, false); err != nil {
		s.logger.Warn().Err(err).Msg("menu refresh failed while browsing")
	}
	return s.store.State()
}

// Refresh forces a menu fetch.
func (s *menuService) Refresh(ctx context.Context) (model.MenuState, error) {
	err := s.store.Refresh(ctx, true)
	state := s.store.State()
	if err != nil {
		s.logger.Error().Err(err).Msg("forced menu refresh failed")
		return state, err
	}

	s.logger.Info().
		Int("categories", len(state.Categories)).
		Int("products", len(state.Products)).
		Msg("menu refreshed on request")

	return state, nil
}

// Categories returns all categories.
func (s *menuService) Categories(ctx context.Context) []model.Category {
	if err := s.store.Refresh(ctx, false); err != nil {
		s.logger.Warn().Err(err).Msg("menu refresh failed while listing categories")
	}
	return s.store.Categories()
}

// ProductsByCategory returns the products of a category.
func (s *menuService) ProductsByCategory(ctx context.Context, categoryID string) ([]model.Product, error) {
	if err := s.store.Refresh(ctx, false); err != nil {
		s.logger.Warn().Err(err).Msg("menu refresh failed while listing products")
	}

	products, ok := s.store.ProductsByCategory(categoryID)
	if !ok {
		s.logger.Debug().Str("category_id", categoryID).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}
	return products, nil
}

// Product returns a single product.
func (s *menuService) Product(ctx context.Context, id string) (*model.Product, error) {
	product, ok := s.store.Product(id)
	if !ok {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}
	return &product, nil
}
