package service

import (
	"context"

	"kiosk/internal/model"

	"github.com/google/uuid"
)

// MenuStore is the menu cache the services read from. *menu.Store
// implements it.
type MenuStore interface {
	State() model.MenuState
	Refresh(ctx context.Context, force bool) error
	Categories() []model.Category
	Product(id string) (model.Product, bool)
	ProductsByCategory(categoryID string) ([]model.Product, bool)
}

// MenuService defines read operations over the normalized menu.
type MenuService interface {
	// State returns the menu the kiosk should display, refreshing it first
	// when the cached copy is stale.
	State(ctx context.Context) model.MenuState

	// Refresh forces a fetch. The error is set only when no menu could be
	// shown at all.
	Refresh(ctx context.Context) (model.MenuState, error)

	// Categories returns all categories in upstream order.
	Categories(ctx context.Context) []model.Category

	// ProductsByCategory returns the products of one category.
	ProductsByCategory(ctx context.Context, categoryID string) ([]model.Product, error)

	// Product returns a single product.
	Product(ctx context.Context, id string) (*model.Product, error)
}

// OrderService defines the kiosk session lifecycle: combo configuration,
// cart editing and checkout.
type OrderService interface {
	StartSession(ctx context.Context) (*model.CartView, error)
	EndSession(ctx context.Context, sessionID uuid.UUID) error
	GetCart(ctx context.Context, sessionID uuid.UUID) (*model.CartView, error)

	// AddItem adds a product. Combo products need their selections, which
	// must satisfy every required group.
	AddItem(ctx context.Context, sessionID uuid.UUID, req *model.AddItemRequest) (*model.CartView, error)
	UpdateQuantity(ctx context.Context, sessionID uuid.UUID, index, quantity int) (*model.CartView, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, index int) (*model.CartView, error)

	// StartConfiguration opens a combo configuration, discarding any open one.
	StartConfiguration(ctx context.Context, sessionID uuid.UUID, productID string) (*model.ConfigurationView, error)
	GetConfiguration(ctx context.Context, sessionID uuid.UUID) (*model.ConfigurationView, error)
	SelectComboItem(ctx context.Context, sessionID uuid.UUID, choice model.ComboChoice) (*model.ConfigurationView, error)
	CommitConfiguration(ctx context.Context, sessionID uuid.UUID) (*model.CartView, error)
	DiscardConfiguration(ctx context.Context, sessionID uuid.UUID) error

	// Checkout places the order once and prints its receipt. Repeated calls
	// reprint the same order.
	Checkout(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutResponse, error)
}
