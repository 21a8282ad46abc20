package handler

import (
	"context"
	"net/http"

	"kiosk/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMenuService is a mock implementation of MenuService.
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) State(ctx context.Context) model.MenuState {
	args := m.Called(ctx)
	return args.Get(0).(model.MenuState)
}

func (m *MockMenuService) Refresh(ctx context.Context) (model.MenuState, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.MenuState), args.Error(1)
}

func (m *MockMenuService) Categories(ctx context.Context) []model.Category {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Category)
}

func (m *MockMenuService) ProductsByCategory(ctx context.Context, categoryID string) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockMenuService) Product(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) cartView(args mock.Arguments) (*model.CartView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockOrderService) configurationView(args mock.Arguments) (*model.ConfigurationView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConfigurationView), args.Error(1)
}

func (m *MockOrderService) StartSession(ctx context.Context) (*model.CartView, error) {
	return m.cartView(m.Called(ctx))
}

func (m *MockOrderService) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockOrderService) GetCart(ctx context.Context, sessionID uuid.UUID) (*model.CartView, error) {
	return m.cartView(m.Called(ctx, sessionID))
}

func (m *MockOrderService) AddItem(ctx context.Context, sessionID uuid.UUID, req *model.AddItemRequest) (*model.CartView, error) {
	return m.cartView(m.Called(ctx, sessionID, req))
}

func (m *MockOrderService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, index, quantity int) (*model.CartView, error) {
	return m.cartView(m.Called(ctx, sessionID, index, quantity))
}

func (m *MockOrderService) RemoveItem(ctx context.Context, sessionID uuid.UUID, index int) (*model.CartView, error) {
	return m.cartView(m.Called(ctx, sessionID, index))
}

func (m *MockOrderService) StartConfiguration(ctx context.Context, sessionID uuid.UUID, productID string) (*model.ConfigurationView, error) {
	return m.configurationView(m.Called(ctx, sessionID, productID))
}

func (m *MockOrderService) GetConfiguration(ctx context.Context, sessionID uuid.UUID) (*model.ConfigurationView, error) {
	return m.configurationView(m.Called(ctx, sessionID))
}

func (m *MockOrderService) SelectComboItem(ctx context.Context, sessionID uuid.UUID, choice model.ComboChoice) (*model.ConfigurationView, error) {
	return m.configurationView(m.Called(ctx, sessionID, choice))
}

func (m *MockOrderService) CommitConfiguration(ctx context.Context, sessionID uuid.UUID) (*model.CartView, error) {
	return m.cartView(m.Called(ctx, sessionID))
}

func (m *MockOrderService) DiscardConfiguration(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockOrderService) Checkout(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

// withURLParams attaches chi route parameters to a request built outside a router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
