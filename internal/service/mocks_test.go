package service

import (
	"context"

	"kiosk/internal/events"
	"kiosk/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockMenuStore is a mock implementation of MenuStore.
type MockMenuStore struct {
	mock.Mock
}

func (m *MockMenuStore) State() model.MenuState {
	args := m.Called()
	return args.Get(0).(model.MenuState)
}

func (m *MockMenuStore) Refresh(ctx context.Context, force bool) error {
	args := m.Called(ctx, force)
	return args.Error(0)
}

func (m *MockMenuStore) Categories() []model.Category {
	args := m.Called()
	return args.Get(0).([]model.Category)
}

func (m *MockMenuStore) Product(id string) (model.Product, bool) {
	args := m.Called(id)
	return args.Get(0).(model.Product), args.Bool(1)
}

func (m *MockMenuStore) ProductsByCategory(categoryID string) ([]model.Product, bool) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]model.Product), args.Bool(1)
}

// MockPrinter is a mock implementation of receipt.Printer.
type MockPrinter struct {
	mock.Mock
}

func (m *MockPrinter) Print(ctx context.Context, receipt string) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderPlaced(ctx context.Context, event events.OrderPlaced, meta events.Metadata) error {
	args := m.Called(ctx, event, meta)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func burger() model.Product {
	return model.Product{
		ID:       "cheeseburger",
		Name:     "Cheeseburger",
		Price:    decimal.NewFromInt(120),
		Category: "burgers",
	}
}

// comboMenu has one required single-choice drink group and one optional,
// unbounded sauce group.
func comboMenu() model.Product {
	return model.Product{
		ID:       "whopper-menu",
		Name:     "Whopper Menü",
		Price:    decimal.RequireFromString("185.50"),
		Category: "menus",
		IsCombo:  true,
		Combo: []model.ComboGroup{
			{
				GroupName:     "İçecek",
				IsForcedGroup: true,
				MaxQuantity:   1,
				Items: []model.ComboItem{
					{MenuItemKey: "cola", MenuItemText: "Kola", ExtraPriceTakeOutTL: decimal.Zero},
					{MenuItemKey: "ayran", MenuItemText: "Ayran", ExtraPriceTakeOutTL: decimal.NewFromInt(5)},
				},
			},
			{
				GroupName:   "Sos",
				MaxQuantity: 0,
				Items: []model.ComboItem{
					{MenuItemKey: "ketchup", MenuItemText: "Ketçap", ExtraPriceTakeOutTL: decimal.Zero},
					{MenuItemKey: "mayo", MenuItemText: "Mayonez", ExtraPriceTakeOutTL: decimal.RequireFromString("2.50")},
				},
			},
		},
	}
}
