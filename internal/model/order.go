package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order identifies a checked-out kiosk session.
type Order struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"orderNumber"`
	SessionID uuid.UUID `json:"sessionId"`
	PlacedAt  time.Time `json:"placedAt"`
}

// ComboChoice is one requested combo selection.
type ComboChoice struct {
	GroupName string `json:"groupName"`
	ItemKey   string `json:"itemKey"`
	Quantity  int    `json:"quantity"`
}

// AddItemRequest represents the request payload for adding a product to the cart.
// Selections is required for combo products and must be empty otherwise.
type AddItemRequest struct {
	ProductID  string        `json:"productId"`
	Quantity   int           `json:"quantity,omitempty"`
	Selections []ComboChoice `json:"selections,omitempty"`
}

// UpdateQuantityRequest represents the request payload for changing a cart line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// StartConfigurationRequest opens a combo configuration for a product.
type StartConfigurationRequest struct {
	ProductID string `json:"productId"`
}

// CartLineView is a priced cart line.
type CartLineView struct {
	Index           int             `json:"index"`
	Product         Product         `json:"product"`
	Quantity        int             `json:"quantity"`
	ComboSelections ComboSelections `json:"comboSelections,omitempty"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// CartView represents the response payload for a kiosk session's cart.
type CartView struct {
	SessionID   uuid.UUID       `json:"sessionId"`
	Items       []CartLineView  `json:"items"`
	Total       decimal.Decimal `json:"total"`
	OrderNumber string          `json:"orderNumber,omitempty"`
}

// GroupProgress describes the fill state of one combo group.
type GroupProgress struct {
	GroupName     string  `json:"groupName"`
	IsForcedGroup bool    `json:"isForcedGroup"`
	MaxQuantity   int     `json:"maxQuantity"`
	Selected      int     `json:"selected"`
	Progress      float64 `json:"progress"`
}

// ConfigurationView represents an in-progress combo configuration.
type ConfigurationView struct {
	ProductID  string          `json:"productId"`
	State      string          `json:"state"`
	Complete   bool            `json:"complete"`
	Groups     []GroupProgress `json:"groups"`
	Selections ComboSelections `json:"selections"`
	Extra      decimal.Decimal `json:"extra"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

// CheckoutResponse represents the response payload for a checkout.
type CheckoutResponse struct {
	OrderID     uuid.UUID       `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	Receipt     string          `json:"receipt"`
	Printed     bool            `json:"printed"`
	PrintError  string          `json:"printError,omitempty"`
	PlacedAt    time.Time       `json:"placedAt"`
}
