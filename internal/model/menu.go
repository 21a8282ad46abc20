package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuEnvelope is the upstream response shape: { "d": { "Menu": [...] } }.
type MenuEnvelope struct {
	D struct {
		Menu []RawCategory `json:"Menu"`
	} `json:"d"`
}

// MenuRequest is the body posted to the upstream menu endpoint.
type MenuRequest struct {
	CurrentMenuLastUpdateDateTime string `json:"currentMenuLastUpdateDateTime"`
}

// RawCategory is a menu group as delivered by upstream.
type RawCategory struct {
	MenuGroupKey  string    `json:"MenuGroupKey"`
	MenuGroupText string    `json:"MenuGroupText"`
	Items         []RawItem `json:"Items"`
}

// RawItem is a menu item as delivered by upstream.
type RawItem struct {
	MenuItemKey     string          `json:"MenuItemKey"`
	MenuItemText    string          `json:"MenuItemText"`
	Description     string          `json:"Description,omitempty"`
	TakeOutPriceTL  decimal.Decimal `json:"TakeOutPrice_TL"`
	DeliveryPriceTL decimal.Decimal `json:"DeliveryPrice_TL"`
	Badges          []string        `json:"Badges"`
	Combo           []ComboGroup    `json:"Combo"`
	IsMainCombo     bool            `json:"IsMainCombo"`
}

// Category is a normalized menu category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Product is a normalized menu item. Combo is only set when IsCombo is true.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	IsSpicy      bool            `json:"isSpicy"`
	IsVegetarian bool            `json:"isVegetarian"`
	IsCombo      bool            `json:"isCombo,omitempty"`
	Combo        []ComboGroup    `json:"Combo,omitempty"`
	Display      DisplayHints    `json:"display"`
}

// DisplayHints holds cosmetic filler generated when upstream omits the data.
// None of these values are authoritative and must not drive business rules.
type DisplayHints struct {
	Rating               float64 `json:"rating"`
	Calories             int     `json:"calories"`
	PrepTimeMinutes      int     `json:"prepTimeMinutes"`
	DescriptionGenerated bool    `json:"descriptionGenerated"`
}

// Menu is the output of one normalization pass.
type Menu struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

// MenuState is what the kiosk sees when browsing: the last known-good menu
// plus the error of the most recent failed refresh, if any.
type MenuState struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
	LastFetch  *time.Time `json:"lastFetch,omitempty"`
	Error      string     `json:"error,omitempty"`
	Stale      bool       `json:"stale"`
}

// MenuSnapshot is the persisted cache record.
type MenuSnapshot struct {
	Categories []Category
	Products   []Product
	LastFetch  time.Time
}
