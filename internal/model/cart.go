package model

// CartItem is one line of the cart. ComboSelections is set only for combo
// products and was complete when the line was added.
type CartItem struct {
	Product         Product         `json:"product"`
	Quantity        int             `json:"quantity"`
	ComboSelections ComboSelections `json:"comboSelections,omitempty"`
}
