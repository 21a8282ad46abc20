package model

import "github.com/shopspring/decimal"

// ComboGroup is a named set of selectable sub-items of a combo product.
// MaxQuantity of 0 means the group total is unbounded.
type ComboGroup struct {
	GroupName     string      `json:"GroupName"`
	IsForcedGroup bool        `json:"IsForcedGroup"`
	MaxQuantity   int         `json:"MaxQuantity"`
	Items         []ComboItem `json:"Items"`
}

// ComboItem is one selectable entry of a combo group.
type ComboItem struct {
	MenuItemKey         string          `json:"MenuItemKey"`
	MenuItemText        string          `json:"MenuItemText"`
	Description         string          `json:"Description,omitempty"`
	ExtraPriceTakeOutTL decimal.Decimal `json:"ExtraPriceTakeOut_TL"`
}

// ComboSelection is the chosen quantity of one combo item.
type ComboSelection struct {
	Item     ComboItem `json:"item"`
	Quantity int       `json:"quantity"`
}

// ComboSelections maps a group name to its selections in the order they were
// first made. Entries with quantity 0 are treated as absent.
type ComboSelections map[string][]ComboSelection

// Clone returns a deep copy without zero-quantity entries.
func (s ComboSelections) Clone() ComboSelections {
	if s == nil {
		return nil
	}
	out := make(ComboSelections, len(s))
	for group, selections := range s {
		kept := make([]ComboSelection, 0, len(selections))
		for _, sel := range selections {
			if sel.Quantity > 0 {
				kept = append(kept, sel)
			}
		}
		if len(kept) > 0 {
			out[group] = kept
		}
	}
	return out
}
