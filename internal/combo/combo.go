// Package combo enforces combo-meal selection rules: required groups,
// per-group quantity caps and completion state.
package combo

import (
	"kiosk/internal/model"

	"github.com/shopspring/decimal"
)

// State is the lifecycle state of a configuration session.
type State string

const (
	StateIncomplete State = "incomplete"
	StateComplete   State = "complete"
	StateCommitted  State = "committed"
)

// GroupTotal returns the summed quantity selected in the named group.
func GroupTotal(selections model.ComboSelections, groupName string) int {
	total := 0
	for _, sel := range selections[groupName] {
		if sel.Quantity > 0 {
			total += sel.Quantity
		}
	}
	return total
}

// Progress returns a 0-100 fill indicator for a group. Bounded groups report
// the share of MaxQuantity used; unbounded groups report 0 or 100 depending on
// whether anything is selected. It is a display signal, not an ordering gate.
func Progress(group model.ComboGroup, selections model.ComboSelections) float64 {
	total := GroupTotal(selections, group.GroupName)
	if group.MaxQuantity > 0 {
		progress := 100 * float64(total) / float64(group.MaxQuantity)
		if progress > 100 {
			return 100
		}
		return progress
	}
	if total > 0 {
		return 100
	}
	return 0
}

// IsComplete reports whether every forced group has at least one selection.
// Optional groups never block completion.
func IsComplete(groups []model.ComboGroup, selections model.ComboSelections) bool {
	for _, group := range groups {
		if group.IsForcedGroup && GroupTotal(selections, group.GroupName) < 1 {
			return false
		}
	}
	return true
}

// WithinLimits reports whether no bounded group exceeds its MaxQuantity.
func WithinLimits(groups []model.ComboGroup, selections model.ComboSelections) bool {
	for _, group := range groups {
		if group.MaxQuantity > 0 && GroupTotal(selections, group.GroupName) > group.MaxQuantity {
			return false
		}
	}
	return true
}

// Extra sums ExtraPriceTakeOut_TL x quantity over every selected item.
func Extra(selections model.ComboSelections) decimal.Decimal {
	extra := decimal.Zero
	for _, group := range selections {
		for _, sel := range group {
			if sel.Quantity <= 0 {
				continue
			}
			extra = extra.Add(sel.Item.ExtraPriceTakeOutTL.Mul(decimal.NewFromInt(int64(sel.Quantity))))
		}
	}
	return extra
}
