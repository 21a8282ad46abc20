package combo

import (
	"kiosk/internal/model"

	"github.com/shopspring/decimal"
)

// Session holds the selection state of one product-detail interaction.
// It is discarded on navigation away and closed once committed.
type Session struct {
	product    model.Product
	groups     map[string]model.ComboGroup
	selections model.ComboSelections
	committed  bool
}

// NewSession starts a configuration session for a combo product.
func NewSession(product model.Product) (*Session, error) {
	if !product.IsCombo || len(product.Combo) == 0 {
		return nil, model.ErrNotCombo
	}

	groups := make(map[string]model.ComboGroup, len(product.Combo))
	for _, group := range product.Combo {
		groups[group.GroupName] = group
	}

	return &Session{
		product:    product,
		groups:     groups,
		selections: make(model.ComboSelections),
	}, nil
}

// Product returns the product being configured.
func (s *Session) Product() model.Product {
	return s.product
}

// Groups returns the product's combo groups in menu order.
func (s *Session) Groups() []model.ComboGroup {
	return s.product.Combo
}

// Select sets the quantity of an item within a group. A quantity of 0 removes
// the item. A request that would push a bounded group above MaxQuantity is
// rejected with ErrComboConstraint and leaves the selections unchanged.
func (s *Session) Select(groupName, itemKey string, quantity int) (model.ComboSelections, error) {
	if s.committed {
		return s.Selections(), model.ErrConfigurationClosed
	}
	if quantity < 0 {
		return s.Selections(), model.ErrInvalidQuantity
	}

	group, ok := s.groups[groupName]
	if !ok {
		return s.Selections(), model.ErrUnknownComboGroup
	}

	item, ok := findItem(group, itemKey)
	if !ok {
		return s.Selections(), model.ErrUnknownComboItem
	}

	current := s.selections[groupName]
	index := -1
	existing := 0
	for i, sel := range current {
		if sel.Item.MenuItemKey == itemKey {
			index = i
			existing = sel.Quantity
			break
		}
	}

	newTotal := GroupTotal(s.selections, groupName) - existing + quantity
	if group.MaxQuantity > 0 && newTotal > group.MaxQuantity {
		return s.Selections(), model.ErrComboConstraint
	}

	switch {
	case quantity == 0 && index >= 0:
		current = append(current[:index:index], current[index+1:]...)
	case quantity == 0:
		// nothing selected, nothing to remove
	case index >= 0:
		current[index].Quantity = quantity
	default:
		current = append(current, model.ComboSelection{Item: item, Quantity: quantity})
	}

	if len(current) == 0 {
		delete(s.selections, groupName)
	} else {
		s.selections[groupName] = current
	}

	return s.Selections(), nil
}

// Selections returns a copy of the current selections.
func (s *Session) Selections() model.ComboSelections {
	return s.selections.Clone()
}

// Quantity returns the selected quantity of an item within a group.
func (s *Session) Quantity(groupName, itemKey string) int {
	for _, sel := range s.selections[groupName] {
		if sel.Item.MenuItemKey == itemKey {
			return sel.Quantity
		}
	}
	return 0
}

// Progress returns the fill indicator of the named group, 0 if unknown.
func (s *Session) Progress(groupName string) float64 {
	group, ok := s.groups[groupName]
	if !ok {
		return 0
	}
	return Progress(group, s.selections)
}

// IsComplete reports whether every forced group is satisfied.
func (s *Session) IsComplete() bool {
	return IsComplete(s.product.Combo, s.selections) && WithinLimits(s.product.Combo, s.selections)
}

// Extra returns the surcharge of the current selections.
func (s *Session) Extra() decimal.Decimal {
	return Extra(s.selections)
}

// UnitPrice returns the product price plus the selection surcharge.
func (s *Session) UnitPrice() decimal.Decimal {
	return s.product.Price.Add(s.Extra())
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	if s.committed {
		return StateCommitted
	}
	if s.IsComplete() {
		return StateComplete
	}
	return StateIncomplete
}

// Commit closes the session and hands over its selections. Incomplete
// configurations are refused.
func (s *Session) Commit() (model.ComboSelections, error) {
	if s.committed {
		return nil, model.ErrConfigurationClosed
	}
	if !s.IsComplete() {
		return nil, model.ErrIncompleteCombo
	}
	s.committed = true
	return s.Selections(), nil
}

// Apply replays a list of choices onto the session, stopping at the first
// rejected one.
func (s *Session) Apply(choices []model.ComboChoice) error {
	for _, choice := range choices {
		if _, err := s.Select(choice.GroupName, choice.ItemKey, choice.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func findItem(group model.ComboGroup, itemKey string) (model.ComboItem, bool) {
	for _, item := range group.Items {
		if item.MenuItemKey == itemKey {
			return item, true
		}
	}
	return model.ComboItem{}, false
}
