package combo

import (
	"testing"

	"kiosk/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func drinkGroup() model.ComboGroup {
	return model.ComboGroup{
		GroupName:     "İçecek",
		IsForcedGroup: true,
		MaxQuantity:   1,
		Items: []model.ComboItem{
			{MenuItemKey: "cola", MenuItemText: "Kola"},
			{MenuItemKey: "ayran", MenuItemText: "Ayran", ExtraPriceTakeOutTL: decimal.NewFromInt(5)},
		},
	}
}

func sideGroup() model.ComboGroup {
	return model.ComboGroup{
		GroupName:   "Yan Ürün",
		MaxQuantity: 2,
		Items: []model.ComboItem{
			{MenuItemKey: "fries", MenuItemText: "Patates"},
			{MenuItemKey: "rings", MenuItemText: "Soğan Halkası", ExtraPriceTakeOutTL: decimal.RequireFromString("7.25")},
		},
	}
}

func sauceGroup() model.ComboGroup {
	return model.ComboGroup{
		GroupName: "Sos",
		Items: []model.ComboItem{
			{MenuItemKey: "ketchup", MenuItemText: "Ketçap"},
		},
	}
}

func selection(item model.ComboItem, quantity int) model.ComboSelection {
	return model.ComboSelection{Item: item, Quantity: quantity}
}

func TestGroupTotal(t *testing.T) {
	side := sideGroup()
	selections := model.ComboSelections{
		"Yan Ürün": {selection(side.Items[0], 1), selection(side.Items[1], 2), selection(side.Items[0], 0)},
	}

	assert.Equal(t, 3, GroupTotal(selections, "Yan Ürün"))
	assert.Equal(t, 0, GroupTotal(selections, "İçecek"))
	assert.Equal(t, 0, GroupTotal(nil, "Yan Ürün"))
}

func TestProgress(t *testing.T) {
	side := sideGroup()
	sauce := sauceGroup()

	tests := []struct {
		name       string
		group      model.ComboGroup
		selections model.ComboSelections
		expected   float64
	}{
		{
			name:     "Bounded group empty",
			group:    side,
			expected: 0,
		},
		{
			name:       "Bounded group half full",
			group:      side,
			selections: model.ComboSelections{"Yan Ürün": {selection(side.Items[0], 1)}},
			expected:   50,
		},
		{
			name:       "Bounded group over limit is capped",
			group:      side,
			selections: model.ComboSelections{"Yan Ürün": {selection(side.Items[0], 3)}},
			expected:   100,
		},
		{
			name:     "Unbounded group empty",
			group:    sauce,
			expected: 0,
		},
		{
			name:       "Unbounded group with a selection",
			group:      sauce,
			selections: model.ComboSelections{"Sos": {selection(sauce.Items[0], 4)}},
			expected:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Progress(tt.group, tt.selections))
		})
	}
}

func TestIsComplete(t *testing.T) {
	drink := drinkGroup()
	groups := []model.ComboGroup{drink, sideGroup(), sauceGroup()}

	assert.False(t, IsComplete(groups, nil))
	assert.False(t, IsComplete(groups, model.ComboSelections{"İçecek": {selection(drink.Items[0], 0)}}))
	assert.True(t, IsComplete(groups, model.ComboSelections{"İçecek": {selection(drink.Items[0], 1)}}))

	// no forced groups means nothing blocks completion
	assert.True(t, IsComplete([]model.ComboGroup{sideGroup(), sauceGroup()}, nil))
}

func TestWithinLimits(t *testing.T) {
	drink := drinkGroup()
	sauce := sauceGroup()
	groups := []model.ComboGroup{drink, sauce}

	assert.True(t, WithinLimits(groups, nil))
	assert.True(t, WithinLimits(groups, model.ComboSelections{"Sos": {selection(sauce.Items[0], 10)}}))
	assert.False(t, WithinLimits(groups, model.ComboSelections{
		"İçecek": {selection(drink.Items[0], 1), selection(drink.Items[1], 1)},
	}))
}

func TestExtra(t *testing.T) {
	drink := drinkGroup()
	side := sideGroup()

	selections := model.ComboSelections{
		"İçecek":   {selection(drink.Items[1], 1)},
		"Yan Ürün": {selection(side.Items[1], 2), selection(side.Items[0], 1)},
	}

	assert.Equal(t, "19.50", Extra(selections).StringFixed(2))
	assert.True(t, Extra(nil).IsZero())
}
