package cart

import (
	"testing"

	"kiosk/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainProduct() model.Product {
	return model.Product{ID: "cola", Name: "Kola", Price: decimal.NewFromInt(30)}
}

func comboProduct() model.Product {
	return model.Product{
		ID:      "whopper-menu",
		Name:    "Whopper Menü",
		Price:   decimal.RequireFromString("185.50"),
		IsCombo: true,
		Combo: []model.ComboGroup{{
			GroupName:     "İçecek",
			IsForcedGroup: true,
			MaxQuantity:   1,
			Items: []model.ComboItem{
				{MenuItemKey: "ayran", MenuItemText: "Ayran", ExtraPriceTakeOutTL: decimal.NewFromInt(5)},
			},
		}},
	}
}

func ayranSelection() model.ComboSelections {
	return model.ComboSelections{
		"İçecek": {{
			Item:     model.ComboItem{MenuItemKey: "ayran", MenuItemText: "Ayran", ExtraPriceTakeOutTL: decimal.NewFromInt(5)},
			Quantity: 1,
		}},
	}
}

func TestCart_AddItem(t *testing.T) {
	tests := []struct {
		name        string
		product     model.Product
		selections  model.ComboSelections
		quantity    int
		expectError error
	}{
		{
			name:     "Plain product",
			product:  plainProduct(),
			quantity: 2,
		},
		{
			name:       "Combo product with selections",
			product:    comboProduct(),
			selections: ayranSelection(),
			quantity:   1,
		},
		{
			name:        "Combo product without selections",
			product:     comboProduct(),
			quantity:    1,
			expectError: model.ErrInvalidCartItem,
		},
		{
			name:        "Plain product with selections",
			product:     plainProduct(),
			selections:  ayranSelection(),
			quantity:    1,
			expectError: model.ErrInvalidCartItem,
		},
		{
			name:        "Zero quantity",
			product:     plainProduct(),
			quantity:    0,
			expectError: model.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()

			err := c.AddItemQuantity(tt.product, tt.selections, tt.quantity)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Equal(t, 0, c.Len())
				return
			}
			require.NoError(t, err)
			require.Equal(t, 1, c.Len())
			assert.Equal(t, tt.quantity, c.Items()[0].Quantity)
		})
	}
}

func TestCart_LinesAreNeverMerged(t *testing.T) {
	c := New()

	require.NoError(t, c.AddItem(plainProduct(), nil))
	require.NoError(t, c.AddItem(plainProduct(), nil))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCart_SelectionsAreCopied(t *testing.T) {
	c := New()
	selections := ayranSelection()

	require.NoError(t, c.AddItem(comboProduct(), selections))

	selections["İçecek"][0].Quantity = 7
	items := c.Items()
	assert.Equal(t, 1, items[0].ComboSelections["İçecek"][0].Quantity)

	items[0].ComboSelections["İçecek"][0].Quantity = 9
	assert.Equal(t, 1, c.Items()[0].ComboSelections["İçecek"][0].Quantity)
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(plainProduct(), nil))
	require.NoError(t, c.AddItem(comboProduct(), ayranSelection()))

	require.NoError(t, c.UpdateQuantity(1, 3))
	assert.Equal(t, 3, c.Items()[1].Quantity)

	assert.ErrorIs(t, c.UpdateQuantity(2, 1), model.ErrCartItemNotFound)
	assert.ErrorIs(t, c.UpdateQuantity(-1, 1), model.ErrCartItemNotFound)
	assert.ErrorIs(t, c.UpdateQuantity(0, -2), model.ErrInvalidQuantity)

	require.NoError(t, c.UpdateQuantity(0, 0))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "whopper-menu", c.Items()[0].Product.ID)
}

func TestCart_Remove(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(plainProduct(), nil))
	require.NoError(t, c.AddItem(comboProduct(), ayranSelection()))
	require.NoError(t, c.AddItemQuantity(plainProduct(), nil, 4))

	require.NoError(t, c.Remove(1))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 4, items[1].Quantity)

	assert.ErrorIs(t, c.Remove(2), model.ErrCartItemNotFound)
}

func TestCart_Total(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())

	require.NoError(t, c.AddItemQuantity(plainProduct(), nil, 2))
	require.NoError(t, c.AddItemQuantity(comboProduct(), ayranSelection(), 3))

	// 2 x 30 + 3 x (185.50 + 5)
	assert.Equal(t, "631.50", c.Total().StringFixed(2))

	require.NoError(t, c.UpdateQuantity(1, 1))
	assert.Equal(t, "250.50", c.Total().StringFixed(2))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestLinePricing(t *testing.T) {
	item := model.CartItem{Product: comboProduct(), Quantity: 2, ComboSelections: ayranSelection()}

	assert.Equal(t, "190.50", UnitPrice(item).StringFixed(2))
	assert.Equal(t, "381.00", LineTotal(item).StringFixed(2))
	assert.Equal(t, "381.00", Total([]model.CartItem{item}).StringFixed(2))
}
