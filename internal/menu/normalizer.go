package menu

import (
	"kiosk/internal/model"

	"github.com/rs/zerolog"
)

// Upstream badge labels mapped to product flags.
const (
	BadgeSpicy      = "Acılı"
	BadgeVegetarian = "Vejetaryen"
)

// Normalizer maps the raw upstream menu onto categories and products.
type Normalizer struct {
	enricher *Enricher
	logger   zerolog.Logger
}

// NewNormalizer creates a Normalizer. A nil enricher leaves display fields
// empty.
func NewNormalizer(enricher *Enricher, logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		enricher: enricher,
		logger:   logger.With().Str("component", "menu-normalizer").Logger(),
	}
}

// Map produces one category per distinct group key and one product per item.
// Only combo groups with at least one item are kept, and a product is a combo
// iff any such group remains.
func (n *Normalizer) Map(raw []model.RawCategory) (*model.Menu, error) {
	if len(raw) == 0 {
		return nil, model.ErrEmptyDataset
	}

	menu := &model.Menu{
		Categories: make([]model.Category, 0, len(raw)),
		Products:   make([]model.Product, 0),
	}
	seen := make(map[string]struct{}, len(raw))

	for _, group := range raw {
		if _, ok := seen[group.MenuGroupKey]; !ok {
			seen[group.MenuGroupKey] = struct{}{}
			category := model.Category{
				ID:   group.MenuGroupKey,
				Name: group.MenuGroupText,
			}
			if n.enricher != nil {
				category.Image = n.enricher.CategoryImage()
			}
			menu.Categories = append(menu.Categories, category)
		} else {
			n.logger.Debug().Str("category", group.MenuGroupKey).Msg("duplicate category key merged")
		}

		for _, item := range group.Items {
			menu.Products = append(menu.Products, n.mapItem(group.MenuGroupKey, item))
		}
	}

	n.logger.Debug().
		Int("categories", len(menu.Categories)).
		Int("products", len(menu.Products)).
		Msg("menu normalized")

	return menu, nil
}

func (n *Normalizer) mapItem(categoryID string, item model.RawItem) model.Product {
	product := model.Product{
		ID:           item.MenuItemKey,
		Name:         item.MenuItemText,
		Description:  item.Description,
		Price:        item.TakeOutPriceTL,
		Category:     categoryID,
		IsSpicy:      hasBadge(item.Badges, BadgeSpicy),
		IsVegetarian: hasBadge(item.Badges, BadgeVegetarian),
	}

	groups := make([]model.ComboGroup, 0, len(item.Combo))
	forcedEmpty := make([]string, 0)
	for _, group := range item.Combo {
		if len(group.Items) == 0 {
			if group.IsForcedGroup {
				forcedEmpty = append(forcedEmpty, group.GroupName)
			}
			continue
		}
		kept := group
		kept.Items = append([]model.ComboItem(nil), group.Items...)
		groups = append(groups, kept)
	}

	if len(groups) > 0 {
		product.IsCombo = true
		product.Combo = groups

		// The required group is gone, so the combo can complete without it.
		if len(forcedEmpty) > 0 {
			n.logger.Warn().
				Str("product", product.ID).
				Strs("groups", forcedEmpty).
				Msg("required combo group has no items and was dropped")
		}
	}

	if n.enricher != nil {
		n.enricher.Product(&product)
	}

	return product
}

func hasBadge(badges []string, badge string) bool {
	for _, b := range badges {
		if b == badge {
			return true
		}
	}
	return false
}
