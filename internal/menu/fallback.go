package menu

import (
	"context"
	"time"

	"kiosk/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Keys of the static catalog served when no menu could be retrieved.
const (
	FallbackCategoryKey = "fallback-category"
	FallbackItemKey     = "fallback-item"
)

// FallbackCatalog returns a fresh copy of the static last-resort menu.
func FallbackCatalog() []model.RawCategory {
	return []model.RawCategory{
		{
			MenuGroupKey:  FallbackCategoryKey,
			MenuGroupText: "Menu",
			Items: []model.RawItem{
				{
					MenuItemKey:     FallbackItemKey,
					MenuItemText:    "Sample Item",
					Description:     "A sample menu item",
					TakeOutPriceTL:  decimal.NewFromInt(100),
					DeliveryPriceTL: decimal.NewFromInt(100),
					Badges:          []string{},
					Combo:           []model.ComboGroup{},
					IsMainCombo:     false,
				},
			},
		},
	}
}

// FetchResult is the outcome of a resilient fetch. When Fallback is set,
// Categories holds substitute data and Err the failure that caused it.
type FetchResult struct {
	Categories []model.RawCategory
	Fallback   bool
	Err        error
}

// ResilientSource composes a Source with a retry policy and a fallback
// dataset. Fetch never fails; it degrades.
type ResilientSource struct {
	source   Source
	policy   RetryPolicy
	fallback []model.RawCategory
	logger   zerolog.Logger
}

// NewResilientSource creates a ResilientSource. A nil fallback uses
// FallbackCatalog.
func NewResilientSource(source Source, policy RetryPolicy, fallback []model.RawCategory, logger zerolog.Logger) *ResilientSource {
	if fallback == nil {
		fallback = FallbackCatalog()
	}

	return &ResilientSource{
		source:   source,
		policy:   policy,
		fallback: fallback,
		logger:   logger.With().Str("component", "menu-resilient-source").Logger(),
	}
}

// Fetch retrieves the menu within the retry budget, or returns the fallback
// dataset together with the last error.
func (r *ResilientSource) Fetch(ctx context.Context) FetchResult {
	var categories []model.RawCategory
	attempt := 0

	err := r.policy.Do(ctx, func(ctx context.Context) error {
		attempt++
		fetched, err := r.source.Fetch(ctx)
		if err != nil {
			return err
		}
		categories = fetched
		return nil
	}, func(err error, wait time.Duration) {
		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("menu fetch failed, retrying")
	})
	if err == nil {
		return FetchResult{Categories: categories}
	}

	r.logger.Warn().
		Err(err).
		Int("attempts", attempt).
		Msg("menu fetch exhausted, substituting fallback menu")

	return FetchResult{
		Categories: cloneRawCategories(r.fallback),
		Fallback:   true,
		Err:        err,
	}
}

func cloneRawCategories(src []model.RawCategory) []model.RawCategory {
	out := make([]model.RawCategory, len(src))
	for i, category := range src {
		out[i] = category
		out[i].Items = make([]model.RawItem, len(category.Items))
		for j, item := range category.Items {
			out[i].Items[j] = item
			out[i].Items[j].Badges = append([]string(nil), item.Badges...)
			out[i].Items[j].Combo = cloneGroups(item.Combo)
		}
	}
	return out
}

func cloneGroups(src []model.ComboGroup) []model.ComboGroup {
	if src == nil {
		return nil
	}
	out := make([]model.ComboGroup, len(src))
	for i, group := range src {
		out[i] = group
		out[i].Items = append([]model.ComboItem(nil), group.Items...)
	}
	return out
}
