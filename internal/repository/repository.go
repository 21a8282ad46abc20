package repository

import (
	"context"

	"kiosk/internal/model"
)

// MenuCacheRepository persists the last known-good menu.
type MenuCacheRepository interface {
	// Load returns the stored snapshot, or nil when nothing has been stored.
	Load(ctx context.Context) (*model.MenuSnapshot, error)

	// Save upserts the snapshot. A stored snapshot with a newer last fetch
	// time is left untouched.
	Save(ctx context.Context, snapshot *model.MenuSnapshot) error
}
