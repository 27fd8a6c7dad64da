package repository

import (
	"context"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
)

// Version identifies one persisted state of the source table. Two equal
// versions mean the source was not modified in between.
type Version string

// TableRepository loads and stores the whole master table at once.
type TableRepository interface {
	// Load reads the persisted table as-is, without normalization.
	Load(ctx context.Context) (inventory.RawTable, Version, error)
	// Save overwrites the persisted table and returns the new version.
	Save(ctx context.Context, table inventory.RawTable) (Version, error)
	// Version reports the current persisted version without reading rows.
	Version(ctx context.Context) (Version, error)
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}
