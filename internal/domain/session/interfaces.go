package session

import (
	"context"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/repository"
)

// TableRepository provides whole-table persistence for the master table.
type TableRepository interface {
	Load(ctx context.Context) (inventory.RawTable, repository.Version, error)
	Save(ctx context.Context, table inventory.RawTable) (repository.Version, error)
	Version(ctx context.Context) (repository.Version, error)
}

// ActivityLogger records session events. *activity.Service satisfies it.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
