package mocks

import (
	"context"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/repository"
	"github.com/stretchr/testify/mock"
)

// TableRepository is a mock for repository.TableRepository.
type TableRepository struct {
	mock.Mock
}

func (m *TableRepository) Load(ctx context.Context) (inventory.RawTable, repository.Version, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(inventory.RawTable)
	return table, args.Get(1).(repository.Version), args.Error(2)
}

func (m *TableRepository) Save(ctx context.Context, table inventory.RawTable) (repository.Version, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(repository.Version), args.Error(1)
}

func (m *TableRepository) Version(ctx context.Context) (repository.Version, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.Version), args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
