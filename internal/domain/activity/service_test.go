package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		SessionID:    "s1",
		ActivityType: activity.TypeEditsApplied,
		Municipality: "Recife",
		Page:         "gabinete",
		Summary:      "edits applied",
		Rows:         3,
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{Limit: activity.DefaultListLimit}).
		Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_RejectsEmptyEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{}), activity.ErrInvalidInput)
}

func TestActivityService_WrapsRepositoryError(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	boom := errors.New("disk full")
	repo.On("Log", mock.Anything, mock.Anything).Return(boom)

	svc := activity.NewService(repo, nil)
	err := svc.LogActivity(context.Background(), &activity.ActivityEntry{ActivityType: activity.TypeSaved})
	require.ErrorIs(t, err, boom)
}

func TestDetails(t *testing.T) {
	require.Equal(t, `{"changed":true}`, activity.Details(map[string]bool{"changed": true}))
	require.Equal(t, "", activity.Details(make(chan int)))
}
