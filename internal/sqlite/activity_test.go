package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		SessionID:    "s1",
		ActivityType: activity.TypeSourceLoaded,
		Summary:      "Loaded source",
		Rows:         10,
	}
	entry2 := &activity.ActivityEntry{
		SessionID:    "s1",
		ActivityType: activity.TypeEditsApplied,
		Municipality: "Recife",
		Page:         "gabinete",
		Summary:      "Applied edits",
		Details:      `{"changed":true}`,
		Rows:         10,
	}

	require.NoError(t, repo.Log(ctx, entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry2.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, "Recife", entries[0].Municipality)
	require.Equal(t, `{"changed":true}`, entries[0].Details)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	for _, e := range []*activity.ActivityEntry{
		{SessionID: "s1", ActivityType: activity.TypeSaved, Summary: "saved"},
		{SessionID: "s1", ActivityType: activity.TypeReloaded, Summary: "reloaded"},
		{SessionID: "s2", ActivityType: activity.TypeSaved, Summary: "saved"},
	} {
		require.NoError(t, repo.Log(ctx, e))
	}

	sessionID := "s1"
	activityType := activity.TypeSaved
	entries, err := repo.List(ctx, activity.ListActivityOptions{
		SessionID:    &sessionID,
		ActivityType: &activityType,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
