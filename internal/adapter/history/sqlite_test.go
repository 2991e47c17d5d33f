package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushcron/internal/adapter/history"
	"pushcron/internal/domain/model"
)

func TestStoreRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 10, 19, 3, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{ID: "a", Job: "morning", StartedAt: base, Duration: 1500 * time.Millisecond, Status: model.RunSent, NotificationID: "n-1", Recipients: 12},
		{ID: "b", Job: "midday", StartedAt: base.Add(3 * time.Hour), Duration: 200 * time.Millisecond, Status: model.RunFailed, Error: "onesignal returned status 400: bad"},
		{ID: "c", Job: "morning", StartedAt: base.Add(6 * time.Hour), Status: model.RunSent, NotificationID: "n-2"},
	}
	for _, run := range runs {
		require.NoError(t, store.Record(ctx, run))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Equal(t, model.RunFailed, recent[1].Status)
	assert.Equal(t, "onesignal returned status 400: bad", recent[1].Error)
	assert.Equal(t, 200*time.Millisecond, recent[1].Duration)
	assert.True(t, base.Add(3*time.Hour).Equal(recent[1].StartedAt))

	all, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 12, all[2].Recipients)
}

func TestStoreRecentWithoutLimit(t *testing.T) {
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
