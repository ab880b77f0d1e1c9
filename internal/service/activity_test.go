package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/types"
)

func TestUpsertRecordIsIdempotent(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewActivityService(db)
	ctx := context.Background()

	_, err := svc.UpsertRecord(ctx, userID, "2026-03-10", "workout", &types.UpdateActivityRequest{
		Completed: true, Value: 30, MaxValue: 60,
	})
	require.NoError(t, err)

	// Second write to the same key overwrites instead of duplicating.
	_, err = svc.UpsertRecord(ctx, userID, "2026-03-10", "workout", &types.UpdateActivityRequest{
		Completed: false, Value: 45, MaxValue: 60,
	})
	require.NoError(t, err)

	var records []models.ActivityHistoryRecord
	require.NoError(t, db.Where("user_id = ?", userID).Find(&records).Error)
	require.Len(t, records, 1)
	assert.False(t, records[0].Completed)
	assert.Equal(t, 45.0, records[0].Value)
	assert.Equal(t, 60.0, records[0].MaxValue)
}

func TestUpsertRecordDefaultsMaxValue(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewActivityService(db)

	record, err := svc.UpsertRecord(context.Background(), userID, "2026-03-10", "nutrition", &types.UpdateActivityRequest{
		Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, record.MaxValue)
}

func TestUpsertRecordRejectsBadDate(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewActivityService(db)

	_, err := svc.UpsertRecord(context.Background(), userID, "10-03-2026", "workout", &types.UpdateActivityRequest{Completed: true})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestStreaksFromStoredRecords(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewActivityService(db)
	ctx := context.Background()

	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	// Completed today and yesterday, a gap, then two more completed
	// days further back: current streak 2, longest 2.
	for _, offset := range []int{0, 1, 3, 4} {
		date := today.AddDate(0, 0, -offset).Format(nutrition.DateLayout)
		_, err := svc.UpsertRecord(ctx, userID, date, "workout", &types.UpdateActivityRequest{Completed: true})
		require.NoError(t, err)
	}
	// An explicit not-completed day does not extend a streak.
	_, err := svc.UpsertRecord(ctx, userID, today.AddDate(0, 0, -2).Format(nutrition.DateLayout), "workout", &types.UpdateActivityRequest{Completed: false})
	require.NoError(t, err)

	streaks, err := svc.Streaks(ctx, userID, "workout", today)
	require.NoError(t, err)
	assert.Equal(t, "workout", streaks.ActivityType)
	assert.Equal(t, 2, streaks.CurrentStreak)
	assert.Equal(t, 2, streaks.LongestStreak)
	assert.False(t, streaks.Truncated)
}

func TestStreaksIsolatedPerActivityType(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewActivityService(db)
	ctx := context.Background()

	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	_, err := svc.UpsertRecord(ctx, userID, today.Format(nutrition.DateLayout), "workout", &types.UpdateActivityRequest{Completed: true})
	require.NoError(t, err)

	streaks, err := svc.Streaks(ctx, userID, "nutrition", today)
	require.NoError(t, err)
	assert.Equal(t, 0, streaks.CurrentStreak)
}

func TestHistoryGridFillsGaps(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewActivityService(db)
	ctx := context.Background()

	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	_, err := svc.UpsertRecord(ctx, userID, today.Format(nutrition.DateLayout), "workout", &types.UpdateActivityRequest{
		Completed: true, Value: 3, MaxValue: 5,
	})
	require.NoError(t, err)

	grid, err := svc.HistoryGrid(ctx, userID, "workout", 7, today)
	require.NoError(t, err)
	require.Len(t, grid, 7)

	last := grid[len(grid)-1]
	assert.True(t, last.IsToday)
	assert.True(t, last.Completed)
	assert.Equal(t, 3.0, last.Value)
	assert.Equal(t, 5.0, last.MaxValue)

	for _, cell := range grid[:len(grid)-1] {
		assert.False(t, cell.Completed)
		assert.Equal(t, 1.0, cell.MaxValue)
	}
}
