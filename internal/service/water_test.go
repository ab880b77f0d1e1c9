package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutritrack/backend/internal/types"
)

func TestAddEntryAccumulatesTotal(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewWaterService(db)
	ctx := context.Background()

	record, err := svc.AddEntry(ctx, userID, "2026-03-10", &types.AddWaterRequest{AmountML: 500, Source: "glass"})
	require.NoError(t, err)
	assert.Equal(t, 500, record.TotalAmountML)
	assert.False(t, record.GoalAchieved)

	record, err = svc.AddEntry(ctx, userID, "2026-03-10", &types.AddWaterRequest{AmountML: 1600, Source: "bottle"})
	require.NoError(t, err)
	assert.Equal(t, 2100, record.TotalAmountML)
	assert.True(t, record.GoalAchieved)
	assert.Equal(t, 1, record.StreakCount)
	require.Len(t, record.Entries, 2)
	assert.Equal(t, 500, record.Entries[0].AmountML)
	assert.Equal(t, 1600, record.Entries[1].AmountML)
}

func TestGetDayReturnsZeroDefault(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewWaterService(db)

	record, err := svc.GetDay(context.Background(), userID, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, record.TotalAmountML)
	assert.Equal(t, defaultWaterTargetML, record.TargetAmountML)
	assert.Empty(t, record.Entries)
}

func TestSetTargetReevaluatesGoal(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewWaterService(db)
	ctx := context.Background()

	record, err := svc.AddEntry(ctx, userID, "2026-03-10", &types.AddWaterRequest{AmountML: 1500})
	require.NoError(t, err)
	assert.False(t, record.GoalAchieved)

	// Lowering the target below the logged total flips achievement.
	record, err = svc.SetTarget(ctx, userID, "2026-03-10", 1200)
	require.NoError(t, err)
	assert.Equal(t, 1200, record.TargetAmountML)
	assert.True(t, record.GoalAchieved)
	assert.Equal(t, 1, record.StreakCount)
}

func TestTargetCarriesForwardToLaterDays(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewWaterService(db)
	ctx := context.Background()

	_, err := svc.SetTarget(ctx, userID, "2026-03-10", 2500)
	require.NoError(t, err)

	record, err := svc.AddEntry(ctx, userID, "2026-03-11", &types.AddWaterRequest{AmountML: 300})
	require.NoError(t, err)
	assert.Equal(t, 2500, record.TargetAmountML)
}

func TestWaterStreakSpansConsecutiveDays(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewWaterService(db)
	ctx := context.Background()

	_, err := svc.AddEntry(ctx, userID, "2026-03-09", &types.AddWaterRequest{AmountML: 2000})
	require.NoError(t, err)

	record, err := svc.AddEntry(ctx, userID, "2026-03-10", &types.AddWaterRequest{AmountML: 2000})
	require.NoError(t, err)
	assert.Equal(t, 2, record.StreakCount)
}

func TestAddEntryRejectsBadDate(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db)
	svc := NewWaterService(db)

	_, err := svc.AddEntry(context.Background(), userID, "March 10", &types.AddWaterRequest{AmountML: 100})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
