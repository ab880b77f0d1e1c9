package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/testhelpers"
	"github.com/nutritrack/backend/internal/types"
)

// These tests run against a real postgres container and cover the
// storage behaviors sqlite cannot faithfully reproduce: jsonb columns,
// text[] tags, and concurrent upserts against the composite unique
// indexes. They skip when docker is unavailable.

func TestPostgresMealSlotRoundtrip(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	userID := createTestUser(t, db)
	catalogSvc := NewCatalogService(db)
	svc := NewMealLogService(db, catalogSvc)
	ctx := context.Background()

	_, err := catalogSvc.CreateFood(ctx, userID, &types.CreateFoodRequest{
		Name: "Whole Egg", Protein: 6.3, Fats: 5.3, Carbs: 0.4, Calories: 72,
		IsUnitFood: true, Tags: []string{"protein", "breakfast"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateSlot(ctx, userID, "2026-03-10", "breakfast", &types.UpdateSlotRequest{
		SelectedFoods: []nutrition.FoodSelection{{Name: "Whole Egg", Quantity: 2}},
		External:      nutrition.Macros{Calories: 50},
	})
	require.NoError(t, err)

	var stored models.MealSlotLog
	require.NoError(t, db.Where("user_id = ?", userID).First(&stored).Error)
	require.Len(t, stored.SelectedFoods, 1)
	assert.Equal(t, "Whole Egg", stored.SelectedFoods[0].Name)

	foods, err := catalogSvc.ListFoods(ctx, userID)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, []string{"protein", "breakfast"}, []string(foods[0].Tags))
}

func TestPostgresConcurrentActivityUpserts(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	userID := createTestUser(t, db)
	svc := NewActivityService(db)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpsertRecord(context.Background(), userID, "2026-03-10", "workout", &types.UpdateActivityRequest{
				Completed: true,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&models.ActivityHistoryRecord{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostgresConcurrentWaterIncrements(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	userID := createTestUser(t, db)
	svc := NewWaterService(db)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddEntry(context.Background(), userID, "2026-03-10", &types.AddWaterRequest{AmountML: 100})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	record, err := svc.GetDay(context.Background(), userID, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1000, record.TotalAmountML)
}
