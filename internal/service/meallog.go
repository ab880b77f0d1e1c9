package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/types"
)

var ErrInvalidDate = errors.New("invalid date (expected YYYY-MM-DD)")

// MealLogService stores per-slot food selections and derives slot,
// daily, and range totals through the aggregation core.
type MealLogService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewMealLogService(db *gorm.DB, catalog *CatalogService) *MealLogService {
	return &MealLogService{
		db:      db,
		catalog: catalog,
	}
}

// ParseDate validates a local calendar date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(nutrition.DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// UpdateSlot replaces the selections and external nutrition of one
// time-slot. External values are clamped non-negative before storage.
func (s *MealLogService) UpdateSlot(ctx context.Context, userID uuid.UUID, date, slotID string, req *types.UpdateSlotRequest) (*models.MealSlotLog, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	var slot models.MealSlotLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND slot_id = ?", userID, date, slotID).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slot = models.MealSlotLog{UserID: userID, Date: date, SlotID: slotID}
	} else if err != nil {
		return nil, err
	}

	external := req.External.Clamped()
	slot.SelectedFoods = req.SelectedFoods
	slot.ExternalProtein = external.Protein
	slot.ExternalFats = external.Fats
	slot.ExternalCarbs = external.Carbs
	slot.ExternalCalories = external.Calories

	if err := s.db.WithContext(ctx).Save(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetDay returns every logged slot of a day with derived macro totals
// and cost breakdowns.
func (s *MealLogService) GetDay(ctx context.Context, userID uuid.UUID, date string) (*types.DaySummary, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	var slots []models.MealSlotLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("slot_id").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	catalog, err := s.catalog.LoadCatalog(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.summarizeDay(catalog, date, slots), nil
}

// GetRange returns per-day summaries and the field-wise range total for
// [from, to].
func (s *MealLogService) GetRange(ctx context.Context, userID uuid.UUID, from, to string) (*types.RangeSummary, error) {
	fromDay, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	toDay, err := ParseDate(to)
	if err != nil {
		return nil, err
	}
	if fromDay.After(toDay) {
		return nil, fmt.Errorf("%w: from after to", ErrInvalidDate)
	}

	var slots []models.MealSlotLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date, slot_id").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	catalog, err := s.catalog.LoadCatalog(ctx, userID)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]models.MealSlotLog)
	for _, slot := range slots {
		byDate[slot.Date] = append(byDate[slot.Date], slot)
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	summary := &types.RangeSummary{FromDate: from, ToDate: to}
	for _, date := range dates {
		day := s.summarizeDay(catalog, date, byDate[date])
		summary.Days = append(summary.Days, *day)
		summary.Totals = summary.Totals.Add(day.Totals)
	}
	return summary, nil
}

// DayTotals returns just the daily macro total, used by the dashboard
// and the nutrition-goal streak.
func (s *MealLogService) DayTotals(ctx context.Context, userID uuid.UUID, date string) (nutrition.Macros, error) {
	day, err := s.GetDay(ctx, userID, date)
	if err != nil {
		return nutrition.Macros{}, err
	}
	return day.Totals, nil
}

func (s *MealLogService) summarizeDay(catalog nutrition.Catalog, date string, slots []models.MealSlotLog) *types.DaySummary {
	day := &types.DaySummary{Date: date}
	for _, slot := range slots {
		mealSlot := nutrition.MealSlot{
			Selections: slot.SelectedFoods,
			External:   slot.External(),
		}
		totals := nutrition.SlotMacros(catalog, mealSlot)
		cost := nutrition.SlotCost(catalog, slot.SelectedFoods)

		day.Slots = append(day.Slots, types.SlotSummary{
			SlotID:        slot.SlotID,
			SelectedFoods: slot.SelectedFoods,
			External:      slot.External(),
			Totals:        totals,
			Cost:          cost,
		})
		day.Totals = day.Totals.Add(totals)
		day.TotalCost += cost.TotalCost
	}
	return day
}
