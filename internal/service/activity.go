package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/types"
)

// ActivityService stores per-day activity completion records and
// derives streaks and history grids from them.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// UpsertRecord sets the explicit completion toggle for one (user, date,
// activity type) key. ON CONFLICT DO UPDATE keeps the write idempotent
// under concurrent callers.
func (s *ActivityService) UpsertRecord(ctx context.Context, userID uuid.UUID, date, activityType string, req *types.UpdateActivityRequest) (*models.ActivityHistoryRecord, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	maxValue := req.MaxValue
	if maxValue == 0 {
		maxValue = 1
	}

	record := models.ActivityHistoryRecord{
		UserID:       userID,
		Date:         date,
		ActivityType: activityType,
		Completed:    req.Completed,
		Value:        req.Value,
		MaxValue:     maxValue,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "activity_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "value", "max_value", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// loadWindow fetches all records of one activity type in [from, to]
// keyed by date, a single query feeding the pure streak/grid routines.
func (s *ActivityService) loadWindow(ctx context.Context, userID uuid.UUID, activityType string, from, to time.Time) (map[string]models.ActivityHistoryRecord, error) {
	var records []models.ActivityHistoryRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND activity_type = ? AND date >= ? AND date <= ?",
			userID, activityType,
			from.Format(nutrition.DateLayout), to.Format(nutrition.DateLayout)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.ActivityHistoryRecord, len(records))
	for _, rec := range records {
		byDate[rec.Date] = rec
	}
	return byDate, nil
}

// Streaks computes the current streak ending today and the longest
// streak within the lookback window.
func (s *ActivityService) Streaks(ctx context.Context, userID uuid.UUID, activityType string, today time.Time) (*types.StreakResponse, error) {
	from := today.AddDate(0, 0, -nutrition.MaxStreakLookback)
	byDate, err := s.loadWindow(ctx, userID, activityType, from, today)
	if err != nil {
		return nil, err
	}

	achieved := func(date string) (bool, bool) {
		rec, ok := byDate[date]
		return rec.Completed, ok
	}

	current, truncated := nutrition.CurrentStreak(achieved, today)
	longest := nutrition.LongestStreak(achieved, from, today)

	return &types.StreakResponse{
		ActivityType:  activityType,
		CurrentStreak: current,
		LongestStreak: longest,
		Truncated:     truncated,
	}, nil
}

// HistoryGrid returns the dense gap-filled day sequence for heatmap
// rendering.
func (s *ActivityService) HistoryGrid(ctx context.Context, userID uuid.UUID, activityType string, days int, today time.Time) ([]nutrition.GridCell, error) {
	if days < 1 {
		days = nutrition.DefaultHistoryDays
	}
	from := today.AddDate(0, 0, -(days - 1))
	byDate, err := s.loadWindow(ctx, userID, activityType, from, today)
	if err != nil {
		return nil, err
	}

	recordFor := func(date string) (nutrition.GridRecord, bool) {
		rec, ok := byDate[date]
		if !ok {
			return nutrition.GridRecord{}, false
		}
		return nutrition.GridRecord{
			Completed: rec.Completed,
			Value:     rec.Value,
			MaxValue:  rec.MaxValue,
		}, true
	}

	return nutrition.BuildHistoryGrid(recordFor, days, today), nil
}
