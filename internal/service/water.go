package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/types"
)

const defaultWaterTargetML = 2000

// WaterService tracks per-day water intake. The running total is only
// ever modified through a single SQL expression update, so concurrent
// entries for the same (user, date) cannot lose increments.
type WaterService struct {
	db *gorm.DB
}

func NewWaterService(db *gorm.DB) *WaterService {
	return &WaterService{db: db}
}

// ensureRecord creates the day's record if it does not exist yet,
// carrying the user's most recent target forward.
func (s *WaterService) ensureRecord(ctx context.Context, userID uuid.UUID, date string) error {
	target := defaultWaterTargetML
	var latest models.WaterIntakeRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&latest).Error; err == nil {
		target = latest.TargetAmountML
	}

	record := models.WaterIntakeRecord{
		UserID:         userID,
		Date:           date,
		TargetAmountML: target,
		Entries:        models.JSONBWaterEntries{},
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&record).Error
}

// AddEntry logs a drink: atomic total increment, entry append, and
// goal/streak recompute inside one transaction.
func (s *WaterService) AddEntry(ctx context.Context, userID uuid.UUID, date string, req *types.AddWaterRequest) (*models.WaterIntakeRecord, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if err := s.ensureRecord(ctx, userID, date); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The increment is a single SQL expression, never a Go-side
		// read-modify-write.
		if err := tx.Model(&models.WaterIntakeRecord{}).
			Where("user_id = ? AND date = ?", userID, date).
			Update("total_amount_ml", gorm.Expr("total_amount_ml + ?", req.AmountML)).Error; err != nil {
			return err
		}

		var record models.WaterIntakeRecord
		if err := tx.Where("user_id = ? AND date = ?", userID, date).First(&record).Error; err != nil {
			return err
		}

		record.Entries = append(record.Entries, models.WaterEntry{
			AmountML: req.AmountML,
			LoggedAt: time.Now(),
			Source:   req.Source,
		})
		record.GoalAchieved = record.TotalAmountML >= record.TargetAmountML

		return tx.Model(&record).Updates(map[string]interface{}{
			"entries":       record.Entries,
			"goal_achieved": record.GoalAchieved,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.refreshStreak(ctx, userID, date, day); err != nil {
		return nil, err
	}

	return s.GetDay(ctx, userID, date)
}

// GetDay returns the day's record, a zero-total default when nothing
// was logged.
func (s *WaterService) GetDay(ctx context.Context, userID uuid.UUID, date string) (*models.WaterIntakeRecord, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	var record models.WaterIntakeRecord
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.WaterIntakeRecord{
			UserID:         userID,
			Date:           date,
			TargetAmountML: defaultWaterTargetML,
			Entries:        models.JSONBWaterEntries{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SetTarget updates the daily target for the given date (and becomes
// the carried-forward default for later days). Goal achievement is
// re-evaluated against the new target.
func (s *WaterService) SetTarget(ctx context.Context, userID uuid.UUID, date string, targetML int) (*models.WaterIntakeRecord, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if err := s.ensureRecord(ctx, userID, date); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.WaterIntakeRecord{}).
		Where("user_id = ? AND date = ?", userID, date).
		Updates(map[string]interface{}{
			"target_amount_ml": targetML,
			"goal_achieved":    gorm.Expr("total_amount_ml >= ?", targetML),
		}).Error; err != nil {
		return nil, err
	}

	if err := s.refreshStreak(ctx, userID, date, day); err != nil {
		return nil, err
	}
	return s.GetDay(ctx, userID, date)
}

// refreshStreak recomputes the consecutive-achieved-days count ending
// at day and stores it on the day's record.
func (s *WaterService) refreshStreak(ctx context.Context, userID uuid.UUID, date string, day time.Time) error {
	from := day.AddDate(0, 0, -nutrition.MaxStreakLookback)

	var records []models.WaterIntakeRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?",
			userID, from.Format(nutrition.DateLayout), date).
		Find(&records).Error; err != nil {
		return err
	}

	byDate := make(map[string]bool, len(records))
	for _, rec := range records {
		byDate[rec.Date] = rec.GoalAchieved
	}
	achieved := func(d string) (bool, bool) {
		v, ok := byDate[d]
		return v, ok
	}

	streak, _ := nutrition.CurrentStreak(achieved, day)
	return s.db.WithContext(ctx).Model(&models.WaterIntakeRecord{}).
		Where("user_id = ? AND date = ?", userID, date).
		Update("streak_count", streak).Error
}
