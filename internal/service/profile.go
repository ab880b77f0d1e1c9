package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/types"
)

// ErrProfileIncomplete is returned when targets are requested before
// the biometric profile has been filled in.
var ErrProfileIncomplete = errors.New("biometric profile incomplete")

const targetCacheTTL = 24 * time.Hour

// ProfileService handles the biometric profile and macro targets.
// Computed targets are cached in redis keyed by user and invalidated on
// every profile or target edit.
type ProfileService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewProfileService(db *gorm.DB, cache *redis.Client) *ProfileService {
	return &ProfileService{
		db:    db,
		cache: cache,
	}
}

// GetProfile retrieves the user's biometric profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.BiometricProfile, error) {
	var profile models.BiometricProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile upserts the biometric profile from an already-validated
// request and drops the cached targets.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.BiometricProfile, error) {
	goal := nutrition.Goal(req.Goal)
	if _, err := nutrition.GoalAdjustment(goal); err != nil {
		return nil, fmt.Errorf("goal %q: %w", req.Goal, err)
	}

	var profile models.BiometricProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.BiometricProfile{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	profile.Gender = req.Gender
	profile.Age = req.Age
	profile.HeightCM = req.HeightCM
	profile.WeightKG = req.WeightKG
	profile.ActivityLevel = req.ActivityLevel
	profile.Goal = req.Goal
	if req.BodyFatPercentage != nil {
		profile.BodyFatPercentage = *req.BodyFatPercentage
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	s.invalidateTargets(ctx, userID)
	return &profile, nil
}

// GetTargets returns the user's macro targets: the user-set override if
// one exists, otherwise the calculated set (redis-cached).
func (s *ProfileService) GetTargets(ctx context.Context, userID uuid.UUID) (*nutrition.CalculatedMacros, error) {
	var custom models.MacroTarget
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&custom).Error
	if err == nil {
		return &nutrition.CalculatedMacros{
			AdjustedCalories: int(custom.Calories),
			Protein:          int(custom.Protein),
			Carbs:            int(custom.Carbs),
			Fats:             int(custom.Fats),
			Calories:         int(custom.Calories),
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if cached := s.cachedTargets(ctx, userID); cached != nil {
		return cached, nil
	}

	profile, err := s.GetProfile(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileIncomplete
	} else if err != nil {
		return nil, err
	}
	if profile.Age <= 0 || profile.HeightCM <= 0 || profile.WeightKG <= 0 {
		return nil, ErrProfileIncomplete
	}

	targets, err := nutrition.CalculateTargets(nutrition.BiometricProfile{
		Gender:            nutrition.Gender(profile.Gender),
		Age:               profile.Age,
		HeightCM:          profile.HeightCM,
		WeightKG:          profile.WeightKG,
		ActivityLevel:     nutrition.ActivityLevel(profile.ActivityLevel),
		Goal:              nutrition.Goal(profile.Goal),
		BodyFatPercentage: profile.BodyFatPercentage,
	})
	if err != nil {
		return nil, err
	}

	s.storeTargets(ctx, userID, &targets)
	return &targets, nil
}

// SetTargets stores a user-set macro target and reports whether it
// passes the calorie consistency check. Inconsistent targets are stored
// anyway; the caller surfaces the warning.
func (s *ProfileService) SetTargets(ctx context.Context, userID uuid.UUID, req *types.SetTargetsRequest) (consistent bool, err error) {
	var target models.MacroTarget
	dbErr := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&target).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		target = models.MacroTarget{UserID: userID}
	} else if dbErr != nil {
		return false, dbErr
	}

	target.Protein = req.Protein
	target.Fats = req.Fats
	target.Carbs = req.Carbs
	target.Calories = req.Calories

	if err := s.db.WithContext(ctx).Save(&target).Error; err != nil {
		return false, err
	}

	s.invalidateTargets(ctx, userID)
	return nutrition.CheckTargetConsistency(nutrition.Macros{
		Protein:  req.Protein,
		Fats:     req.Fats,
		Carbs:    req.Carbs,
		Calories: req.Calories,
	}), nil
}

// SetAvatarURL stores the uploaded avatar location on the user row.
func (s *ProfileService) SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error
}

func targetCacheKey(userID uuid.UUID) string {
	return "targets:" + userID.String()
}

func (s *ProfileService) cachedTargets(ctx context.Context, userID uuid.UUID) *nutrition.CalculatedMacros {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, targetCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var targets nutrition.CalculatedMacros
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil
	}
	return &targets
}

func (s *ProfileService) storeTargets(ctx context.Context, userID uuid.UUID, targets *nutrition.CalculatedMacros) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(targets)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, targetCacheKey(userID), data, targetCacheTTL).Err(); err != nil {
		log.Printf("[ProfileService] failed to cache targets for %s: %v", userID, err)
	}
}

func (s *ProfileService) invalidateTargets(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, targetCacheKey(userID)).Err(); err != nil {
		log.Printf("[ProfileService] failed to invalidate targets for %s: %v", userID, err)
	}
}
