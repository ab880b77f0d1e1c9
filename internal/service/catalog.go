package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/types"
)

var ErrFoodExists = errors.New("food already in catalog")

var nameCaser = cases.Title(language.English)

// CatalogService manages the per-user food catalog.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// NormalizeFoodName collapses whitespace and title-cases a food name so
// "chicken  breast" and "Chicken Breast" resolve to the same catalog
// key.
func NormalizeFoodName(name string) string {
	return nameCaser.String(strings.Join(strings.Fields(name), " "))
}

// CreateFood adds a catalog entry under the normalized name.
func (s *CatalogService) CreateFood(ctx context.Context, userID uuid.UUID, req *types.CreateFoodRequest) (*models.FoodCatalogEntry, error) {
	name := NormalizeFoodName(req.Name)

	var existing models.FoodCatalogEntry
	if err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err == nil {
		return nil, ErrFoodExists
	}

	entry := models.FoodCatalogEntry{
		UserID:          userID,
		Name:            name,
		Protein:         req.Protein,
		Fats:            req.Fats,
		Carbs:           req.Carbs,
		Calories:        req.Calories,
		CostPerQuantity: req.CostPerQuantity,
		IsUnitFood:      req.IsUnitFood,
		Tags:            pq.StringArray(req.Tags),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateFood replaces an entry's values, keyed by id.
func (s *CatalogService) UpdateFood(ctx context.Context, userID, id uuid.UUID, req *types.CreateFoodRequest) (*models.FoodCatalogEntry, error) {
	var entry models.FoodCatalogEntry
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		return nil, err
	}

	entry.Name = NormalizeFoodName(req.Name)
	entry.Protein = req.Protein
	entry.Fats = req.Fats
	entry.Carbs = req.Carbs
	entry.Calories = req.Calories
	entry.CostPerQuantity = req.CostPerQuantity
	entry.IsUnitFood = req.IsUnitFood
	entry.Tags = pq.StringArray(req.Tags)

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListFoods returns the user's catalog ordered by name.
func (s *CatalogService) ListFoods(ctx context.Context, userID uuid.UUID) ([]models.FoodCatalogEntry, error) {
	var entries []models.FoodCatalogEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteFood soft-deletes an entry. Meal logs referencing the name keep
// working: the aggregator treats the now-missing reference as zero.
func (s *CatalogService) DeleteFood(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.FoodCatalogEntry{}).Error
}

// LoadCatalog materializes the user's catalog as the aggregation core's
// lookup map.
func (s *CatalogService) LoadCatalog(ctx context.Context, userID uuid.UUID) (nutrition.Catalog, error) {
	entries, err := s.ListFoods(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog := make(nutrition.Catalog, len(entries))
	for _, e := range entries {
		catalog[e.Name] = nutrition.CatalogEntry{
			PerQuantity: nutrition.Macros{
				Protein:  e.Protein,
				Fats:     e.Fats,
				Carbs:    e.Carbs,
				Calories: e.Calories,
			},
			CostPerQuantity: e.CostPerQuantity,
			IsUnitFood:      e.IsUnitFood,
		}
	}
	return catalog, nil
}
