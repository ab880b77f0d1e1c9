package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

// dashboardActivityTypes are the activity streaks shown on the landing
// page.
var dashboardActivityTypes = []string{"nutrition", "workout"}

// DashboardHandler composes today's totals, targets, water status and
// streaks into one landing-page snapshot.
type DashboardHandler struct {
	profileService  *service.ProfileService
	mealLogService  *service.MealLogService
	waterService    *service.WaterService
	activityService *service.ActivityService
}

func NewDashboardHandler(
	profileService *service.ProfileService,
	mealLogService *service.MealLogService,
	waterService *service.WaterService,
	activityService *service.ActivityService,
) *DashboardHandler {
	return &DashboardHandler{
		profileService:  profileService,
		mealLogService:  mealLogService,
		waterService:    waterService,
		activityService: activityService,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
	}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	today := now.Format(nutrition.DateLayout)
	ctx := c.Request.Context()

	stats := types.DashboardStats{Date: today}

	totals, err := h.mealLogService.DayTotals(ctx, userID, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load day totals"})
		return
	}
	stats.Totals = totals

	// A missing profile just leaves targets zeroed; the dashboard is
	// still useful without them.
	targets, err := h.profileService.GetTargets(ctx, userID)
	if err != nil && !errors.Is(err, service.ErrProfileIncomplete) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load targets"})
		return
	}
	if targets != nil {
		stats.Targets = *targets
	}

	water, err := h.waterService.GetDay(ctx, userID, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load water record"})
		return
	}
	stats.WaterTotalML = water.TotalAmountML
	stats.WaterTargetML = water.TargetAmountML
	stats.WaterStreak = water.StreakCount

	for _, activityType := range dashboardActivityTypes {
		streak, err := h.activityService.Streaks(ctx, userID, activityType, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute streaks"})
			return
		}
		stats.Streaks = append(stats.Streaks, *streak)
	}

	c.JSON(http.StatusOK, stats)
}
