package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

// ActivityHandler handles activity completion records, streaks, and
// history grids.
type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activity := router.Group("/activity")
	{
		activity.PUT("/:date/:type", h.UpsertRecord)
		activity.GET("/:type/streak", h.GetStreaks)
		activity.GET("/:type/grid", h.GetGrid)
	}
}

func (h *ActivityHandler) UpsertRecord(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.activityService.UpsertRecord(c.Request.Context(), userID, c.Param("date"), c.Param("type"), &req)
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update activity"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ActivityHandler) GetStreaks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streaks, err := h.activityService.Streaks(c.Request.Context(), userID, c.Param("type"), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute streaks"})
		return
	}

	c.JSON(http.StatusOK, streaks)
}

func (h *ActivityHandler) GetGrid(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days := nutrition.DefaultHistoryDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > nutrition.MaxStreakLookback {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
			return
		}
		days = parsed
	}

	grid, err := h.activityService.HistoryGrid(c.Request.Context(), userID, c.Param("type"), days, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build history grid"})
		return
	}

	c.JSON(http.StatusOK, grid)
}
