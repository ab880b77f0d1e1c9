package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

// MealLogHandler handles per-slot meal logging and day/range
// summaries.
type MealLogHandler struct {
	mealLogService *service.MealLogService
	writeLimiter   gin.HandlerFunc
}

// NewMealLogHandler creates the handler; writeLimiter may be nil when
// rate limiting is disabled (tests).
func NewMealLogHandler(mealLogService *service.MealLogService, writeLimiter gin.HandlerFunc) *MealLogHandler {
	return &MealLogHandler{
		mealLogService: mealLogService,
		writeLimiter:   writeLimiter,
	}
}

func (h *MealLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logGroup := router.Group("/log")
	{
		logGroup.GET("/range", h.GetRange)
		logGroup.GET("/:date", h.GetDay)
		if h.writeLimiter != nil {
			logGroup.PUT("/:date/slots/:slot", h.writeLimiter, h.UpdateSlot)
		} else {
			logGroup.PUT("/:date/slots/:slot", h.UpdateSlot)
		}
	}
}

func (h *MealLogHandler) UpdateSlot(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	slot, err := h.mealLogService.UpdateSlot(c.Request.Context(), userID, c.Param("date"), c.Param("slot"), &req)
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update slot"})
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *MealLogHandler) GetDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	day, err := h.mealLogService.GetDay(c.Request.Context(), userID, c.Param("date"))
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load day"})
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *MealLogHandler) GetRange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := h.mealLogService.GetRange(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load range"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
