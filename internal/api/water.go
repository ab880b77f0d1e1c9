package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

// WaterHandler handles water intake logging.
type WaterHandler struct {
	waterService *service.WaterService
	writeLimiter gin.HandlerFunc
}

func NewWaterHandler(waterService *service.WaterService, writeLimiter gin.HandlerFunc) *WaterHandler {
	return &WaterHandler{
		waterService: waterService,
		writeLimiter: writeLimiter,
	}
}

func (h *WaterHandler) RegisterRoutes(router *gin.RouterGroup) {
	water := router.Group("/water")
	{
		water.GET("/:date", h.GetDay)
		water.PUT("/:date/target", h.SetTarget)
		if h.writeLimiter != nil {
			water.POST("/:date/entries", h.writeLimiter, h.AddEntry)
		} else {
			water.POST("/:date/entries", h.AddEntry)
		}
	}
}

func (h *WaterHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.AddWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.waterService.AddEntry(c.Request.Context(), userID, c.Param("date"), &req)
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log water"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *WaterHandler) GetDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	record, err := h.waterService.GetDay(c.Request.Context(), userID, c.Param("date"))
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load water record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *WaterHandler) SetTarget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.SetWaterTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.waterService.SetTarget(c.Request.Context(), userID, c.Param("date"), req.TargetAmountML)
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set water target"})
		return
	}

	c.JSON(http.StatusOK, record)
}
