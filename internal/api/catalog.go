package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

// CatalogHandler handles the food catalog CRUD.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("", h.ListFoods)
		catalog.POST("", h.CreateFood)
		catalog.PUT("/:id", h.UpdateFood)
		catalog.DELETE("/:id", h.DeleteFood)
	}
}

func (h *CatalogHandler) ListFoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	foods, err := h.catalogService.ListFoods(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list foods"})
		return
	}

	c.JSON(http.StatusOK, foods)
}

func (h *CatalogHandler) CreateFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	food, err := h.catalogService.CreateFood(c.Request.Context(), userID, &req)
	if errors.Is(err, service.ErrFoodExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "food already in catalog"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create food"})
		return
	}

	c.JSON(http.StatusCreated, food)
}

func (h *CatalogHandler) UpdateFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	var req types.CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	food, err := h.catalogService.UpdateFood(c.Request.Context(), userID, id, &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update food"})
		return
	}

	c.JSON(http.StatusOK, food)
}

func (h *CatalogHandler) DeleteFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	if err := h.catalogService.DeleteFood(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "food deleted"})
}
