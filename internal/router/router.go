package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/api"
	"github.com/nutritrack/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	catalogHandler *api.CatalogHandler,
	mealLogHandler *api.MealLogHandler,
	activityHandler *api.ActivityHandler,
	waterHandler *api.WaterHandler,
	dashboardHandler *api.DashboardHandler,
	validator middleware.TokenValidator,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		profileHandler.RegisterRoutes(protected)
		catalogHandler.RegisterRoutes(protected)
		mealLogHandler.RegisterRoutes(protected)
		activityHandler.RegisterRoutes(protected)
		waterHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
	}

	return router
}
