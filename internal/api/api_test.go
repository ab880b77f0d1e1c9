package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutritrack/backend/internal/api"
	"github.com/nutritrack/backend/internal/router"
	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/testhelpers"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDatabase(t)

	authService := service.NewAuthService(db, "test-secret")
	profileService := service.NewProfileService(db, nil)
	catalogService := service.NewCatalogService(db)
	mealLogService := service.NewMealLogService(db, catalogService)
	activityService := service.NewActivityService(db)
	waterService := service.NewWaterService(db)

	return router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewProfileHandler(profileService, nil),
		api.NewCatalogHandler(catalogService),
		api.NewMealLogHandler(mealLogService, nil),
		api.NewActivityHandler(activityService),
		api.NewWaterHandler(waterService, nil),
		api.NewDashboardHandler(profileService, mealLogService, waterService, activityService),
		authService,
	)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, engine *gin.Engine) string {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/catalog", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	engine := setupRouter(t)
	registerUser(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Alice Again", "email": "alice@example.com", "password": "password456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileTargetsFlow(t *testing.T) {
	engine := setupRouter(t)
	token := registerUser(t, engine)

	// Targets before the profile exists.
	w := doJSON(t, engine, http.MethodGet, "/api/v1/profile/targets", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, engine, http.MethodPut, "/api/v1/profile", token, gin.H{
		"gender": "male", "age": 30, "height_cm": 175, "weight_kg": 70,
		"activity_level": "moderate", "goal": "maintain",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/profile/targets", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var targets struct {
		Protein  int `json:"protein"`
		Carbs    int `json:"carbs"`
		Fats     int `json:"fats"`
		Calories int `json:"calories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &targets))
	assert.Equal(t, 160, targets.Protein)
	assert.Equal(t, 288, targets.Carbs)
	assert.Equal(t, 85, targets.Fats)
	assert.Equal(t, 2556, targets.Calories)
}

func TestSetTargetsWarnsOnInconsistency(t *testing.T) {
	engine := setupRouter(t)
	token := registerUser(t, engine)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/profile/targets", token, gin.H{
		"protein": 150, "carbs": 250, "fats": 80, "calories": 1500,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Warning string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Warning)
}

func TestMealLogAndDashboardFlow(t *testing.T) {
	engine := setupRouter(t)
	token := registerUser(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/catalog", token, gin.H{
		"name": "Whole Egg", "protein": 6.3, "fats": 5.3, "carbs": 0.4,
		"calories": 72, "cost_per_quantity": 0.5, "is_unit_food": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodPut, "/api/v1/log/2026-03-10/slots/breakfast", token, gin.H{
		"selected_foods": []gin.H{{"name": "Whole Egg", "quantity": 3}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/log/2026-03-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var day struct {
		Totals struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
		TotalCost float64 `json:"total_cost"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.InDelta(t, 216, day.Totals.Calories, 0.001)
	assert.InDelta(t, 1.5, day.TotalCost, 0.001)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/log/not-a-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Dashboard tolerates the missing profile.
	w = doJSON(t, engine, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestActivityStreakEndpoints(t *testing.T) {
	engine := setupRouter(t)
	token := registerUser(t, engine)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/activity/2026-03-10/workout", token, gin.H{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/activity/workout/grid?days=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/activity/workout/streak", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWaterEndpoints(t *testing.T) {
	engine := setupRouter(t)
	token := registerUser(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/water/2026-03-10/entries", token, gin.H{
		"amount_ml": 500,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/water/2026-03-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var record struct {
		TotalAmountML  int `json:"total_amount_ml"`
		TargetAmountML int `json:"target_amount_ml"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, 500, record.TotalAmountML)
	assert.Equal(t, 2000, record.TargetAmountML)
}
