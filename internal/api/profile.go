package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/nutrition"
	"github.com/nutritrack/backend/internal/service"
	"github.com/nutritrack/backend/internal/types"
)

// ProfileHandler handles the biometric profile, macro targets, and
// avatar upload.
type ProfileHandler struct {
	profileService *service.ProfileService
	avatarService  *service.AvatarService
}

func NewProfileHandler(profileService *service.ProfileService, avatarService *service.AvatarService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		avatarService:  avatarService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/targets", h.GetTargets)
		profile.PUT("/targets", h.SetTargets)
		profile.POST("/avatar", h.UploadAvatar)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if errors.Is(err, nutrition.ErrUnsupportedGoal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported goal"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetTargets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	targets, err := h.profileService.GetTargets(c.Request.Context(), userID)
	if errors.Is(err, service.ErrProfileIncomplete) {
		c.JSON(http.StatusConflict, gin.H{"error": "biometric profile incomplete"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate targets"})
		return
	}

	c.JSON(http.StatusOK, targets)
}

func (h *ProfileHandler) SetTargets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.SetTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	consistent, err := h.profileService.SetTargets(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set targets"})
		return
	}

	resp := types.SetTargetsResponse{
		Protein:  req.Protein,
		Fats:     req.Fats,
		Carbs:    req.Carbs,
		Calories: req.Calories,
	}
	if !consistent {
		resp.Warning = "calories diverge from macro-implied calories by more than 10%"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.avatarService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "avatar storage not configured"})
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing avatar file"})
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.avatarService.Upload(c.Request.Context(), userID, file, header.Header.Get("Content-Type"))
	if errors.Is(err, service.ErrAvatarTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "avatar too large"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload avatar"})
		return
	}

	if err := h.profileService.SetAvatarURL(c.Request.Context(), userID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store avatar url"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
