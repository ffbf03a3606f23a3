package users

import (
	"net/http"
	"time"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/iamhere/usage"
	"codeberg.org/iamhere/server/iamhere/users"
	"codeberg.org/iamhere/server/internal/auth"
	"codeberg.org/iamhere/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// StatsHandler returns the numbers on the stats page: total images generated,
// today's usage and the configured daily cap
func StatsHandler(imageRepo *images.Repository, usageRepo *usage.Repository, dailyLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		total, err := imageRepo.CountForUser(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load stats", err)
			return
		}

		today, err := usageRepo.CountForDay(c.Request.Context(), userID, time.Now())
		if err != nil {
			errors.InternalError(c, "failed to load stats", err)
			return
		}

		c.JSON(http.StatusOK, users.Stats{
			TotalImages: total,
			DailyUsage:  today,
			DailyLimit:  dailyLimit,
		})
	}
}

// UpdateProfileHandler updates the user's display name and avatar
func UpdateProfileHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req users.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.UpdateProfile(c.Request.Context(), userID, req.Name, req.AvatarURL)
		if err != nil {
			errors.InternalError(c, "failed to update profile", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateLanguageHandler stores the user's interface language preference
func UpdateLanguageHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req UpdateLanguageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.UpdateLanguage(c.Request.Context(), userID, req.Language)
		if err != nil {
			errors.InternalError(c, "failed to update language", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// DeleteAccountHandler deletes the user and everything they own
func DeleteAccountHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		if err := userRepo.DeleteAccount(c.Request.Context(), userID); err != nil {
			errors.InternalError(c, "failed to delete account", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "account deleted"})
	}
}
