package users

import (
	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/iamhere/usage"
	"codeberg.org/iamhere/server/iamhere/users"
	"codeberg.org/iamhere/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers user account routes
func RegisterRoutes(
	router *gin.RouterGroup,
	userRepo *users.Repository,
	imageRepo *images.Repository,
	usageRepo *usage.Repository,
	dailyLimit int,
) {
	group := router.Group("/users")
	group.Use(auth.AuthMiddleware())
	{
		group.GET("/stats", StatsHandler(imageRepo, usageRepo, dailyLimit))
		group.PUT("/profile", UpdateProfileHandler(userRepo))
		group.PUT("/language", UpdateLanguageHandler(userRepo))
		group.DELETE("/account", DeleteAccountHandler(userRepo))
	}
}
