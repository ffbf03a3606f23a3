package auth

import (
	"codeberg.org/iamhere/server/iamhere/users"
	"codeberg.org/iamhere/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers OAuth authentication routes
func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository) {
	group := router.Group("/auth")
	{
		group.GET("/:provider", BeginAuthHandler())
		group.GET("/:provider/callback", CallbackHandler(userRepo))
		group.GET("/me", auth.AuthMiddleware(), GetCurrentUserHandler(userRepo))
	}
}
