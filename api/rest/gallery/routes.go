package gallery

import (
	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers gallery routes
func RegisterRoutes(router *gin.RouterGroup, imageRepo *images.Repository) {
	group := router.Group("/gallery")
	group.Use(auth.AuthMiddleware())
	{
		group.GET("", ListHandler(imageRepo))
		group.GET("/:id", GetHandler(imageRepo))
		group.DELETE("/:id", DeleteHandler(imageRepo))
	}
}
