package generate

import (
	"codeberg.org/iamhere/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the image generation route
func RegisterRoutes(router *gin.RouterGroup, svc Service, middleware ...gin.HandlerFunc) {
	handlers := append([]gin.HandlerFunc{auth.AuthMiddleware()}, middleware...)
	handlers = append(handlers, Handler(svc))

	router.POST("/generate", handlers...)
}
