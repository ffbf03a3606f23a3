package main

import (
	"codeberg.org/iamhere/server/api/rest/auth"
	"codeberg.org/iamhere/server/api/rest/gallery"
	"codeberg.org/iamhere/server/api/rest/generate"
	"codeberg.org/iamhere/server/api/rest/health"
	"codeberg.org/iamhere/server/api/rest/users"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(server.defense.Middleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo)
		generate.RegisterRoutes(v1, server.services.Generation, GenerateRateLimiter())
		gallery.RegisterRoutes(v1, server.imageRepo)
		users.RegisterRoutes(v1, server.userRepo, server.imageRepo, server.usageRepo, server.services.Generation.DailyLimit())
	}
}
