package main

import (
	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/iamhere/usage"
	"codeberg.org/iamhere/server/iamhere/users"
	"codeberg.org/iamhere/server/internal/botdefense"
	"codeberg.org/iamhere/server/internal/config"
	"codeberg.org/iamhere/server/internal/gemini"
	"codeberg.org/iamhere/server/internal/generation"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *pgxpool.Pool
	config    *config.Config
	userRepo  *users.Repository
	imageRepo *images.Repository
	usageRepo *usage.Repository
	services  *Services
	defense   *botdefense.Defense
	router    *gin.Engine
}

// holds the external service clients and the generation pipeline
type Services struct {
	Gemini     *gemini.Client
	Generation *generation.Service
}
