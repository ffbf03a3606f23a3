package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/iamhere/usage"
	"codeberg.org/iamhere/server/iamhere/users"
	"codeberg.org/iamhere/server/internal/botdefense"
	"codeberg.org/iamhere/server/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// small pool sized for managed-Postgres pooler tiers
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// use simple protocol for PgBouncer compatibility; transaction-mode
	// poolers don't support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	imageRepo := images.NewRepository(db)
	usageRepo := usage.NewRepository(db)

	services := InitializeServices(cfg, imageRepo, usageRepo)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:        db,
		config:    cfg,
		userRepo:  userRepo,
		imageRepo: imageRepo,
		usageRepo: usageRepo,
		services:  services,
		defense:   botdefense.New(botdefense.DefaultConfig()),
		router:    router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
