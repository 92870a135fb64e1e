package main

import (
	"context"
	"log"
	"os"

	_ "kusgan/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"kusgan/internal/auth"
	"kusgan/internal/cache"
	"kusgan/internal/config"
	"kusgan/internal/db"
	"kusgan/internal/handler"
	"kusgan/internal/model"
	"kusgan/internal/repository"
	"kusgan/internal/router"
	"kusgan/internal/service"
	"kusgan/internal/store"
)

// @title Kusgan Membership API
// @version 1.0
// @description Volunteer-organization membership portal: authentication, member directory, daily presence and announcements.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop the records table if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping records table...")
		if err := gormDB.Migrator().DropTable(&model.Record{}); err != nil {
			log.Printf("Warning: Failed to drop table (may not exist): %v", err)
		}
		log.Println("Records table dropped")
	}

	if err := gormDB.AutoMigrate(&model.Record{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize the record store and repositories
	recordStore := store.NewRecordStore(gormDB)
	rosterRepo := repository.NewRosterRepository(recordStore)
	sessionRepo := repository.NewSessionRepository(recordStore)
	presenceRepo := repository.NewPresenceRepository(recordStore)
	announcementRepo := repository.NewAnnouncementRepository(recordStore)

	// Seed the built-in accounts on first start
	if created, err := service.EnsureDefaultRoster(context.Background(), rosterRepo); err != nil {
		log.Fatalf("seed roster: %v", err)
	} else if created > 0 {
		log.Printf("Seeded %d default accounts", created)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	presenceService := service.NewPresenceService(presenceRepo, cacheClient, cfg.PresenceRetentionDays)
	authService := service.NewAuthService(rosterRepo, sessionRepo, presenceService, jwtService, tokenStore, cacheClient)
	memberService := service.NewMemberService(rosterRepo, sessionRepo, cacheClient)
	announcementService := service.NewAnnouncementService(announcementRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	presenceHandler := handler.NewPresenceHandler(presenceService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService, memberService)
	dashboardHandler := handler.NewDashboardHandler(announcementService, presenceService)

	// Register routes
	router.Register(e, cfg, authHandler, memberHandler, presenceHandler, announcementHandler, dashboardHandler)

	log.Printf("Starting server on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
