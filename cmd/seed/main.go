package main

import (
	"context"
	"log"

	"kusgan/internal/config"
	"kusgan/internal/db"
	"kusgan/internal/model"
	"kusgan/internal/repository"
	"kusgan/internal/service"
	"kusgan/internal/store"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Record{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	rosterRepo := repository.NewRosterRepository(store.NewRecordStore(gormDB))

	created, err := service.EnsureDefaultRoster(context.Background(), rosterRepo)
	if err != nil {
		log.Fatalf("Failed to seed roster: %v", err)
	}

	if created == 0 {
		log.Println("Roster already present, nothing to do")
		return
	}
	log.Printf("Seed completed successfully: %d default accounts created", created)
}
