package main

import (
	"flag"
	"log"

	"github.com/nutritrack/backend/config"
	"github.com/nutritrack/backend/internal/database"
)

func main() {
	dir := flag.String("dir", "migrations", "Directory containing SQL migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, *dir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("All migrations applied successfully")
}
