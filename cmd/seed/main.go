// Command main runs the database seeder for PostPilot.
package main

import (
	"flag"
	"log"

	"postpilot/internal/config"
	"postpilot/internal/database"
	"postpilot/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numTemplates := flag.Int("templates", 5, "Number of templates to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d templates, clean=%v\n", *numUsers, *numTemplates, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedUsers(*numUsers); err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if _, err := s.SeedTemplates(*numTemplates); err != nil {
		log.Fatalf("Template seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
}
