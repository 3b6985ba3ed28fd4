// Command main runs the database seeder for Veritas.
package main

import (
	"context"
	"flag"
	"log"

	"veritas/internal/config"
	"veritas/internal/database"
	"veritas/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numNews := flag.Int("news", 40, "Number of news items to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Run(context.Background(), db, seed.Options{
		NumUsers:    *numUsers,
		NumNews:     *numNews,
		ShouldClean: *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users and %d news items", *numUsers, *numNews)
}
