// Command main populates the local store with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"tastebook/internal/config"
	"tastebook/internal/seed"
	"tastebook/internal/storage"
	"tastebook/internal/store"
)

func main() {
	numUsers := flag.Int("users", 12, "Number of users to create")
	numRecipes := flag.Int("recipes", 40, "Number of recipes to create")
	clean := flag.Bool("clean", true, "Empty the store before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	slots, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer slots.Close()

	records, err := store.New(ctx, slots)
	if err != nil {
		log.Fatalf("Failed to load record store: %v", err)
	}

	s := seed.NewSeeder(records)
	if err := s.Run(ctx, seed.Options{
		NumUsers:   *numUsers,
		NumRecipes: *numRecipes,
		Clean:      *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done: %d records in the store. All demo users have the password: password123", records.Size())
}
