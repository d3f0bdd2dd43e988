// Command generate_demo creates a demo database with sample dictionaries.
// Usage: go run cmd/generate_demo/main.go [-output path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/lexibazaar/marketplace/internal/config"
	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/seed"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("output", defaultDemoDatabasePath, "path to the demo database file")
	dictionaries := flag.Int("dictionaries", 8, "number of sample dictionaries")
	wordsPer := flag.Int("words-per-dictionary", 8, "words in each sample dictionary")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Start fresh so the demo never carries state from an older run
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     *dbPath,
		LogLevel: "error",
	})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	result, err := seed.Seed(context.Background(), db.DB, seed.Options{
		Dictionaries:       *dictionaries,
		WordsPerDictionary: *wordsPer,
	})
	if err != nil {
		log.Fatalf("Failed to seed demo database: %v", err)
	}

	log.Printf("Created %d dictionaries with %d words", result.Dictionaries, result.Words)
	log.Printf("Sign in as %s or %s with password %q", seed.OwnerEmail, seed.BuyerEmail, seed.DemoPassword)
	log.Println("Demo database generated successfully!")
}
