package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lexibazaar/marketplace/internal/config"
	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/logging"
	"github.com/lexibazaar/marketplace/internal/seed"
)

// SeedCommand fills the configured database with demo data.
type SeedCommand struct {
	Dictionaries       int
	WordsPerDictionary int
	DatabasePath       string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.IntVar(&cmd.Dictionaries, "dictionaries", 5, "Number of sample dictionaries to create")
	fs.IntVar(&cmd.WordsPerDictionary, "words-per-dictionary", 8, "Number of words in each sample dictionary")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the sqlite database (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create demo users, dictionaries and words. Safe to run repeatedly.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nDemo accounts (password %q):\n", seed.DemoPassword)
		fmt.Fprintf(os.Stderr, "  %s\n  %s\n", seed.OwnerEmail, seed.BuyerEmail)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Dictionaries < 0 || cmd.WordsPerDictionary < 0 {
		return fmt.Errorf("-dictionaries and -words-per-dictionary must not be negative")
	}
	return nil
}

func (cmd *SeedCommand) Run(cfg *config.Config) error {
	if cmd.DatabasePath != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = cmd.DatabasePath
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := seed.Seed(context.Background(), db.DB, seed.Options{
		Dictionaries:       cmd.Dictionaries,
		WordsPerDictionary: cmd.WordsPerDictionary,
		BcryptCost:         cfg.Auth.BcryptCost,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Printf("Created %d users, %d dictionaries, %d words, %d purchases\n",
		result.Users, result.Dictionaries, result.Words, result.Purchases)
	return nil
}
