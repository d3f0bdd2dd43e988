// Package seed fills a database with demo users, dictionaries and words.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lexibazaar/marketplace/internal/auth"
	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/database/dictionaries"
	"github.com/lexibazaar/marketplace/internal/database/progress"
	"github.com/lexibazaar/marketplace/internal/database/purchases"
	"github.com/lexibazaar/marketplace/internal/database/users"
	"github.com/lexibazaar/marketplace/internal/database/words"
	"github.com/lexibazaar/marketplace/internal/entities"
)

// Demo accounts. The passwords are public; never seed a production database.
const (
	OwnerUsername = "demo_owner"
	OwnerEmail    = "owner@demo.lexibazaar.test"
	BuyerUsername = "demo_buyer"
	BuyerEmail    = "buyer@demo.lexibazaar.test"
	DemoPassword  = "demo-password"
)

type Options struct {
	Dictionaries       int
	WordsPerDictionary int
	BcryptCost         int
	Logger             *zap.Logger
}

// Result counts what a run created. Rows that already existed are not
// counted.
type Result struct {
	Users        int
	Dictionaries int
	Words        int
	Purchases    int
}

type seeder struct {
	users     *users.Repository
	dicts     *dictionaries.Repository
	words     *words.Repository
	purchases *purchases.Repository
	progress  *progress.Repository
	opts      Options
	logger    *zap.Logger
	result    Result
}

// Seed creates the demo owner and buyer, opts.Dictionaries dictionaries owned
// by the owner with up to opts.WordsPerDictionary words each, and one
// purchase with some progress for the buyer. Running it twice changes
// nothing the second time.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	if opts.Dictionaries < 0 || opts.WordsPerDictionary < 0 {
		return Result{}, fmt.Errorf("counts must not be negative")
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &seeder{
		users:     users.NewRepository(db),
		dicts:     dictionaries.NewRepository(db),
		words:     words.NewRepository(db),
		purchases: purchases.NewRepository(db),
		progress:  progress.NewRepository(db),
		opts:      opts,
		logger:    logger,
	}
	return s.run(ctx)
}

func (s *seeder) run(ctx context.Context) (Result, error) {
	owner, err := s.user(ctx, OwnerUsername, OwnerEmail)
	if err != nil {
		return s.result, err
	}
	buyer, err := s.user(ctx, BuyerUsername, BuyerEmail)
	if err != nil {
		return s.result, err
	}

	var firstForSale *entities.Dictionary
	for i := 0; i < s.opts.Dictionaries; i++ {
		dict, err := s.dictionary(ctx, owner.ID, i)
		if err != nil {
			return s.result, err
		}
		if err := s.fillWords(ctx, dict, catalog[i%len(catalog)].Words); err != nil {
			return s.result, err
		}
		if firstForSale == nil && dict.IsForSale {
			firstForSale = dict
		}
	}

	if firstForSale != nil {
		if err := s.purchase(ctx, buyer.ID, firstForSale); err != nil {
			return s.result, err
		}
	}

	s.logger.Info("seed complete",
		zap.Int("users", s.result.Users),
		zap.Int("dictionaries", s.result.Dictionaries),
		zap.Int("words", s.result.Words),
		zap.Int("purchases", s.result.Purchases),
	)
	return s.result, nil
}

func (s *seeder) user(ctx context.Context, username, email string) (*entities.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !database.IsNotFound(err) {
		return nil, fmt.Errorf("look up %s: %w", username, err)
	}

	hash, err := auth.HashPassword(DemoPassword, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Username:           username,
		Email:              email,
		PasswordHash:       hash,
		Balance:            decimal.NewFromInt(100),
		NotificationHour:   entities.DefaultNotificationHour,
		NotificationMinute: entities.DefaultNotificationMinute,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create %s: %w", username, err)
	}
	s.result.Users++
	s.logger.Debug("created user", zap.String("username", username))
	return user, nil
}

// dictionary returns the i-th sample dictionary, creating it if needed.
// Past the end of the catalog names get a numeric suffix.
func (s *seeder) dictionary(ctx context.Context, ownerID uint, i int) (*entities.Dictionary, error) {
	sample := catalog[i%len(catalog)]
	name := sample.Name
	if round := i / len(catalog); round > 0 {
		name = fmt.Sprintf("%s %d", sample.Name, round+1)
	}

	existing, err := s.dicts.GetByOwnerAndName(ctx, ownerID, name)
	if err == nil {
		return existing, nil
	}
	if !database.IsNotFound(err) {
		return nil, fmt.Errorf("look up dictionary %q: %w", name, err)
	}

	dict := &entities.Dictionary{
		OwnerID:       ownerID,
		Name:          name,
		Description:   sample.Description,
		SourceLang:    sample.SourceLang,
		TargetLang:    sample.TargetLang,
		Price:         decimal.Zero,
		TemporaryDays: entities.DefaultTemporaryDays,
	}
	if sample.Price != "" {
		dict.IsForSale = true
		dict.Price = decimal.RequireFromString(sample.Price)
	}
	if !dict.SaleReady() {
		return nil, fmt.Errorf("sample dictionary %q is listed without a description", name)
	}

	if err := s.dicts.Create(ctx, dict); err != nil {
		return nil, fmt.Errorf("create dictionary %q: %w", name, err)
	}
	s.result.Dictionaries++
	return dict, nil
}

// fillWords adds sample words missing from the dictionary. When more words
// are requested than the sample has, the list repeats with a suffix.
func (s *seeder) fillWords(ctx context.Context, dict *entities.Dictionary, sample [][2]string) error {
	for i := 0; i < s.opts.WordsPerDictionary; i++ {
		pair := sample[i%len(sample)]
		word, translation := pair[0], pair[1]
		if round := i / len(sample); round > 0 {
			word = fmt.Sprintf("%s (%d)", word, round+1)
			translation = fmt.Sprintf("%s (%d)", translation, round+1)
		}

		exists, err := s.words.ExistsInDictionary(ctx, dict.ID, word)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.words.Create(ctx, &entities.Word{
			DictionaryID: dict.ID,
			Word:         word,
			Translation:  translation,
		}); err != nil {
			return fmt.Errorf("create word %q: %w", word, err)
		}
		s.result.Words++
	}
	return nil
}

// purchase gives the buyer permanent access and marks the first word learned.
func (s *seeder) purchase(ctx context.Context, buyerID uint, dict *entities.Dictionary) error {
	owned, err := s.purchases.Exists(ctx, buyerID, dict.ID)
	if err != nil {
		return err
	}
	if !owned {
		if err := s.purchases.Create(ctx, &entities.Purchase{
			UserID:       buyerID,
			DictionaryID: dict.ID,
			AccessType:   entities.AccessTypePermanent,
		}); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		s.result.Purchases++
	}

	p, created, err := s.progress.GetOrCreate(ctx, buyerID, dict.ID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	list, err := s.words.ListByDictionary(ctx, dict.ID)
	if err != nil || len(list) == 0 {
		return err
	}
	return s.progress.ReplaceLearnedWords(ctx, p, list[:1])
}
