package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/entities"
	"github.com/lexibazaar/marketplace/internal/images"
)

// Dependencies bundles what the services need. Unused fields may be left nil
// by callers that construct a single service.
type Dependencies struct {
	Dictionaries DictionaryStore
	Words        WordStore
	Purchases    PurchaseStore
	Progress     ProgressStore
	Users        UserStore
	Policy       *access.Policy
	Images       ImageFinder
	Covers       CoverStorage
	Auditor      Auditor
	Logger       *zap.Logger
	PurchaseCode string
}

func (d Dependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// loadDictionary maps a missing row to ErrDictionaryNotFound.
func loadDictionary(ctx context.Context, dicts DictionaryStore, id uint) (*entities.Dictionary, error) {
	dict, err := dicts.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrDictionaryNotFound
		}
		return nil, fmt.Errorf("load dictionary %d: %w", id, err)
	}
	return dict, nil
}

// loadAccessible loads the dictionary and checks read access, in that order,
// so a missing dictionary is reported as not found even to strangers.
func loadAccessible(ctx context.Context, dicts DictionaryStore, policy *access.Policy, userID, id uint) (*entities.Dictionary, error) {
	dict, err := loadDictionary(ctx, dicts, id)
	if err != nil {
		return nil, err
	}

	ok, err := policy.CanAccess(ctx, userID, dict)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoAccess
	}
	return dict, nil
}

// lookupImage asks the finder for an image and returns "" on any failure.
func lookupImage(ctx context.Context, finder ImageFinder, logger *zap.Logger, query string) string {
	if finder == nil {
		return ""
	}

	url, err := finder.Find(ctx, query)
	if err != nil {
		if !errors.Is(err, images.ErrDisabled) {
			logger.Warn("image lookup failed", zap.String("query", query), zap.Error(err))
		}
		return ""
	}
	return url
}
