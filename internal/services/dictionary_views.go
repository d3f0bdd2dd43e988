package services

import (
	"context"
	"fmt"

	"github.com/lexibazaar/marketplace/internal/entities"
)

// viewBuilder annotates dictionaries for one caller, loading word counts and
// purchase flags for the whole batch at once.
type viewBuilder struct {
	words     WordStore
	purchases PurchaseStore
	users     UserStore
	covers    CoverStorage
}

func newViewBuilder(deps Dependencies) *viewBuilder {
	return &viewBuilder{
		words:     deps.Words,
		purchases: deps.Purchases,
		users:     deps.Users,
		covers:    deps.Covers,
	}
}

func (b *viewBuilder) build(ctx context.Context, viewerID uint, dicts []entities.Dictionary, baseURL string) ([]DictionaryView, error) {
	views := make([]DictionaryView, 0, len(dicts))
	if len(dicts) == 0 {
		return views, nil
	}

	ids := make([]uint, len(dicts))
	ownerIDs := make([]uint, 0, len(dicts))
	seenOwner := make(map[uint]bool, len(dicts))
	for i := range dicts {
		ids[i] = dicts[i].ID
		if !seenOwner[dicts[i].OwnerID] {
			seenOwner[dicts[i].OwnerID] = true
			ownerIDs = append(ownerIDs, dicts[i].OwnerID)
		}
	}

	counts, err := b.words.CountByDictionaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	purchased, err := b.purchases.PurchasedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	owners, err := b.users.UsernamesByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	for i := range dicts {
		d := &dicts[i]
		view := b.view(d, viewerID, counts[d.ID], purchased[d.ID], baseURL)
		view.OwnerUsername = owners[d.OwnerID]
		views = append(views, view)
	}
	return views, nil
}

func (b *viewBuilder) one(ctx context.Context, viewerID uint, dict *entities.Dictionary, baseURL string) (*DictionaryView, error) {
	views, err := b.build(ctx, viewerID, []entities.Dictionary{*dict}, baseURL)
	if err != nil {
		return nil, fmt.Errorf("annotate dictionary %d: %w", dict.ID, err)
	}
	return &views[0], nil
}

func (b *viewBuilder) view(d *entities.Dictionary, viewerID uint, wordCount int64, purchased bool, baseURL string) DictionaryView {
	return DictionaryView{
		ID:                   d.ID,
		Owner:                d.OwnerID,
		Name:                 d.Name,
		Description:          d.Description,
		SourceLang:           d.SourceLang,
		TargetLang:           d.TargetLang,
		Price:                d.Price.StringFixed(2),
		AllowTemporaryAccess: d.AllowTemporaryAccess,
		TemporaryDays:        d.TemporaryDays,
		IsForSale:            d.IsForSale,
		CoverImage:           optionalString(d.CoverImage),
		CoverImageURL:        b.coverURL(d, baseURL),
		IsOwner:              d.IsOwnedBy(viewerID),
		WordCount:            wordCount,
		IsPurchased:          purchased,
		CreatedAt:            d.CreatedAt,
	}
}

// coverURL prefers the uploaded file over the external URL.
func (b *viewBuilder) coverURL(d *entities.Dictionary, baseURL string) *string {
	if d.CoverImageFile != "" && b.covers != nil {
		return optionalString(b.covers.URL(baseURL, d.CoverImageFile))
	}
	return optionalString(d.CoverImage)
}
