package services

import "context"

// MarketplaceService lists dictionaries that are for sale. It is readable
// without an account; viewerID 0 is an anonymous caller.
type MarketplaceService struct {
	dicts DictionaryStore
	views *viewBuilder
}

func NewMarketplaceService(deps Dependencies) *MarketplaceService {
	return &MarketplaceService{
		dicts: deps.Dictionaries,
		views: newViewBuilder(deps),
	}
}

func (s *MarketplaceService) List(ctx context.Context, viewerID uint, baseURL string) ([]DictionaryView, error) {
	dicts, err := s.dicts.ListForSale(ctx)
	if err != nil {
		return nil, err
	}
	return s.views.build(ctx, viewerID, dicts, baseURL)
}
