package services

import (
	"context"
	"fmt"

	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/entities"
)

const purchaseSuccessMessage = "Dictionary purchased successfully!"

type PurchaseInput struct {
	Code       string `json:"payment_code"`
	AccessType string `json:"access_type"`
}

type PurchaseService struct {
	dicts     DictionaryStore
	purchases PurchaseStore
	auditor   Auditor
	code      string
}

func NewPurchaseService(deps Dependencies) *PurchaseService {
	return &PurchaseService{
		dicts:     deps.Dictionaries,
		purchases: deps.Purchases,
		auditor:   deps.Auditor,
		code:      deps.PurchaseCode,
	}
}

// Purchase grants userID access to the dictionary. The checks run in a fixed
// order and the first failing one is reported; a rejected purchase writes
// nothing.
func (s *PurchaseService) Purchase(ctx context.Context, userID, dictionaryID uint, in PurchaseInput) (*PurchaseReceipt, error) {
	dict, err := loadDictionary(ctx, s.dicts, dictionaryID)
	if err != nil {
		return nil, err
	}

	switch {
	case in.Code == "":
		return nil, ErrPaymentCodeRequired
	case in.Code != s.code:
		return nil, ErrInvalidPaymentCode
	case !dict.IsForSale:
		return nil, ErrNotForSale
	case dict.IsOwnedBy(userID):
		return nil, ErrOwnDictionary
	}

	exists, err := s.purchases.Exists(ctx, userID, dict.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyPurchased
	}

	purchase := &entities.Purchase{
		UserID:       userID,
		DictionaryID: dict.ID,
		AccessType:   entities.ParseAccessType(in.AccessType),
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		// A concurrent request for the same pair got there first.
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyPurchased
		}
		return nil, fmt.Errorf("create purchase: %w", err)
	}

	if s.auditor != nil {
		s.auditor.LogPurchase(ctx, purchase, dict.Name)
	}

	return &PurchaseReceipt{
		ID:             purchase.ID,
		DictionaryID:   dict.ID,
		DictionaryName: dict.Name,
		AccessType:     purchase.AccessType,
		PurchasedAt:    purchase.PurchasedAt,
		Message:        purchaseSuccessMessage,
	}, nil
}
