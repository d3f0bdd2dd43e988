// Package access decides who may read or change a dictionary.
//
// A dictionary is readable by its owner and by every user holding a purchase
// for it. Only the owner may change or delete it. Callers load the dictionary
// first and report a missing one as not found before consulting the policy.
package access

import (
	"context"
	"fmt"

	"github.com/lexibazaar/marketplace/internal/entities"
)

// PurchaseChecker reports whether a purchase exists for (userID, dictionaryID).
type PurchaseChecker interface {
	Exists(ctx context.Context, userID, dictionaryID uint) (bool, error)
}

type Policy struct {
	purchases PurchaseChecker
}

func NewPolicy(purchases PurchaseChecker) *Policy {
	return &Policy{purchases: purchases}
}

// CanAccess reports whether userID may read the dictionary and its words.
// userID 0 is an anonymous caller and never has access.
func (p *Policy) CanAccess(ctx context.Context, userID uint, dict *entities.Dictionary) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	if dict.IsOwnedBy(userID) {
		return true, nil
	}

	purchased, err := p.purchases.Exists(ctx, userID, dict.ID)
	if err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return purchased, nil
}

// CanModify reports whether userID may update or delete the dictionary.
func (p *Policy) CanModify(userID uint, dict *entities.Dictionary) bool {
	return dict.IsOwnedBy(userID)
}
