package purchases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/database/dbtest"
	"github.com/lexibazaar/marketplace/internal/entities"
)

func TestRepository_CreateAndExists(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := dbtest.CreateUser(t, db, "owner")
	buyer := dbtest.CreateUser(t, db, "buyer")
	dict := dbtest.CreateDictionary(t, db, owner.ID, "For sale", dbtest.ForSale("2.00"))

	exists, err := repo.Exists(ctx, buyer.ID, dict.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	p := &entities.Purchase{UserID: buyer.ID, DictionaryID: dict.ID, AccessType: entities.AccessTypePermanent}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.False(t, p.PurchasedAt.IsZero())

	exists, err = repo.Exists(ctx, buyer.ID, dict.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 0, dict.ID)
	require.NoError(t, err)
	assert.False(t, exists, "anonymous users never hold purchases")
}

func TestRepository_DuplicateIsUniqueViolation(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := dbtest.CreateUser(t, db, "owner")
	buyer := dbtest.CreateUser(t, db, "buyer")
	dict := dbtest.CreateDictionary(t, db, owner.ID, "For sale", dbtest.ForSale("2.00"))

	first := &entities.Purchase{UserID: buyer.ID, DictionaryID: dict.ID, AccessType: entities.AccessTypePermanent}
	require.NoError(t, repo.Create(ctx, first))

	second := &entities.Purchase{UserID: buyer.ID, DictionaryID: dict.ID, AccessType: entities.AccessTypeTemporary}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	var count int64
	require.NoError(t, db.Model(&entities.Purchase{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_PurchasedAmong(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := dbtest.CreateUser(t, db, "owner")
	buyer := dbtest.CreateUser(t, db, "buyer")
	a := dbtest.CreateDictionary(t, db, owner.ID, "A", dbtest.ForSale("1.00"))
	b := dbtest.CreateDictionary(t, db, owner.ID, "B", dbtest.ForSale("1.00"))
	dbtest.CreatePurchase(t, db, buyer.ID, b.ID)

	got, err := repo.PurchasedAmong(ctx, buyer.ID, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{b.ID: true}, got)

	got, err = repo.PurchasedAmong(ctx, 0, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Empty(t, got)
}
