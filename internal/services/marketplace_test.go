package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibazaar/marketplace/internal/database/dbtest"
)

func TestMarketplaceService_List(t *testing.T) {
	env := setupTestEnv(t)
	alice := dbtest.CreateUser(t, env.db, "alice")
	bob := dbtest.CreateUser(t, env.db, "bob")
	listed := dbtest.CreateDictionary(t, env.db, alice.ID, "Listed", dbtest.ForSale("3.00"))
	dbtest.CreateDictionary(t, env.db, alice.ID, "Private")
	dbtest.CreateWords(t, env.db, listed.ID, 2)
	svc := NewMarketplaceService(env.deps)
	ctx := context.Background()

	anon, err := svc.List(ctx, 0, testBaseURL)
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Equal(t, listed.ID, anon[0].ID)
	assert.False(t, anon[0].IsOwner)
	assert.False(t, anon[0].IsPurchased)
	assert.Equal(t, int64(2), anon[0].WordCount)

	owned, err := svc.List(ctx, alice.ID, testBaseURL)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.True(t, owned[0].IsOwner)

	dbtest.CreatePurchase(t, env.db, bob.ID, listed.ID)
	bought, err := svc.List(ctx, bob.ID, testBaseURL)
	require.NoError(t, err)
	require.Len(t, bought, 1)
	assert.True(t, bought[0].IsPurchased)
}

func TestMarketplaceService_ListEmpty(t *testing.T) {
	env := setupTestEnv(t)

	views, err := NewMarketplaceService(env.deps).List(context.Background(), 0, testBaseURL)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
