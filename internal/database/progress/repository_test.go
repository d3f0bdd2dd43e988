package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibazaar/marketplace/internal/database/dbtest"
	"github.com/lexibazaar/marketplace/internal/entities"
)

func TestRepository_GetOrCreate(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := dbtest.CreateUser(t, db, "learner")
	dict := dbtest.CreateDictionary(t, db, user.ID, "Verbs")

	first, created, err := repo.GetOrCreate(ctx, user.ID, dict.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)
	assert.Empty(t, first.LearnedWords)

	second, created, err := repo.GetOrCreate(ctx, user.ID, dict.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&entities.LearningProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_ReplaceLearnedWords(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := dbtest.CreateUser(t, db, "learner")
	dict := dbtest.CreateDictionary(t, db, user.ID, "Nouns")
	words := dbtest.CreateWords(t, db, dict.ID, 4)

	p, _, err := repo.GetOrCreate(ctx, user.ID, dict.ID)
	require.NoError(t, err)
	before := p.LastUpdated

	require.NoError(t, repo.ReplaceLearnedWords(ctx, p, words[:3]))

	reloaded, created, err := repo.GetOrCreate(ctx, user.ID, dict.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []uint{words[0].ID, words[1].ID, words[2].ID}, reloaded.LearnedWordIDs())
	assert.False(t, reloaded.LastUpdated.Before(before))

	// Replacement is wholesale, not additive.
	require.NoError(t, repo.ReplaceLearnedWords(ctx, reloaded, words[3:]))
	reloaded, _, err = repo.GetOrCreate(ctx, user.ID, dict.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{words[3].ID}, reloaded.LearnedWordIDs())

	require.NoError(t, repo.ReplaceLearnedWords(ctx, reloaded, nil))
	reloaded, _, err = repo.GetOrCreate(ctx, user.ID, dict.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.LearnedWords)
}
