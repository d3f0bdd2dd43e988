package words

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexibazaar/marketplace/internal/database/dbtest"
	"github.com/lexibazaar/marketplace/internal/entities"
)

func TestRepository_CreateAndList(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := dbtest.CreateUser(t, db, "owner")
	dict := dbtest.CreateDictionary(t, db, owner.ID, "Food")

	for _, pair := range [][2]string{{"apple", "Apfel"}, {"bread", "Brot"}} {
		w := &entities.Word{DictionaryID: dict.ID, Word: pair[0], Translation: pair[1]}
		require.NoError(t, repo.Create(ctx, w))
		assert.NotZero(t, w.ID)
	}

	words, err := repo.ListByDictionary(ctx, dict.ID)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].Word)
	assert.Equal(t, "Brot", words[1].Translation)

	count, err := repo.CountByDictionary(ctx, dict.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	exists, err := repo.ExistsInDictionary(ctx, dict.ID, "apple")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_CountByDictionaries(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	owner := dbtest.CreateUser(t, db, "owner")

	a := dbtest.CreateDictionary(t, db, owner.ID, "A")
	b := dbtest.CreateDictionary(t, db, owner.ID, "B")
	empty := dbtest.CreateDictionary(t, db, owner.ID, "Empty")
	dbtest.CreateWords(t, db, a.ID, 3)
	dbtest.CreateWords(t, db, b.ID, 1)

	counts, err := repo.CountByDictionaries(context.Background(), []uint{a.ID, b.ID, empty.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[a.ID])
	assert.Equal(t, int64(1), counts[b.ID])
	assert.Zero(t, counts[empty.ID])

	counts, err = repo.CountByDictionaries(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestRepository_FindInDictionary(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	owner := dbtest.CreateUser(t, db, "owner")

	dict := dbtest.CreateDictionary(t, db, owner.ID, "Mine")
	other := dbtest.CreateDictionary(t, db, owner.ID, "Other")
	mine := dbtest.CreateWords(t, db, dict.ID, 2)
	foreign := dbtest.CreateWords(t, db, other.ID, 1)

	found, err := repo.FindInDictionary(context.Background(), dict.ID, []uint{mine[0].ID, foreign[0].ID, 999})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, mine[0].ID, found[0].ID)
}

func TestRepository_ListByDictionaryWrapsDriverErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "words" WHERE dictionary_id = \$1 ORDER BY id`).
		WillReturnError(errors.New("connection reset by peer"))

	_, err = NewRepository(db).ListByDictionary(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list words")
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}
