package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/database/dbtest"
	"github.com/lexibazaar/marketplace/internal/database/dictionaries"
	"github.com/lexibazaar/marketplace/internal/database/progress"
	"github.com/lexibazaar/marketplace/internal/database/purchases"
	"github.com/lexibazaar/marketplace/internal/database/users"
	"github.com/lexibazaar/marketplace/internal/database/words"
	"github.com/lexibazaar/marketplace/internal/entities"
	"github.com/lexibazaar/marketplace/internal/images"
)

type mockImageFinder struct {
	mock.Mock
}

func (m *mockImageFinder) Find(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

// disabledFinder behaves like a finder without an access key.
func disabledFinder() *mockImageFinder {
	m := &mockImageFinder{}
	m.On("Find", mock.Anything, mock.Anything).Return("", images.ErrDisabled)
	return m
}

type memoryCovers struct {
	saved   []string
	deleted []string
	failOn  string
}

func (c *memoryCovers) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	if file.Filename == c.failOn {
		return "", errors.New("disk full")
	}
	path := "dictionary_covers/" + file.Filename
	c.saved = append(c.saved, path)
	return path, nil
}

func (c *memoryCovers) Delete(path string) error {
	c.deleted = append(c.deleted, path)
	return nil
}

func (c *memoryCovers) URL(baseURL, path string) string {
	return baseURL + "/media/" + path
}

type recordingAuditor struct {
	purchases []uint
	deletes   []uint
}

func (a *recordingAuditor) LogPurchase(_ context.Context, p *entities.Purchase, _ string) {
	a.purchases = append(a.purchases, p.DictionaryID)
}

func (a *recordingAuditor) LogDictionaryDelete(_ context.Context, _ uint, d *entities.Dictionary) {
	a.deletes = append(a.deletes, d.ID)
}

type testEnv struct {
	db      *gorm.DB
	deps    Dependencies
	images  *mockImageFinder
	covers  *memoryCovers
	auditor *recordingAuditor
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.Open(t)

	purchaseRepo := purchases.NewRepository(db)
	env := &testEnv{
		db:      db,
		images:  disabledFinder(),
		covers:  &memoryCovers{},
		auditor: &recordingAuditor{},
	}
	env.deps = Dependencies{
		Dictionaries: dictionaries.NewRepository(db),
		Words:        words.NewRepository(db),
		Purchases:    purchaseRepo,
		Progress:     progress.NewRepository(db),
		Users:        users.NewRepository(db),
		Policy:       access.NewPolicy(purchaseRepo),
		Images:       env.images,
		Covers:       env.covers,
		Auditor:      env.auditor,
		PurchaseCode: "1013",
	}
	return env
}

// withImages replaces the finder; call before constructing services.
func (e *testEnv) withImages(m *mockImageFinder) {
	e.images = m
	e.deps.Images = m
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var serr *Error
	require.True(t, errors.As(err, &serr), "expected a domain error, got %v", err)
	require.Equal(t, kind, serr.Kind, serr.Message)
	return serr
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
