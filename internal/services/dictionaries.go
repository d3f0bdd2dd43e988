package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/covers"
	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/entities"
)

const defaultCoverQuery = "language dictionary"

// DictionaryInput is a create or partial update request. nil means "not
// supplied": on create the default applies, on update the stored value stays.
type DictionaryInput struct {
	Name                 *string          `json:"name"`
	Description          *string          `json:"description"`
	SourceLang           *string          `json:"source_lang"`
	TargetLang           *string          `json:"target_lang"`
	Price                *decimal.Decimal `json:"price"`
	AllowTemporaryAccess *bool            `json:"allow_temporary_access"`
	TemporaryDays        *int             `json:"temporary_days"`
	IsForSale            *bool            `json:"is_for_sale"`
	CoverImage           *string          `json:"cover_image"`
}

func (in DictionaryInput) apply(d *entities.Dictionary) {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		d.Description = strings.TrimSpace(*in.Description)
	}
	if in.SourceLang != nil {
		d.SourceLang = strings.TrimSpace(*in.SourceLang)
	}
	if in.TargetLang != nil {
		d.TargetLang = strings.TrimSpace(*in.TargetLang)
	}
	if in.Price != nil {
		d.Price = *in.Price
	}
	if in.AllowTemporaryAccess != nil {
		d.AllowTemporaryAccess = *in.AllowTemporaryAccess
	}
	if in.TemporaryDays != nil {
		d.TemporaryDays = *in.TemporaryDays
	}
	if in.IsForSale != nil {
		d.IsForSale = *in.IsForSale
	}
	if in.CoverImage != nil {
		d.CoverImage = strings.TrimSpace(*in.CoverImage)
	}
}

// touchesSaleRule reports whether the input changes a field the for-sale
// rule depends on.
func (in DictionaryInput) touchesSaleRule() bool {
	return in.IsForSale != nil || in.Name != nil || in.Description != nil
}

type dictionaryRules struct {
	Name          string `json:"name" validate:"required,max=100"`
	SourceLang    string `json:"source_lang" validate:"required,max=50"`
	TargetLang    string `json:"target_lang" validate:"required,max=50"`
	TemporaryDays int    `json:"temporary_days" validate:"min=0,max=3650"`
	CoverImage    string `json:"cover_image" validate:"omitempty,url,max=2048"`
}

func validateDictionary(d *entities.Dictionary, checkSaleRule bool) error {
	err := validateStruct(dictionaryRules{
		Name:          d.Name,
		SourceLang:    d.SourceLang,
		TargetLang:    d.TargetLang,
		TemporaryDays: d.TemporaryDays,
		CoverImage:    d.CoverImage,
	})

	extra := map[string]string{}
	if msg := priceProblem(d.Price); msg != "" {
		extra["price"] = msg
	}
	if checkSaleRule && d.IsForSale {
		if strings.TrimSpace(d.Name) == "" {
			extra["name"] = "name is required for a dictionary listed for sale"
		}
		if strings.TrimSpace(d.Description) == "" {
			extra["description"] = "description is required for a dictionary listed for sale"
		}
	}
	return mergeFieldErrors(err, extra)
}

func priceProblem(p decimal.Decimal) string {
	switch {
	case p.IsNegative():
		return "price must be 0 or greater"
	case p.GreaterThan(entities.MaxPrice):
		return "price must be " + entities.MaxPrice.StringFixed(2) + " or less"
	case !p.Equal(p.Round(2)):
		return "price must have at most 2 decimal places"
	}
	return ""
}

func coverQuery(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultCoverQuery
	}
	return name
}

// DictionaryService implements the dictionary lifecycle: create, read,
// partial update, cascading delete and the caller's library listing.
type DictionaryService struct {
	dicts   DictionaryStore
	policy  *access.Policy
	images  ImageFinder
	covers  CoverStorage
	auditor Auditor
	logger  *zap.Logger
	views   *viewBuilder
}

func NewDictionaryService(deps Dependencies) *DictionaryService {
	return &DictionaryService{
		dicts:   deps.Dictionaries,
		policy:  deps.Policy,
		images:  deps.Images,
		covers:  deps.Covers,
		auditor: deps.Auditor,
		logger:  deps.logger(),
		views:   newViewBuilder(deps),
	}
}

// Create stores a new dictionary owned by ownerID. upload may be nil.
// Without any cover the dictionary name is used to look one up.
func (s *DictionaryService) Create(ctx context.Context, ownerID uint, in DictionaryInput, upload *multipart.FileHeader, baseURL string) (*DictionaryView, error) {
	dict := &entities.Dictionary{
		OwnerID:       ownerID,
		Price:         decimal.Zero,
		TemporaryDays: entities.DefaultTemporaryDays,
	}
	in.apply(dict)

	if err := validateDictionary(dict, true); err != nil {
		return nil, err
	}

	if upload != nil {
		path, err := s.saveUpload(ctx, upload)
		if err != nil {
			return nil, err
		}
		dict.CoverImageFile = path
	}
	if !dict.HasCover() {
		dict.CoverImage = lookupImage(ctx, s.images, s.logger, coverQuery(dict.Name))
	}

	if err := s.dicts.Create(ctx, dict); err != nil {
		s.removeCover(dict.CoverImageFile)
		return nil, err
	}

	return s.views.one(ctx, ownerID, dict, baseURL)
}

// Get returns the dictionary if userID owns or purchased it.
func (s *DictionaryService) Get(ctx context.Context, userID, id uint, baseURL string) (*DictionaryView, error) {
	dict, err := loadAccessible(ctx, s.dicts, s.policy, userID, id)
	if err != nil {
		return nil, err
	}
	return s.views.one(ctx, userID, dict, baseURL)
}

// Update applies a partial update. Only the owner may update. The merged
// record is validated before it is written.
func (s *DictionaryService) Update(ctx context.Context, userID, id uint, in DictionaryInput, upload *multipart.FileHeader, baseURL string) (*DictionaryView, error) {
	existing, err := loadDictionary(ctx, s.dicts, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanModify(userID, existing) {
		return nil, ErrNotOwnerUpdate
	}

	var newPath, oldPath string
	if upload != nil {
		if newPath, err = s.saveUpload(ctx, upload); err != nil {
			return nil, err
		}
	}

	updated, err := s.dicts.Update(ctx, id, func(d *entities.Dictionary) error {
		if !s.policy.CanModify(userID, d) {
			return ErrNotOwnerUpdate
		}
		in.apply(d)
		if newPath != "" {
			oldPath = d.CoverImageFile
			d.CoverImageFile = newPath
		}
		return validateDictionary(d, in.touchesSaleRule())
	})
	if err != nil {
		s.removeCover(newPath)
		if database.IsNotFound(err) {
			return nil, ErrDictionaryNotFound
		}
		return nil, err
	}
	s.removeCover(oldPath)

	if !updated.HasCover() {
		if url := lookupImage(ctx, s.images, s.logger, coverQuery(updated.Name)); url != "" {
			withCover, err := s.dicts.Update(ctx, id, func(d *entities.Dictionary) error {
				if !d.HasCover() {
					d.CoverImage = url
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("store looked up cover: %w", err)
			}
			updated = withCover
		}
	}

	return s.views.one(ctx, userID, updated, baseURL)
}

// Delete removes the dictionary with its words, purchases and progress.
// Only the owner may delete.
func (s *DictionaryService) Delete(ctx context.Context, userID, id uint) error {
	dict, err := loadDictionary(ctx, s.dicts, id)
	if err != nil {
		return err
	}
	if !s.policy.CanModify(userID, dict) {
		return ErrNotOwnerDelete
	}

	if err := s.dicts.Delete(ctx, id); err != nil {
		if database.IsNotFound(err) {
			return ErrDictionaryNotFound
		}
		return err
	}
	s.removeCover(dict.CoverImageFile)

	if s.auditor != nil {
		s.auditor.LogDictionaryDelete(ctx, userID, dict)
	}
	return nil
}

// ListAccessible returns every dictionary userID owns or purchased.
func (s *DictionaryService) ListAccessible(ctx context.Context, userID uint, baseURL string) ([]DictionaryView, error) {
	dicts, err := s.dicts.ListAccessible(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views.build(ctx, userID, dicts, baseURL)
}

func (s *DictionaryService) saveUpload(ctx context.Context, upload *multipart.FileHeader) (string, error) {
	if s.covers == nil {
		return "", ValidationError("validation failed", map[string]string{
			"cover_image_file": "cover uploads are not enabled",
		})
	}

	path, err := s.covers.Save(ctx, upload)
	if err != nil {
		if errors.Is(err, covers.ErrInvalidImage) {
			return "", ValidationError("validation failed", map[string]string{
				"cover_image_file": err.Error(),
			})
		}
		return "", fmt.Errorf("store cover image: %w", err)
	}
	return path, nil
}

func (s *DictionaryService) removeCover(path string) {
	if path == "" || s.covers == nil {
		return
	}
	if err := s.covers.Delete(path); err != nil {
		s.logger.Warn("failed to remove cover image", zap.String("path", path), zap.Error(err))
	}
}
