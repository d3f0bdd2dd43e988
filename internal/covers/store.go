// Package covers stores uploaded dictionary cover images under the media root.
package covers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Subdir is where covers live, relative to the media root.
const Subdir = "dictionary_covers"

// ErrInvalidImage wraps every rejection of an uploaded file.
var ErrInvalidImage = errors.New("invalid image")

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store writes covers to disk and builds their public URLs.
type Store struct {
	root     string
	maxBytes int64
}

// NewStore creates the cover directory under root if needed.
func NewStore(root string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, Subdir), 0755); err != nil {
		return nil, fmt.Errorf("create cover dir: %w", err)
	}
	return &Store{root: root, maxBytes: maxBytes}, nil
}

// Save validates the upload by content, not by its declared name or type,
// and returns its path relative to the media root.
func (s *Store) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes {
		return "", fmt.Errorf("%w: image must be at most %d bytes", ErrInvalidImage, s.maxBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: image must be at most %d bytes", ErrInvalidImage, s.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrInvalidImage)
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedTypes[mtype.String()]
	if !ok {
		return "", fmt.Errorf("%w: unsupported file type %s", ErrInvalidImage, mtype.String())
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := path.Join(Subdir, uuid.NewString()+ext)
	if err := s.writeAtomic(rel, data); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *Store) writeAtomic(rel string, data []byte) error {
	dir := filepath.Join(s.root, Subdir)

	// Temp file in the same directory so the rename is atomic.
	tmpFile, err := os.CreateTemp(dir, "cover_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmpFile, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, filepath.Join(s.root, filepath.FromSlash(rel)))
}

// Delete removes a stored cover. Missing files are not an error.
func (s *Store) Delete(rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL returns the public URL of a stored cover.
func (s *Store) URL(baseURL, rel string) string {
	return strings.TrimRight(baseURL, "/") + "/media/" + rel
}

// Root returns the media root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if !strings.HasPrefix(clean, "/"+Subdir+"/") {
		return "", fmt.Errorf("cover path %q is outside %s", rel, Subdir)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean[1:])), nil
}
