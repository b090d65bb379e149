// Package uploads stores incoming media files under the configured upload
// directory with collision-free generated names.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"blossom/internal/config"
)

// Store writes uploaded media beneath a root directory, one subdirectory
// per media kind.
type Store struct {
	root string
}

// NewStore builds an upload store rooted at the configured upload directory.
func NewStore(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return &Store{root: cfg.Paths.UploadDir}, nil
}

// Root returns the store's base directory.
func (s *Store) Root() string { return s.root }

// Save streams an upload to disk and returns its identifier and full path.
// The identifier keeps the original extension so downstream tools can sniff
// the format, but never the original name.
func (s *Store) Save(kind, originalName string, reader io.Reader) (id string, path string, err error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return "", "", errors.New("save upload: empty kind")
	}

	dir := filepath.Join(s.root, kind+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + sanitizeExt(originalName)
	path = filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create upload: %w", err)
	}
	written, copyErr := io.Copy(file, reader)
	closeErr := file.Close()
	if copyErr != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("write upload: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("close upload: %w", closeErr)
	}
	if written == 0 {
		os.Remove(path)
		return "", "", errors.New("save upload: empty payload")
	}
	return filepath.Join(kind+"s", name), path, nil
}

// sanitizeExt keeps only a short, safe file extension.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return ""
		}
	}
	return ext
}
