package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vibescine/cinevibes/internal/domain"
)

// URLPrefix is where main.go serves the upload directory from.
const URLPrefix = "/uploads/"

// DiskStore keeps pictures under a local directory. Save returns the
// served path under URLPrefix.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the picture directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, domain.PicturePrefix), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	path := filepath.Join(s.dir, domain.PicturePrefix, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write picture: %w", err)
	}
	return URLPrefix + domain.PicturePrefix + "/" + name, nil
}

func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	rel, ok := strings.CutPrefix(ref, URLPrefix)
	if !ok || rel == "" {
		return fmt.Errorf("unrecognized picture reference %q", ref)
	}

	rel = filepath.Clean(rel)
	if strings.Contains(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("unrecognized picture reference %q", ref)
	}

	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove picture: %w", err)
	}
	return nil
}
