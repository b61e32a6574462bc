package repos

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/glasshouse/internal/models"
)

// SnapshotRepo is the object store holding camera snapshots, a flat directory
// served to dashboard clients under publicURL
type SnapshotRepo struct {
	logger    *log.Logger
	dir       string
	publicURL string
}

func NewSnapshotRepo(logger *log.Logger, dir string, publicURL string) *SnapshotRepo {
	return &SnapshotRepo{logger: logger, dir: dir, publicURL: strings.TrimRight(publicURL, "/")}
}

func (r *SnapshotRepo) Dir() string {
	return r.dir
}

// ListAll returns every snapshot, sorted by name
func (r *SnapshotRepo) ListAll(ctx context.Context) ([]models.ObjectRef, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("Snapshot directory does not exist", "dir", r.dir)
			return []models.ObjectRef{}, nil
		}
		return nil, fmt.Errorf("Error listing snapshots in (%s): %w", r.dir, err)
	}

	refs := []models.ObjectRef{}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		refs = append(refs, models.ObjectRef{Name: entry.Name()})
	}
	return refs, nil
}

func (r *SnapshotRepo) ResolveURL(ctx context.Context, ref models.ObjectRef) (string, error) {
	if _, err := os.Stat(filepath.Join(r.dir, ref.Name)); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("snapshot (%s): %w", ref.Name, models.ErrNotFound)
		}
		return "", fmt.Errorf("Error resolving snapshot (%s): %w", ref.Name, err)
	}
	return r.publicURL + "/" + url.PathEscape(ref.Name), nil
}

// Metadata reports the file modification time as the creation time
func (r *SnapshotRepo) Metadata(ctx context.Context, ref models.ObjectRef) (models.ObjectMetadata, error) {
	info, err := os.Stat(filepath.Join(r.dir, ref.Name))
	if err != nil {
		if os.IsNotExist(err) {
			return models.ObjectMetadata{}, fmt.Errorf("snapshot (%s): %w", ref.Name, models.ErrNotFound)
		}
		return models.ObjectMetadata{}, fmt.Errorf("Error reading snapshot metadata (%s): %w", ref.Name, err)
	}
	return models.ObjectMetadata{CreatedTime: info.ModTime(), Size: info.Size()}, nil
}

// Read returns the contents of a snapshot. Only names directly inside the
// snapshot directory are accepted.
func (r *SnapshotRepo) Read(ctx context.Context, ref models.ObjectRef) ([]byte, error) {
	if ref.Name == "" || ref.Name != filepath.Base(ref.Name) || strings.HasPrefix(ref.Name, ".") {
		return nil, fmt.Errorf("snapshot (%s): %w", ref.Name, models.ErrNotFound)
	}
	data, err := os.ReadFile(filepath.Join(r.dir, ref.Name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot (%s): %w", ref.Name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("Error reading snapshot (%s): %w", ref.Name, err)
	}
	return data, nil
}
