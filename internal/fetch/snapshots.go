package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/concurrency"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
)

type objectStore interface {
	ListAll(ctx context.Context) ([]models.ObjectRef, error)
	ResolveURL(ctx context.Context, ref models.ObjectRef) (string, error)
	Metadata(ctx context.Context, ref models.ObjectRef) (models.ObjectMetadata, error)
}

type SnapshotFetcher struct {
	logger  *log.Logger
	store   objectStore
	workers int
}

func NewSnapshotFetcher(logger *log.Logger, store objectStore, workers int) *SnapshotFetcher {
	return &SnapshotFetcher{logger: logger, store: store, workers: workers}
}

// CameraIP returns the underscore separated ip of the camera in a set
func CameraIP(set string) string {
	return constants.CameraIPPrefix + set
}

// ParseSnapshotName splits a snapshot name of the form
// IP_IP_IP_IP_YYYYMMDD_HHMMSS.ext into the camera ip and capture time.
// ok is false when the time cannot be read, the ip is still returned if present.
func ParseSnapshotName(name string, loc *time.Location) (ip string, at time.Time, ok bool) {
	base := name
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}

	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return "", time.Time{}, false
	}
	ip = strings.Join(parts[:4], "_")
	if len(parts) != 6 {
		return ip, time.Time{}, false
	}

	at, err := time.ParseInLocation(constants.SnapshotTimeLayout, parts[4]+"_"+parts[5], loc)
	if err != nil {
		return ip, time.Time{}, false
	}
	return ip, at, true
}

type snapshot struct {
	ref models.ObjectRef
	at  time.Time
}

// Images returns the snapshots taken by the set's camera within [from, to],
// in listing order. Names without a readable capture time fall back to the
// object creation time.
func (f *SnapshotFetcher) Images(ctx context.Context, set string, from time.Time, to time.Time) ([]aggregate.Image, error) {
	refs, err := f.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error listing snapshots: %w", err)
	}

	cameraIP := CameraIP(set)
	snapshots := []snapshot{}
	for _, ref := range refs {
		ip, at, ok := ParseSnapshotName(ref.Name, from.Location())
		if ip != cameraIP {
			continue
		}
		if !ok {
			meta, err := f.store.Metadata(ctx, ref)
			if err != nil {
				f.logger.Warn("Skipping snapshot without a capture time", "name", ref.Name, "err", err)
				continue
			}
			at = meta.CreatedTime
		}
		if at.Before(from) || at.After(to) {
			continue
		}
		snapshots = append(snapshots, snapshot{ref: ref, at: at})
	}

	worker := concurrency.NewThrottledWorker(f.workers, 0, func(ctx context.Context, s snapshot) (aggregate.Image, error) {
		url, err := f.store.ResolveURL(ctx, s.ref)
		if err != nil {
			return aggregate.Image{}, fmt.Errorf("Error resolving snapshot url (%s): %w", s.ref.Name, err)
		}
		return aggregate.Image{URL: url, At: s.at}, nil
	})
	images, err := worker.Run(ctx, snapshots)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Snapshots fetched", "set", set, "count", len(images))
	return images, nil
}
