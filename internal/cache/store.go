package cache

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // the service answers jpeg, but decode defensively
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"nuage/internal/metrics"
	"nuage/internal/raster"
	"nuage/internal/tile"
)

// Failure reasons carried by ResolveError
const (
	ReasonNetwork = "network"
	ReasonDecode  = "decode"
	ReasonStorage = "storage"
)

// ResolveError classifies a failed resolve so the acquisition loop can
// skip the slot with an accounted reason
type ResolveError struct {
	Reason string
	Err    error
}

func (e *ResolveError) Error() string { return e.Reason + ": " + e.Err.Error() }
func (e *ResolveError) Unwrap() error { return e.Err }

// Fetcher retrieves the raw image bytes for one tile key
type Fetcher interface {
	FetchTile(ctx context.Context, key tile.Key) ([]byte, error)
}

// Store maps tile keys to normalized images persisted on disk.
//
// Artifacts live under a single flat directory; file names are derived
// from every key field, so runs within the same time slot reuse the
// artifact instead of fetching again. Acquisition is strictly sequential,
// so concurrent resolves of the same key are not coordinated here; a
// per-key lock would be required before introducing parallel fetching.
type Store struct {
	dir       string
	fetcher   Fetcher
	maxWidth  int
	maxHeight int
	metrics   *metrics.AcquireMetrics
	log       *zap.Logger
}

// NewStore creates the cache directory if absent and returns a store
// rooted there. A directory that cannot be created is fatal: no tile
// could ever be cached.
func NewStore(dir string, fetcher Fetcher, maxWidth, maxHeight int, m *metrics.AcquireMetrics, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{
		dir:       dir,
		fetcher:   fetcher,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		metrics:   m,
		log:       log,
	}, nil
}

// Dir returns the cache root directory
func (s *Store) Dir() string { return s.dir }

// Path returns the artifact path for a key
func (s *Store) Path(key tile.Key) string {
	return filepath.Join(s.dir, key.Filename())
}

// Resolve returns the normalized image for a key, reading it from disk
// when the artifact exists and fetching, downscaling and persisting it
// otherwise. Calling Resolve twice for the same key performs at most one
// network fetch and yields bit-identical images.
func (s *Store) Resolve(ctx context.Context, key tile.Key) (*raster.RGB, error) {
	path := s.Path(key)

	if data, err := os.ReadFile(path); err == nil {
		s.log.Debug("cache hit", zap.String("path", path))
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		return decodeArtifact(data)
	} else if !os.IsNotExist(err) {
		return nil, &ResolveError{Reason: ReasonStorage, Err: fmt.Errorf("failed to read cache file: %w", err)}
	}

	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	raw, err := s.fetcher.FetchTile(ctx, key)
	if err != nil {
		return nil, &ResolveError{Reason: ReasonNetwork, Err: err}
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &ResolveError{Reason: ReasonDecode, Err: fmt.Errorf("failed to decode tile: %w", err)}
	}

	resized := raster.FitWithin(src, s.maxWidth, s.maxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, &ResolveError{Reason: ReasonDecode, Err: fmt.Errorf("failed to encode tile: %w", err)}
	}

	if err := s.writeArtifact(path, buf.Bytes()); err != nil {
		return nil, &ResolveError{Reason: ReasonStorage, Err: err}
	}

	// Decode the bytes that were just persisted so this result is
	// identical to every later cache read
	return decodeArtifact(buf.Bytes())
}

// writeArtifact persists an artifact via temp file and rename so a
// partial write never becomes visible under the final name
func (s *Store) writeArtifact(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// decodeArtifact decodes a persisted artifact into the fixed RGB layout.
// Artifacts are always JPEG, so anything not decoding to the JPEG
// channel layout is a corrupt or foreign file.
func decodeArtifact(data []byte) (*raster.RGB, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ResolveError{Reason: ReasonDecode, Err: fmt.Errorf("failed to decode cache artifact: %w", err)}
	}
	if _, ok := img.(*image.YCbCr); !ok {
		return nil, &ResolveError{Reason: ReasonDecode, Err: fmt.Errorf("cache artifact: %w: %T", raster.ErrPixelFormat, img)}
	}
	rgb, err := raster.FromImage(img)
	if err != nil {
		return nil, &ResolveError{Reason: ReasonDecode, Err: err}
	}
	return rgb, nil
}
