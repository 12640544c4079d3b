package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// CacheSubdir is the fixed directory name created under the cache root
const CacheSubdir = "nuage"

// Settings holds all runtime configuration for the acquisition core.
// Every field has a default for the built-in region (Paris).
type Settings struct {
	// CacheRoot overrides the per-user cache base directory. When empty,
	// the OS cache directory is used (XDG_CACHE_HOME on Linux).
	CacheRoot string `env:"NUAGE_CACHE_ROOT" envDefault:""`

	BaseURL string `env:"NUAGE_BASE_URL" envDefault:"https://imn-rust-lb.infoplaza.io/v4/nowcast/tiles/satellite-europe"`

	Zoom   int `env:"NUAGE_ZOOM" envDefault:"7"`
	TileX1 int `env:"NUAGE_TILE_X1" envDefault:"41"`
	TileY1 int `env:"NUAGE_TILE_Y1" envDefault:"61"`
	TileX2 int `env:"NUAGE_TILE_X2" envDefault:"50"`
	TileY2 int `env:"NUAGE_TILE_Y2" envDefault:"68"`

	// Time window planning
	PublishDelay time.Duration `env:"NUAGE_PUBLISH_DELAY" envDefault:"15m"`
	WindowSpan   time.Duration `env:"NUAGE_WINDOW_SPAN" envDefault:"120m"`
	SlotStep     time.Duration `env:"NUAGE_SLOT_STEP" envDefault:"5m"`

	// Display target used when downscaling fetched tiles
	TargetWidth  int `env:"NUAGE_TARGET_WIDTH" envDefault:"1920"`
	TargetHeight int `env:"NUAGE_TARGET_HEIGHT" envDefault:"1080"`

	// Network behavior
	RequestTimeout time.Duration `env:"NUAGE_REQUEST_TIMEOUT" envDefault:"30s"`
	RequestsPerSec float64       `env:"NUAGE_REQUESTS_PER_SEC" envDefault:"4"`

	// Playback
	PlaybackRate float64 `env:"NUAGE_PLAYBACK_RATE" envDefault:"5"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables. A .env file is
// honored for local development. userCacheDir supplies the per-user
// fallback cache base (os.UserCacheDir in production).
func Load(userCacheDir func() (string, error)) (*Settings, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Settings{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.CacheRoot == "" {
		root, err := userCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user cache directory: %w", err)
		}
		cfg.CacheRoot = root
	}

	return cfg, nil
}

// CacheDir returns the directory all tile artifacts are stored under
func (s *Settings) CacheDir() string {
	return filepath.Join(s.CacheRoot, CacheSubdir)
}
