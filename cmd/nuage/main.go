package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"nuage/internal/acquire"
	"nuage/internal/buffer"
	"nuage/internal/cache"
	"nuage/internal/config"
	"nuage/internal/fetch"
	"nuage/internal/hud"
	"nuage/internal/logger"
	"nuage/internal/metrics"
	"nuage/internal/tile"
	"nuage/internal/timeline"
)

// main runs one headless acquisition pass: plan the time window, fill
// the cache and the shared buffer, and report each acquired frame. A
// GUI host would wire the same components and read the buffer from its
// frame callback instead.
func main() {
	cfg, err := config.Load(os.UserCacheDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()
	log = log.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	m := metrics.NewAcquireMetrics(registry)

	client := fetch.NewClient(cfg.BaseURL, cfg.RequestsPerSec, cfg.RequestTimeout, log)

	store, err := cache.NewStore(cfg.CacheDir(), client, cfg.TargetWidth, cfg.TargetHeight, m, log)
	if err != nil {
		log.Fatal("cache unavailable", zap.Error(err))
	}
	log.Info("cache ready", zap.String("dir", store.Dir()))

	planner := timeline.NewPlanner(cfg.PublishDelay, cfg.WindowSpan, cfg.SlotStep)
	buf := buffer.New()
	bounds := tile.Bounds{X1: cfg.TileX1, Y1: cfg.TileY1, X2: cfg.TileX2, Y2: cfg.TileY2}

	worker := acquire.NewWorker(planner, store, buf, cfg.Zoom, bounds, m, log)
	worker.SetOnFrame(func() {
		frames := buf.Snapshot()
		last := frames[len(frames)-1]
		log.Info("frame ready",
			zap.String("label", hud.FrameLabel(len(frames)-1, len(frames), last.Slot, time.Local)),
			zap.Int("loaded", len(frames)))
	})

	start := time.Now()
	done := worker.Start(ctx, start)

	// Block exactly like the first render frame does
	buf.WaitFirst()
	log.Info("first frame available", zap.Duration("waited", time.Since(start)))

	<-done

	log.Info("acquisition run complete",
		zap.Int("frames", buf.Len()),
		zap.Bool("acquiring", buf.Acquiring()),
		zap.Duration("elapsed", time.Since(start)))
}
