package acquire

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"nuage/internal/buffer"
	"nuage/internal/cache"
	"nuage/internal/metrics"
	"nuage/internal/raster"
	"nuage/internal/tile"
	"nuage/internal/timeline"
)

// Resolver produces the normalized image for one tile key
type Resolver interface {
	Resolve(ctx context.Context, key tile.Key) (*raster.RGB, error)
}

// Worker drives one acquisition run: it walks the planner's slots in
// order, resolves each tile through the cache and publishes successful
// frames into the shared buffer. One run per process; there is no retry
// and no re-acquisition.
type Worker struct {
	planner  *timeline.Planner
	resolver Resolver
	buf      *buffer.SharedImageBuffer
	zoom     int
	bounds   tile.Bounds
	metrics  *metrics.AcquireMetrics
	log      *zap.Logger

	// onFrame is invoked after every successful append so the host can
	// schedule a redraw without polling
	onFrame func()
}

// NewWorker assembles an acquisition worker for a fixed region
func NewWorker(planner *timeline.Planner, resolver Resolver, buf *buffer.SharedImageBuffer,
	zoom int, bounds tile.Bounds, m *metrics.AcquireMetrics, log *zap.Logger) *Worker {
	return &Worker{
		planner:  planner,
		resolver: resolver,
		buf:      buf,
		zoom:     zoom,
		bounds:   bounds,
		metrics:  m,
		log:      log,
	}
}

// SetOnFrame sets the redraw callback. Must be called before Start.
func (w *Worker) SetOnFrame(fn func()) {
	w.onFrame = fn
}

// Start launches the run on a background goroutine and returns a channel
// that closes when the run ends
func (w *Worker) Start(ctx context.Context, now time.Time) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, now)
	}()
	return done
}

// Run executes the acquisition loop to completion.
//
// Recoverable failures (network, decode, storage) are logged and the
// slot is skipped; the consumer simply sees fewer frames. A planning
// failure is fatal to the run. Either way the acquiring flag is false
// when Run returns, so the foreground indicator always clears.
func (w *Worker) Run(ctx context.Context, now time.Time) {
	defer w.buf.SetAcquiring(false)

	slots, err := w.planner.Slots(now)
	if err != nil {
		w.log.Error("slot planning failed", zap.Error(err))
		return
	}

	w.log.Info("acquisition started",
		zap.Int("slots", len(slots)),
		zap.Time("newest", slots[0].Time))

	loaded := 0
	for _, slot := range slots {
		if ctx.Err() != nil {
			w.log.Warn("acquisition interrupted", zap.Error(ctx.Err()))
			return
		}

		key := tile.NewKey(slot, w.zoom, w.bounds)
		img, err := w.resolver.Resolve(ctx, key)
		if err != nil {
			w.log.Warn("skipping slot",
				zap.String("key", key.String()),
				zap.Error(err))
			if w.metrics != nil {
				w.metrics.FetchFailures.WithLabelValues(failureReason(err)).Inc()
			}
			continue
		}

		w.buf.Append(buffer.Frame{Image: img, Slot: slot})
		loaded++
		if w.metrics != nil {
			w.metrics.FramesLoaded.Inc()
		}
		if w.onFrame != nil {
			w.onFrame()
		}
	}

	w.log.Info("acquisition finished",
		zap.Int("loaded", loaded),
		zap.Int("skipped", len(slots)-loaded))
}

// failureReason maps a resolve failure onto a metric label
func failureReason(err error) string {
	var rerr *cache.ResolveError
	if errors.As(err, &rerr) {
		return rerr.Reason
	}
	return "unknown"
}
