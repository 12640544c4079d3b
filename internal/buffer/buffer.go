package buffer

import (
	"sync"
	"sync/atomic"

	"nuage/internal/raster"
	"nuage/internal/timeline"
)

// Frame is one acquired satellite image together with the slot it
// represents. Frames are immutable after insertion.
type Frame struct {
	Image *raster.RGB
	Slot  timeline.Slot
}

// SharedImageBuffer is the append-only hand-off point between the
// background acquisition worker and the foreground renderer.
//
// Entries are never removed or mutated after Append, so snapshots taken
// under the lock stay valid outside it. The acquiring flag tracks
// whether the worker still has slots left; it is a single scalar, so it
// sits outside the mutex as an atomic.
type SharedImageBuffer struct {
	mu        sync.Mutex
	cond      *sync.Cond
	frames    []Frame
	acquiring atomic.Bool
}

// New returns an empty buffer in the acquiring state
func New() *SharedImageBuffer {
	b := &SharedImageBuffer{}
	b.cond = sync.NewCond(&b.mu)
	b.acquiring.Store(true)
	return b
}

// Append adds a frame to the end of the sequence and wakes one waiter
func (b *SharedImageBuffer) Append(f Frame) {
	b.mu.Lock()
	b.frames = append(b.frames, f)
	b.cond.Signal()
	b.mu.Unlock()
}

// Len returns the current number of frames
func (b *SharedImageBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames)
}

// WaitFirst blocks until at least one frame exists. The first render
// frame calls this so index lookups never run against an empty buffer.
func (b *SharedImageBuffer) WaitFirst() {
	b.mu.Lock()
	for len(b.frames) == 0 {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// Snapshot returns the current frame sequence in append order. The
// returned slice shares frame values with the buffer, which is safe
// because frames are read-only once appended.
func (b *SharedImageBuffer) Snapshot() []Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames[:len(b.frames):len(b.frames)]
}

// Acquiring reports whether the background worker still has slots to
// fetch
func (b *SharedImageBuffer) Acquiring() bool {
	return b.acquiring.Load()
}

// SetAcquiring is written only by the acquisition worker
func (b *SharedImageBuffer) SetAcquiring(v bool) {
	b.acquiring.Store(v)
}
