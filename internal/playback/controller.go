package playback

import "math"

// DefaultRate is the number of images advanced per second during
// automatic playback
const DefaultRate = 5.0

// Controller turns buffer length, elapsed time and discrete input events
// into the index of the frame to display. Index 0 is the most recent
// frame; automatic playback therefore counts down from the oldest frame
// so the animation runs forward in time.
//
// Pure state machine: no clocks, no locks. The host feeds it the frame
// count and its own elapsed-seconds value every tick.
type Controller struct {
	index    int
	autoPlay bool
	rate     float64
}

// NewController starts in automatic playback at the given rate.
// A non-positive rate falls back to DefaultRate.
func NewController(rate float64) *Controller {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Controller{autoPlay: true, rate: rate}
}

// AutoPlay reports whether automatic playback is active
func (c *Controller) AutoPlay() bool { return c.autoPlay }

// Index returns the index computed by the last Tick or step, clamped to
// the given frame count. The buffer only grows, but the clamp keeps a
// stale index safe regardless.
func (c *Controller) Index(frames int) int {
	if frames <= 0 {
		return 0
	}
	if c.index >= frames {
		c.index = frames - 1
	}
	return c.index
}

// Tick advances automatic playback for the current buffer length and
// elapsed wall-clock seconds, returning the index to display. In manual
// mode it returns the held index unchanged.
func (c *Controller) Tick(frames int, elapsed float64) int {
	if frames <= 0 {
		return 0
	}
	if !c.autoPlay {
		return c.Index(frames)
	}

	cycle := float64(frames) / c.rate
	timeInCycle := math.Mod(elapsed, cycle)
	c.index = frames - 1 - int(timeInCycle*float64(frames)/cycle)
	if c.index < 0 {
		c.index = 0
	}
	return c.index
}

// StepOlder moves one frame further into the past, wrapping from the
// oldest frame back to the newest. Any manual step leaves automatic
// playback.
func (c *Controller) StepOlder(frames int) int {
	if frames <= 0 {
		return 0
	}
	c.autoPlay = false
	if c.index == frames-1 {
		c.index = 0
	} else {
		c.index++
	}
	return c.index
}

// StepNewer moves one frame toward the present, wrapping from the newest
// frame to the oldest
func (c *Controller) StepNewer(frames int) int {
	if frames <= 0 {
		return 0
	}
	c.autoPlay = false
	if c.index == 0 {
		c.index = frames - 1
	} else {
		c.index--
	}
	return c.index
}

// Toggle flips between automatic playback and manual mode
func (c *Controller) Toggle() {
	c.autoPlay = !c.autoPlay
}
