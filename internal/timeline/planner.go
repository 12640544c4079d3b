package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Standard slot parameters for the nowcast tile service
const (
	// SlotGranularity is the interval between published satellite snapshots
	SlotGranularity = 5 * time.Minute

	// DefaultPublishDelay is how far behind real time the newest available slot is.
	// The service does not expose the very latest snapshots.
	DefaultPublishDelay = 15 * time.Minute

	// DefaultSpan is the length of the historical window to plan
	DefaultSpan = 120 * time.Minute
)

// ErrUnderflow indicates the planning window would reach before the epoch.
// This is fatal to an acquisition run; it is never skipped.
var ErrUnderflow = errors.New("time window underflows valid timestamp range")

// Slot is a single 5-minute-aligned instant for which one satellite
// snapshot exists on the service.
type Slot struct {
	Time time.Time
}

// NewSlot truncates t to the slot granularity in UTC
func NewSlot(t time.Time) Slot {
	return Slot{Time: t.UTC().Truncate(SlotGranularity)}
}

// Planner computes the ordered list of historical slots to acquire.
// The zero value is not usable; construct with NewPlanner.
type Planner struct {
	delay time.Duration // publish delay applied to the anchor
	span  time.Duration // total window walked into the past
	step  time.Duration // distance between consecutive slots
}

// NewPlanner creates a planner with the given window parameters.
// Non-positive values fall back to the service defaults.
func NewPlanner(delay, span, step time.Duration) *Planner {
	if delay <= 0 {
		delay = DefaultPublishDelay
	}
	if span <= 0 {
		span = DefaultSpan
	}
	if step <= 0 {
		step = SlotGranularity
	}
	return &Planner{delay: delay, span: span, step: step}
}

// SlotCount returns the number of slots a plan will contain
func (p *Planner) SlotCount() int {
	return int(p.span / p.step)
}

// Slots returns the slots to acquire for the window ending at now.
//
// The current time is rounded down to the slot granularity, the publish
// delay is applied, and the window is walked backwards in step increments.
// The first slot is the most recent one, so acquisition order equals
// reverse-chronological order. The result is pure: same input, same output.
func (p *Planner) Slots(now time.Time) ([]Slot, error) {
	anchor := now.UTC().Truncate(SlotGranularity)

	slots := make([]Slot, 0, p.SlotCount())
	for back := time.Duration(0); back < p.span; back += p.step {
		t := anchor.Add(-(p.delay + back))
		if t.Before(time.Unix(0, 0)) {
			return nil, fmt.Errorf("slot %s: %w", t.Format(time.RFC3339), ErrUnderflow)
		}
		slots = append(slots, Slot{Time: t})
	}
	return slots, nil
}
