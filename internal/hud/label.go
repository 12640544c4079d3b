package hud

import (
	"fmt"
	"math"
	"time"

	"nuage/internal/timeline"
)

// OverlayDate is the format used for the frame timestamp overlay
const OverlayDate = "02-01-2006 15:04"

// BlinkHz is the blink frequency of the downloading indicator
const BlinkHz = 2.0

// FrameLabel renders the overlay text for the frame at index.
//
// Frames are ordered most recent first, so the label shows the more
// natural position counting up through time: frame 1 of 24 is the
// oldest. The timestamp is rendered in the viewer's local time.
func FrameLabel(index, total int, slot timeline.Slot, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	local := slot.Time.In(loc)
	return fmt.Sprintf("%02d/%02d %s", total-index, total, local.Format(OverlayDate))
}

// BlinkVisible reports whether a blinking indicator is in the visible
// half of its cycle at the given elapsed time
func BlinkVisible(elapsed float64) bool {
	cycle := 1.0 / BlinkHz
	return math.Mod(elapsed, cycle) < cycle/2
}
