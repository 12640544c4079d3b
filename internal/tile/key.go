package tile

import (
	"fmt"

	"nuage/internal/timeline"
)

// Bounds represents the two corner tile coordinates delimiting the
// fetched region on the provider's grid
type Bounds struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// Key uniquely identifies one cached tile artifact: a time slot, a zoom
// level and the tile bounds of the region. Immutable once constructed.
type Key struct {
	Slot   timeline.Slot
	Zoom   int
	Bounds Bounds
}

// NewKey builds a key for one slot of a fixed region
func NewKey(slot timeline.Slot, zoom int, bounds Bounds) Key {
	return Key{Slot: slot, Zoom: zoom, Bounds: bounds}
}

// timestamp renders the slot as the zero-padded yyyyMMddHHmm form the
// service and the cache filename both use
func (k Key) timestamp() string {
	t := k.Slot.Time
	return fmt.Sprintf("%d%02d%02d%02d%02d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// Filename returns the deterministic cache file name for this key.
// Repeated runs within the same slot resolve to the same artifact.
// Format: {yyyyMMddHHmm}_{zoom}_{x1}_{y1}_{x2}_{y2}.jpg
func (k Key) Filename() string {
	return fmt.Sprintf("%s_%d_%d_%d_%d_%d.jpg",
		k.timestamp(), k.Zoom, k.Bounds.X1, k.Bounds.Y1, k.Bounds.X2, k.Bounds.Y2)
}

// URL returns the tile service request URL for this key.
// Format: {base}/{yyyyMMddHHmm}/{zoom}/{x1}/{y1}/{x2}/{y2}?outputtype=jpeg
func (k Key) URL(baseURL string) string {
	return fmt.Sprintf("%s/%s/%d/%d/%d/%d/%d?outputtype=jpeg",
		baseURL, k.timestamp(), k.Zoom, k.Bounds.X1, k.Bounds.Y1, k.Bounds.X2, k.Bounds.Y2)
}

// String implements fmt.Stringer for log output
func (k Key) String() string {
	return fmt.Sprintf("%s z%d (%d,%d)-(%d,%d)",
		k.Slot.Time.Format("2006-01-02 15:04"), k.Zoom,
		k.Bounds.X1, k.Bounds.Y1, k.Bounds.X2, k.Bounds.Y2)
}
