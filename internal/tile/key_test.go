package tile

import (
	"testing"
	"time"

	"nuage/internal/timeline"
)

func testKey() Key {
	slot := timeline.NewSlot(time.Date(2026, 2, 3, 9, 5, 0, 0, time.UTC))
	return NewKey(slot, 7, Bounds{X1: 41, Y1: 61, X2: 50, Y2: 68})
}

func TestKey_Filename(t *testing.T) {
	got := testKey().Filename()
	want := "202602030905_7_41_61_50_68.jpg"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestKey_URL(t *testing.T) {
	got := testKey().URL("https://example.com/v4/nowcast/tiles/satellite-europe")
	want := "https://example.com/v4/nowcast/tiles/satellite-europe/202602030905/7/41/61/50/68?outputtype=jpeg"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestKey_ZeroPadding(t *testing.T) {
	// Single-digit month, day, hour and minute must be zero-padded
	slot := timeline.NewSlot(time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC))
	k := NewKey(slot, 7, Bounds{X1: 1, Y1: 2, X2: 3, Y2: 4})

	if got, want := k.Filename(), "202601020300_7_1_2_3_4.jpg"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
