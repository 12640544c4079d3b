package buffer

import (
	"image"
	"testing"
	"time"

	"nuage/internal/raster"
	"nuage/internal/timeline"
)

func frameAt(minute int) Frame {
	return Frame{
		Image: raster.NewRGB(image.Rect(0, 0, 1, 1)),
		Slot:  timeline.NewSlot(time.Date(2026, 1, 1, 12, minute, 0, 0, time.UTC)),
	}
}

func TestBuffer_AppendPreservesOrder(t *testing.T) {
	b := New()
	for _, m := range []int{30, 25, 20, 15} {
		b.Append(frameAt(m))
	}

	frames := b.Snapshot()
	if len(frames) != 4 {
		t.Fatalf("len = %d, want 4", len(frames))
	}
	for i, m := range []int{30, 25, 20, 15} {
		if frames[i].Slot.Time.Minute() != m {
			t.Errorf("frame %d minute = %d, want %d", i, frames[i].Slot.Time.Minute(), m)
		}
	}
}

func TestBuffer_WaitFirstBlocksUntilAppend(t *testing.T) {
	b := New()
	done := make(chan struct{})

	go func() {
		b.WaitFirst()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("WaitFirst returned before any frame was appended")
	case <-time.After(20 * time.Millisecond):
	}

	b.Append(frameAt(0))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitFirst did not wake after Append")
	}

	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
}

func TestBuffer_SnapshotVisibility(t *testing.T) {
	b := New()
	stop := make(chan struct{})

	go func() {
		for i := 0; i < 50; i++ {
			b.Append(frameAt(i % 60))
		}
		close(stop)
	}()

	// Concurrent snapshots must only ever observe fully-constructed
	// frames, in append order
	for {
		frames := b.Snapshot()
		for i, f := range frames {
			if f.Image == nil {
				t.Fatalf("frame %d observed with nil image", i)
			}
		}
		select {
		case <-stop:
			if got := b.Len(); got != 50 {
				t.Fatalf("final len = %d, want 50", got)
			}
			return
		default:
		}
	}
}

func TestBuffer_AcquiringFlag(t *testing.T) {
	b := New()
	if !b.Acquiring() {
		t.Error("new buffer should report acquiring")
	}
	b.SetAcquiring(false)
	if b.Acquiring() {
		t.Error("flag should be false after SetAcquiring(false)")
	}
}
