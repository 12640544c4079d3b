package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"nuage/internal/tile"
	"nuage/internal/timeline"
)

func testKey() tile.Key {
	slot := timeline.NewSlot(time.Date(2026, 2, 3, 9, 5, 0, 0, time.UTC))
	return tile.NewKey(slot, 7, tile.Bounds{X1: 41, Y1: 61, X2: 50, Y2: 68})
}

func TestClient_FetchTile(t *testing.T) {
	payload := []byte("jpeg-bytes")
	var gotPath, gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 5*time.Second, zap.NewNop())
	data, err := c.FetchTile(context.Background(), testKey())
	if err != nil {
		t.Fatalf("FetchTile: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("body = %q, want %q", data, payload)
	}
	if gotPath != "/202602030905/7/41/61/50/68" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotQuery != "outputtype=jpeg" {
		t.Errorf("request query = %q", gotQuery)
	}
}

func TestClient_FetchTileStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 5*time.Second, zap.NewNop())
	_, err := c.FetchTile(context.Background(), testKey())
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("err = %v, want ErrStatus", err)
	}
}

func TestClient_FetchTileTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One byte over the cap
		w.Write(make([]byte, MaxBodySize+1))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 10*time.Second, zap.NewNop())
	_, err := c.FetchTile(context.Background(), testKey())
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestClient_FetchTileContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, 100, 5*time.Second, zap.NewNop())
	if _, err := c.FetchTile(ctx, testKey()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
