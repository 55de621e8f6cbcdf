package fs

import (
	"path/filepath"
	"strings"
	"testing"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	return &Client{root: t.TempDir()}
}

func TestWriteStreamAndMove(t *testing.T) {
	c := newTestClient(t)

	rel := filepath.Join("media", "temporary", "abc", "file.jpg")

	n, err := c.WriteStream(rel, strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("WriteStream: %v", err)
	}

	if n != int64(len("payload")) {
		t.Fatalf("expected %d bytes written, got %d", len("payload"), n)
	}

	if !c.Exists(rel) {
		t.Fatal("staged file should exist")
	}

	dst := filepath.Join("media", "synced", "abc", "file.jpg")
	if err := c.Move(rel, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}

	if c.Exists(rel) {
		t.Fatal("source should be gone after move")
	}

	if !c.Exists(dst) {
		t.Fatal("target should exist after move")
	}
}

func TestMoveMissingSource(t *testing.T) {
	c := newTestClient(t)

	if err := c.Move("media/temporary/x/missing.jpg", "media/synced/x/missing.jpg"); err == nil {
		t.Fatal("expected error moving missing file")
	}
}

func TestRemoveIdempotent(t *testing.T) {
	c := newTestClient(t)

	rel := "media/synced/d/e.png"
	if _, err := c.WriteStream(rel, strings.NewReader("x")); err != nil {
		t.Fatalf("WriteStream: %v", err)
	}

	if err := c.Remove(rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	// second remove is a no-op
	if err := c.Remove(rel); err != nil {
		t.Fatalf("Remove (repeat): %v", err)
	}
}

func TestRemoveDirIfEmpty(t *testing.T) {
	c := newTestClient(t)

	keep := "media/temporary/dir/a.bin"
	if _, err := c.WriteStream(keep, strings.NewReader("x")); err != nil {
		t.Fatalf("WriteStream: %v", err)
	}

	// non-empty dir survives
	c.RemoveDirIfEmpty("media/temporary/dir")

	if !c.Exists(keep) {
		t.Fatal("file in non-empty dir should survive")
	}

	if err := c.Remove(keep); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	c.RemoveDirIfEmpty("media/temporary/dir")

	if c.Exists("media/temporary/dir") {
		t.Fatal("empty dir should be removed")
	}
}
