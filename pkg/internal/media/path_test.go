package media

import (
	"strings"
	"testing"

	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/model"
)

func testCodec() *PathCodec {
	return NewPathCodec(&configs.MediaConfig{
		StagingDir:   "media/temporary",
		DurableDir:   "media/synced",
		PublicPrefix: "/backend/protected_media",
	})
}

func TestNewStorageDir(t *testing.T) {
	a, b := NewStorageDir(), NewStorageDir()

	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d: %s", len(a), a)
	}

	if a == b {
		t.Fatal("two storage dirs must not collide")
	}

	if strings.ToLower(a) != a {
		t.Fatalf("storage dir must be lowercase hex: %s", a)
	}
}

func TestPathLayout(t *testing.T) {
	codec := testCodec()
	asset := &model.MediaAsset{
		ID:         "0b5ac3f2-0000-0000-0000-000000000000",
		StorageDir: "deadbeef",
		Kind:       model.MediaKindPhoto,
		FileExt:    ".jpg",
	}

	wantStaging := "media/temporary/deadbeef/0b5ac3f2-0000-0000-0000-000000000000.jpg"
	if got := codec.StagingPath(asset); got != wantStaging {
		t.Fatalf("staging path = %s, want %s", got, wantStaging)
	}

	wantDurable := "media/synced/deadbeef/0b5ac3f2-0000-0000-0000-000000000000.jpg"
	if got := codec.DurablePath(asset); got != wantDurable {
		t.Fatalf("durable path = %s, want %s", got, wantDurable)
	}

	if got := codec.StagingDir(asset); got != "media/temporary/deadbeef" {
		t.Fatalf("staging dir = %s", got)
	}
}

func TestRenditionPath(t *testing.T) {
	cases := map[string]string{
		"media/synced/d/a.jpg":  "media/synced/d/a_resized.jpg",
		"media/synced/d/a.jpeg": "media/synced/d/a_resized.jpeg",
		"media/synced/d/a":      "media/synced/d/a_resized",
	}

	for in, want := range cases {
		if got := RenditionPath(in); got != want {
			t.Errorf("RenditionPath(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestPublicURLs(t *testing.T) {
	codec := testCodec()
	photo := &model.MediaAsset{ID: "a1", StorageDir: "d1", Kind: model.MediaKindPhoto, FileExt: ".jpg"}

	want := "/backend/protected_media/media/synced/d1/a1.jpg"
	if got := codec.PublicURL(photo); got != want {
		t.Fatalf("public url = %s, want %s", got, want)
	}

	wantThumb := "/backend/protected_media/media/synced/d1/a1_resized.jpg"
	if got := codec.PublicRenditionURL(photo); got != wantThumb {
		t.Fatalf("rendition url = %s, want %s", got, wantThumb)
	}

	video := &model.MediaAsset{ID: "a2", StorageDir: "d2", Kind: model.MediaKindVideo, FileExt: ".mp4"}
	if got := codec.PublicRenditionURL(video); got != "" {
		t.Fatalf("video must have no rendition url, got %s", got)
	}
}

func TestNormalizeExt(t *testing.T) {
	cases := map[string]string{
		"":     "",
		"jpg":  ".jpg",
		".JPG": ".jpg",
		".png": ".png",
	}

	for in, want := range cases {
		if got := NormalizeExt(in); got != want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
