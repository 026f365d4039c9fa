package media

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			item, err := store.Put(ctx, []byte("video-bytes"), "video/mp4", "veo-generation-1.mp4")
			if err != nil {
				t.Fatalf("Put returned error: %v", err)
			}
			if item.ID == "" || item.Size != int64(len("video-bytes")) {
				t.Fatalf("unexpected item %#v", item)
			}

			got, rc, err := store.Open(ctx, item.ID)
			if err != nil {
				t.Fatalf("Open returned error: %v", err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(data) != "video-bytes" || got.MIMEType != "video/mp4" || got.Filename != "veo-generation-1.mp4" {
				t.Fatalf("unexpected read back: %q %#v", data, got)
			}

			if err := store.Delete(ctx, item.ID); err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			if _, _, err := store.Open(ctx, item.ID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreHandlesAreDistinct(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, err := store.Put(context.Background(), []byte("x"), "video/mp4", "")
			if err != nil {
				t.Fatalf("Put returned error: %v", err)
			}
			b, err := store.Put(context.Background(), []byte("x"), "video/mp4", "")
			if err != nil {
				t.Fatalf("Put returned error: %v", err)
			}
			if a.ID == b.ID {
				t.Fatal("identical blobs must get distinct handles")
			}
		})
	}
}

func TestStoreUnknownHandle(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, _, err := store.Open(context.Background(), "../../etc/passwd"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := store.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestFileStoreCloseRemovesFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	item, err := store.Put(context.Background(), []byte("x"), "video/mp4", "")
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, item.ID)); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, item.ID)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, got %v", err)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "abc", want: "abc"},
		{key: " /abc ", want: "abc"},
		{key: "", wantErr: true},
		{key: "..", wantErr: true},
		{key: "../x", wantErr: true},
		{key: "a/b", wantErr: true},
	}
	for _, tt := range tests {
		got, err := sanitizeKey(tt.key)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) expected error", tt.key)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("sanitizeKey(%q) = %q, %v", tt.key, got, err)
		}
	}
}

func TestFilenames(t *testing.T) {
	ts := time.UnixMilli(1735689600123)
	if got := ImageFilename(ts); got != "generated-image-1735689600123.png" {
		t.Fatalf("ImageFilename = %q", got)
	}
	if got := VideoFilename(ts); got != "veo-generation-1735689600123.mp4" {
		t.Fatalf("VideoFilename = %q", got)
	}
}
