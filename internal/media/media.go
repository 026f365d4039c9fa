package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNotFound is returned for unknown or released handles.
var ErrNotFound = errors.New("media: not found")

// Item describes a stored blob.
type Item struct {
	ID        string    `json:"id"`
	MIMEType  string    `json:"mime_type"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps generated media for the lifetime of the process. Nothing
// survives a restart.
type Store interface {
	Put(ctx context.Context, data []byte, mimeType, filename string) (*Item, error)
	Open(ctx context.Context, id string) (*Item, io.ReadSeekCloser, error)
	Delete(ctx context.Context, id string) error
}

// ImageFilename is the suggested download name for a generated image.
func ImageFilename(t time.Time) string {
	return fmt.Sprintf("generated-image-%d.png", t.UnixMilli())
}

// VideoFilename is the suggested download name for a generated video.
func VideoFilename(t time.Time) string {
	return fmt.Sprintf("veo-generation-%d.mp4", t.UnixMilli())
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }
