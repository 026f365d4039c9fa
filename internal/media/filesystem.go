package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore spills blobs onto the local filesystem so large videos do not sit
// in memory. The index lives in memory only; Close removes every file written.
type FileStore struct {
	basePath string

	mu    sync.RWMutex
	items map[string]Item
	now   func() time.Time
}

// NewFileStore initializes a FileStore rooted at basePath. An empty basePath
// creates a private temporary directory.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		dir, err := os.MkdirTemp("", "creatorstudio-media-")
		if err != nil {
			return nil, fmt.Errorf("media: create temp dir: %w", err)
		}
		basePath = dir
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("media: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath, items: make(map[string]Item), now: time.Now}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

func (s *FileStore) Put(ctx context.Context, data []byte, mimeType, filename string) (*Item, error) {
	if s == nil {
		return nil, errors.New("media: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item := Item{
		ID:        uuid.NewString(),
		MIMEType:  mimeType,
		Filename:  filename,
		Size:      int64(len(data)),
		CreatedAt: s.now(),
	}
	fullPath, err := s.path(item.ID)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(fullPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("media: write file: %w", err)
	}

	s.mu.Lock()
	s.items[item.ID] = item
	s.mu.Unlock()

	out := item
	return &out, nil
}

func (s *FileStore) Open(ctx context.Context, id string) (*Item, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotFound
	}
	fullPath, err := s.path(id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("media: open file: %w", err)
	}
	return &item, f, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	fullPath, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("media: remove file: %w", err)
	}
	return nil
}

// Close removes every file written by the store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	s.items = make(map[string]Item)
	s.mu.Unlock()

	var errs []error
	for _, id := range ids {
		fullPath, err := s.path(id)
		if err != nil {
			continue
		}
		if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *FileStore) path(id string) (string, error) {
	cleanKey, err := sanitizeKey(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(cleanKey)), nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("media: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.Contains(cleaned, "/") {
		return "", errors.New("media: invalid key")
	}
	return cleaned, nil
}

var _ Store = (*FileStore)(nil)
