package media

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	item Item
	data []byte
}

// MemoryStore keeps blobs in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Put(ctx context.Context, data []byte, mimeType, filename string) (*Item, error) {
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
	blob := append([]byte(nil), data...)

	s.mu.Lock()
	s.entries[item.ID] = memoryEntry{item: item, data: blob}
	s.mu.Unlock()

	out := item
	return &out, nil
}

func (s *MemoryStore) Open(ctx context.Context, id string) (*Item, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotFound
	}
	item := entry.item
	return &item, readSeekNopCloser{bytes.NewReader(entry.data)}, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
