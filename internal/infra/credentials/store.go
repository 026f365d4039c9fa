package credentials

import (
	"context"
	"errors"
	"strings"
	"sync"
)

const (
	ProviderGemini = "gemini"
)

// ErrNoKey reports that no usable API key has been selected yet.
var ErrNoKey = errors.New("credentials: no api key selected")

// Bridge is the hosting environment's credential surface: a presence query
// and a user-driven selection flow.
type Bridge interface {
	HasSelectedAPIKey(ctx context.Context) (bool, error)
	SelectAPIKey(ctx context.Context, key string) error
}

// Store keeps the selected provider key in memory for the lifetime of the
// process. It never writes the key anywhere.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewStore returns a store optionally seeded with a Gemini key.
func NewStore(geminiKey string) *Store {
	s := &Store{tokens: make(map[string]string)}
	if key := strings.TrimSpace(geminiKey); key != "" {
		s.tokens[ProviderGemini] = key
	}
	return s
}

// GeminiAPIKey returns the selected Gemini key or ErrNoKey.
func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	token, err := s.Token(ctx, ProviderGemini)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoKey
	}
	return token, nil
}

// Token returns the stored token for provider, or an empty string.
func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[provider], nil
}

// SetGeminiAPIKey replaces the selected Gemini key.
func (s *Store) SetGeminiAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("gemini api key is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.tokens[ProviderGemini] = key
	s.mu.Unlock()
	return nil
}

// HasSelectedAPIKey implements Bridge.
func (s *Store) HasSelectedAPIKey(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx, ProviderGemini)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// SelectAPIKey implements Bridge.
func (s *Store) SelectAPIKey(ctx context.Context, key string) error {
	return s.SetGeminiAPIKey(ctx, key)
}

var _ Bridge = (*Store)(nil)
