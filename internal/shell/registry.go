package shell

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/views"
)

// CookieName carries the opaque session id of a browser's shell.
const CookieName = "studio_session"

type session struct {
	shell    *Shell
	lastSeen time.Time
}

type RegistryOptions struct {
	Bridge credentials.Bridge
	Views  views.Options
	Idle   time.Duration
	Logger *infra.Logger
}

// Registry keeps one shell per browser session in memory. It is not
// authentication and nothing survives a restart.
type Registry struct {
	base   context.Context
	bridge credentials.Bridge
	views  views.Options
	idle   time.Duration
	logger *infra.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry creates a registry whose shells run requests on base.
func NewRegistry(base context.Context, opts RegistryOptions) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	if opts.Views.Logger == nil {
		opts.Views.Logger = logger
	}
	return &Registry{
		base:     base,
		bridge:   opts.Bridge,
		views:    opts.Views,
		idle:     opts.Idle,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Lookup returns the shell for id, creating a fresh one (with its launch key
// check) when id is empty or unknown. created reports whether a new id was issued.
func (r *Registry) Lookup(ctx context.Context, id string) (sh *Shell, sessionID string, created bool) {
	id = strings.TrimSpace(id)
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok && id != "" {
		s.lastSeen = r.now()
		r.mu.Unlock()
		return s.shell, id, false
	}
	r.mu.Unlock()

	sh = New(r.bridge, views.NewSet(r.base, r.views), r.logger)
	sh.CheckKey(ctx)

	sessionID = uuid.NewString()
	r.mu.Lock()
	r.sessions[sessionID] = &session{shell: sh, lastSeen: r.now()}
	r.mu.Unlock()
	r.logger.Debug().Str("session", sessionID).Msg("shell: session created")
	return sh, sessionID, true
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the idle timeout, keeping any
// with a request in flight, and releases the results they held.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)
	var dropped []*Shell
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) && !s.shell.views.Busy() {
			delete(r.sessions, id)
			dropped = append(dropped, s.shell)
		}
	}
	r.mu.Unlock()

	for _, sh := range dropped {
		sh.views.Release()
	}
	if len(dropped) > 0 {
		r.logger.Debug().Int("removed", len(dropped)).Msg("shell: swept idle sessions")
	}
	return len(dropped)
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	if r.idle <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
