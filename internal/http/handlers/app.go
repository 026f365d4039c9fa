package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/media"
	"creatorstudio/internal/shell"
)

const (
	defaultTopicLimit = 6
	maxWait           = 2 * time.Minute
)

type App struct {
	Config   *infra.Config
	Logger   zerolog.Logger
	Sessions *shell.Registry
	Media    media.Store
	Tones    []string
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, sessions *shell.Registry, store media.Store, tones []string) *App {
	if cfg == nil {
		cfg = &infra.Config{}
	}
	if len(tones) == 0 {
		tones = infra.DefaultTones
	}
	return &App{Config: cfg, Logger: logger, Sessions: sessions, Media: store, Tones: tones}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorBody{"error": {Code: errCode, Message: message}})
}

// session resolves the caller's shell, issuing a cookie for new sessions.
func (a *App) session(w http.ResponseWriter, r *http.Request) *shell.Shell {
	var id string
	if c, err := r.Cookie(shell.CookieName); err == nil {
		id = c.Value
	}
	sh, id, created := a.Sessions.Lookup(r.Context(), id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     shell.CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sh
}

func (a *App) maxUploadBytes() int64 {
	if a.Config.MaxUploadBytes > 0 {
		return a.Config.MaxUploadBytes
	}
	return 20 << 20
}
