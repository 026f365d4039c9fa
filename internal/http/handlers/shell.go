package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/views"
)

type navigateRequest struct {
	View string `json:"view"`
}

type topicRequest struct {
	Topic string `json:"topic"`
}

type selectKeyRequest struct {
	APIKey string `json:"api_key"`
}

// Shell returns the session's full render state. A shell without a key
// re-checks so a key selected from another session shows up.
func (a *App) Shell(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	if !sh.HasKey() {
		sh.CheckKey(r.Context())
	}
	a.json(w, http.StatusOK, sh.Snapshot())
}

func (a *App) Navigate(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := sh.Navigate(views.Kind(req.View)); err != nil {
		a.error(w, http.StatusBadRequest, "unknown_view", err.Error())
		return
	}
	a.json(w, http.StatusOK, sh.Snapshot())
}

func (a *App) UseTopic(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := sh.UseTopic(req.Topic); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusOK, sh.Snapshot())
}

func (a *App) CheckCredentials(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	has := sh.CheckKey(r.Context())
	a.json(w, http.StatusOK, map[string]bool{"has_key": has})
}

// SelectCredentials replaces the process-wide key for every session. With
// LOCK_ENV_API_KEY set, a key supplied through the environment cannot be
// replaced.
func (a *App) SelectCredentials(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	if a.Config.LockEnvKey && strings.TrimSpace(a.Config.GeminiAPIKey) != "" {
		a.error(w, http.StatusForbidden, "key_locked", "the API key is managed by the server")
		return
	}
	var req selectKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "api_key is required")
		return
	}
	if err := sh.SelectKey(r.Context(), req.APIKey); err != nil {
		if errors.Is(err, credentials.ErrNoKey) {
			a.error(w, http.StatusUnprocessableEntity, "no_key", "no API key is selected")
			return
		}
		a.Logger.Error().Err(err).Msg("select api key failed")
		a.error(w, http.StatusInternalServerError, "select_failed", "failed to select API key")
		return
	}
	a.json(w, http.StatusOK, sh.Snapshot())
}
