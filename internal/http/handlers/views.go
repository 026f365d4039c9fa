package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/shell"
	"creatorstudio/internal/views"
)

var errNotImage = errors.New("file must be an image")

// SubmitScript updates the script form and starts a generation.
func (a *App) SubmitScript(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	if !a.requireKey(w, r, sh) {
		return
	}
	var form views.ScriptForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	writer := sh.Views().Script
	writer.Update(form)
	if err := writer.Submit(); err != nil {
		a.submitError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, writer.Snapshot())
}

// SubmitImage updates the image studio from a multipart form and starts a
// generation or edit.
func (a *App) SubmitImage(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	if !a.requireKey(w, r, sh) {
		return
	}
	upload, ok := a.parseForm(w, r)
	if !ok {
		return
	}
	mode, err := views.ParseImageMode(r.FormValue("mode"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	studioView := sh.Views().Image
	if formBool(r, "clear_file") {
		studioView.ClearFile()
	}
	studioView.Update(views.ImageForm{
		Mode:        mode,
		Prompt:      r.FormValue("prompt"),
		AspectRatio: image.AspectRatio(r.FormValue("aspect_ratio")),
		Resolution:  image.Resolution(r.FormValue("resolution")),
		File:        upload,
	})
	if err := studioView.Submit(); err != nil {
		a.submitError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, studioView.Snapshot())
}

// SubmitVideo updates the video generator from a multipart form and starts a
// render.
func (a *App) SubmitVideo(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	if !a.requireKey(w, r, sh) {
		return
	}
	upload, ok := a.parseForm(w, r)
	if !ok {
		return
	}
	mode, err := views.ParseVideoMode(r.FormValue("mode"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	generator := sh.Views().Video
	if formBool(r, "clear_file") {
		generator.ClearFile()
	}
	generator.Update(views.VideoForm{
		Mode:        mode,
		Prompt:      r.FormValue("prompt"),
		AspectRatio: video.AspectRatio(r.FormValue("aspect_ratio")),
		File:        upload,
	})
	if err := generator.Submit(); err != nil {
		a.submitError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, generator.Snapshot())
}

// Dashboard returns the landing cards plus topic inspiration.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	limit := defaultTopicLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	a.json(w, http.StatusOK, sh.Views().Dashboard.WithInspiration(r.Context(), limit))
}

// View returns one view snapshot. With ?wait=<duration> it blocks until the
// view's request settles or the wait elapses.
func (a *App) View(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	kind, err := views.ParseKind(chi.URLParam(r, "view"))
	if err != nil {
		a.error(w, http.StatusNotFound, "unknown_view", err.Error())
		return
	}
	wait, err := parseWait(r.URL.Query().Get("wait"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if wait > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), wait)
		waitView(ctx, sh, kind)
		cancel()
	}
	a.json(w, http.StatusOK, viewSnapshot(sh, kind))
}

// requireKey lets a submission through only when a key is selected. A shell
// without one re-checks first so a key selected elsewhere counts.
func (a *App) requireKey(w http.ResponseWriter, r *http.Request, sh *shell.Shell) bool {
	if sh.HasKey() || sh.CheckKey(r.Context()) {
		return true
	}
	a.error(w, http.StatusUnprocessableEntity, "no_key", "select a Gemini API key first")
	return false
}

func (a *App) submitError(w http.ResponseWriter, err error) {
	if errors.Is(err, views.ErrNotReady) {
		a.error(w, http.StatusConflict, "not_ready", "the view is busy or missing required input")
		return
	}
	a.Logger.Error().Err(err).Msg("submit failed")
	a.error(w, http.StatusInternalServerError, "submit_failed", "failed to start the request")
}

// parseForm reads the multipart body and the optional file field. It writes
// the error response itself and reports false on failure.
func (a *App) parseForm(w http.ResponseWriter, r *http.Request) (*views.Upload, bool) {
	limit := a.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", fmt.Sprintf("upload exceeds %d bytes", limit))
			return nil, false
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return nil, false
	}
	upload, err := readUpload(r, limit)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return nil, false
	}
	return upload, true
}

func readUpload(r *http.Request, limit int64) (*views.Upload, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	defer file.Close()
	if header.Size > limit {
		return nil, fmt.Errorf("upload exceeds %d bytes", limit)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	upload := views.NewUpload(header.Filename, header.Header.Get("Content-Type"), data)
	if !strings.HasPrefix(upload.MIMEType, "image/") {
		return nil, errNotImage
	}
	return upload, nil
}

func formBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.FormValue(key))
	return v
}

func parseWait(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid wait %q", raw)
	}
	return min(d, maxWait), nil
}

func waitView(ctx context.Context, sh *shell.Shell, kind views.Kind) {
	set := sh.Views()
	switch kind {
	case views.KindScriptWriter:
		_, _ = set.Script.Wait(ctx)
	case views.KindImageStudio:
		_, _ = set.Image.Wait(ctx)
	case views.KindVideoGenerator:
		_, _ = set.Video.Wait(ctx)
	}
}

func viewSnapshot(sh *shell.Shell, kind views.Kind) any {
	set := sh.Views()
	switch kind {
	case views.KindScriptWriter:
		return set.Script.Snapshot()
	case views.KindImageStudio:
		return set.Image.Snapshot()
	case views.KindVideoGenerator:
		return set.Video.Snapshot()
	default:
		return set.Dashboard.Snapshot()
	}
}
