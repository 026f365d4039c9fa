package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"creatorstudio/internal/media"
)

// ServeMedia streams a generated file. Range requests are honored so videos can
// be scrubbed in a player.
func (a *App) ServeMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, body, err := a.Media.Open(r.Context(), id)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "media not found")
			return
		}
		a.Logger.Error().Err(err).Str("media_id", id).Msg("open media failed")
		a.error(w, http.StatusInternalServerError, "media_error", "failed to open media")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", item.MIMEType)
	disposition := "inline"
	if r.URL.Query().Has("download") {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": item.Filename}))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeContent(w, r, item.Filename, item.CreatedAt, body)
}
