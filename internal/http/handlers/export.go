package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creatorstudio/pkg/zip"
)

// Export bundles the session's latest script, image and video into a zip.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	sh := a.session(w, r)
	set := sh.Views()
	now := time.Now()

	var entries []zip.Entry
	if snap := set.Script.Snapshot().Task; snap.Result != nil {
		entries = append(entries, zip.Entry{
			Name:     fmt.Sprintf("script-%d.md", snap.FinishedAt.UnixMilli()),
			Modified: snap.FinishedAt,
			Data:     []byte(*snap.Result),
		})
	}
	if snap := set.Image.Snapshot().Task; snap.Result != nil {
		if _, payload, ok := strings.Cut(snap.Result.DataURI, ";base64,"); ok {
			data, err := base64.StdEncoding.DecodeString(payload)
			if err == nil {
				entries = append(entries, zip.Entry{Name: snap.Result.Filename, Modified: snap.FinishedAt, Data: data})
			}
		}
	}
	if snap := set.Video.Snapshot().Task; snap.Result != nil {
		item, body, err := a.Media.Open(r.Context(), snap.Result.Handle)
		if err == nil {
			data, readErr := io.ReadAll(body)
			_ = body.Close()
			if readErr == nil {
				entries = append(entries, zip.Entry{Name: item.Filename, Modified: item.CreatedAt, Data: data})
			}
		} else {
			a.Logger.Warn().Err(err).Str("media_id", snap.Result.Handle).Msg("export: video unavailable")
		}
	}

	if len(entries) == 0 {
		a.error(w, http.StatusNotFound, "nothing_to_export", "no generated content yet")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=creatorstudio-%d.zip", now.UnixMilli()))
	w.WriteHeader(http.StatusOK)
	if err := zip.Write(w, entries); err != nil {
		a.Logger.Error().Err(err).Msg("export: write archive failed")
	}
}
