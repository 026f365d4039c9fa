package handlers

import (
	"net/http"

	"golang.org/x/text/language/display"

	"creatorstudio/internal/middleware"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/views"
)

type viewOption struct {
	View  views.Kind `json:"view"`
	Label string     `json:"label"`
}

type languageOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type optionsResponse struct {
	Views             []viewOption        `json:"views"`
	Tones             []string            `json:"tones"`
	ImageAspectRatios []image.AspectRatio `json:"image_aspect_ratios"`
	Resolutions       []image.Resolution  `json:"resolutions"`
	VideoAspectRatios []video.AspectRatio `json:"video_aspect_ratios"`
	Languages         []languageOption    `json:"languages"`
	Language          string              `json:"language"`
}

// Options lists the selectable values of every form. Language defaults to the
// negotiated request locale.
func (a *App) Options(w http.ResponseWriter, r *http.Request) {
	resp := optionsResponse{
		Tones:             a.Tones,
		ImageAspectRatios: image.AspectRatios,
		Resolutions:       image.Resolutions,
		VideoAspectRatios: video.AspectRatios,
		Language:          middleware.LocaleFromContext(r.Context()),
	}
	for _, kind := range views.Kinds {
		resp.Views = append(resp.Views, viewOption{View: kind, Label: kind.Label()})
	}
	for _, tag := range middleware.SupportedLocales {
		resp.Languages = append(resp.Languages, languageOption{Code: tag.String(), Name: display.Self.Name(tag)})
	}
	a.json(w, http.StatusOK, resp)
}
