package views

import (
	"fmt"
	"strings"
)

// Kind selects one of the top-level views.
type Kind string

const (
	KindDashboard      Kind = "dashboard"
	KindScriptWriter   Kind = "script_writer"
	KindImageStudio    Kind = "image_studio"
	KindVideoGenerator Kind = "video_generator"
)

// Kinds lists the views in sidebar order.
var Kinds = []Kind{KindDashboard, KindScriptWriter, KindImageStudio, KindVideoGenerator}

// Label is the sidebar caption of the view.
func (k Kind) Label() string {
	switch k {
	case KindDashboard:
		return "Dashboard"
	case KindScriptWriter:
		return "Script Writer"
	case KindImageStudio:
		return "Image Studio"
	case KindVideoGenerator:
		return "Video Generator"
	default:
		return string(k)
	}
}

// ParseKind validates a view selector.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", raw)
}
