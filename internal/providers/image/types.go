package image

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoImageData is returned when a generation response carries no inline image.
	ErrNoImageData = errors.New("image: no image data found in response")
	// ErrNoEditedImageData is the edit counterpart; it matches ErrNoImageData.
	ErrNoEditedImageData = fmt.Errorf("%w after edit", ErrNoImageData)
)

// AspectRatio enumerates supported image aspect ratios.
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// Resolution enumerates supported output sizes.
type Resolution string

const (
	Resolution1K Resolution = "1K"
	Resolution2K Resolution = "2K"
	Resolution4K Resolution = "4K"
)

// AspectRatios lists the selectable aspect ratios, default first.
var AspectRatios = []AspectRatio{AspectSquare, AspectLandscape, AspectPortrait}

// Resolutions lists the selectable sizes, default first.
var Resolutions = []Resolution{Resolution1K, Resolution2K, Resolution4K}

const defaultSourceMIME = "image/png"

// GenerateRequest describes a text-to-image generation.
type GenerateRequest struct {
	Prompt      string
	AspectRatio AspectRatio
	Resolution  Resolution
}

// EditRequest describes an instruction applied to an uploaded image.
type EditRequest struct {
	Source   []byte
	MIMEType string
	Prompt   string
}

// Asset is a generated image with its base64 payload.
type Asset struct {
	MIMEType string
	Data     string
}

// DataURI renders the asset as an inline PNG data URI.
func (a Asset) DataURI() string {
	return "data:image/png;base64," + a.Data
}

// Generator is the contract implemented by image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
	Edit(ctx context.Context, req EditRequest) (*Asset, error)
}

// NormalizeAspectRatio maps free-form input onto a supported ratio.
func NormalizeAspectRatio(raw string) AspectRatio {
	switch AspectRatio(strings.TrimSpace(raw)) {
	case AspectLandscape:
		return AspectLandscape
	case AspectPortrait:
		return AspectPortrait
	default:
		return AspectSquare
	}
}

// NormalizeResolution maps free-form input onto a supported size.
func NormalizeResolution(raw string) Resolution {
	switch Resolution(strings.ToUpper(strings.TrimSpace(raw))) {
	case Resolution2K:
		return Resolution2K
	case Resolution4K:
		return Resolution4K
	default:
		return Resolution1K
	}
}
