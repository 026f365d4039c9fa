package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoVideo is returned when a finished job carries no video location.
	ErrNoVideo = errors.New("video: generation finished without a video uri")
	// ErrNoVideoFromImage is the image-to-video counterpart; it matches ErrNoVideo.
	ErrNoVideoFromImage = fmt.Errorf("%w for image input", ErrNoVideo)
	// ErrDownloadFailed is returned when the generated file cannot be fetched.
	ErrDownloadFailed = errors.New("video: failed to download generated video")
)

// OperationError is the failure attached to a completed provider job.
type OperationError struct {
	Code    int
	Message string
}

func (e *OperationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("video operation failed with code %d", e.Code)
	}
	return e.Message
}

// AspectRatio enumerates supported video aspect ratios.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// AspectRatios lists the selectable aspect ratios, default first.
var AspectRatios = []AspectRatio{AspectLandscape, AspectPortrait}

// DefaultImagePrompt is used when an image is animated without instructions.
const DefaultImagePrompt = "Animate this image"

// GenerateRequest describes a text-to-video job.
type GenerateRequest struct {
	Prompt      string
	AspectRatio AspectRatio
}

// ImageRequest describes an image-to-video job. Prompt may be empty.
type ImageRequest struct {
	Prompt      string
	Source      []byte
	MIMEType    string
	AspectRatio AspectRatio
}

// Asset is a downloaded video.
type Asset struct {
	Data     []byte
	MIMEType string
	URI      string
}

// Generator is the contract implemented by video providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
	GenerateFromImage(ctx context.Context, req ImageRequest) (*Asset, error)
}

// NormalizeAspectRatio maps free-form input onto a supported ratio.
func NormalizeAspectRatio(raw string) AspectRatio {
	if AspectRatio(strings.TrimSpace(raw)) == AspectPortrait {
		return AspectPortrait
	}
	return AspectLandscape
}
