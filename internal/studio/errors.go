package studio

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/providers/genai"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/script"
	"creatorstudio/internal/providers/video"
)

// Messages shown for known failures.
const (
	MessageNoScript         = "Failed to generate script."
	MessageNoImage          = "No image data found in response"
	MessageNoEditedImage    = "No edited image data found in response"
	MessageNoVideo          = "Video generation failed or no URI returned."
	MessageNoVideoFromImage = "Video generation failed."
	MessageDownloadFailed   = "Failed to download generated video."
	MessageKeyRequired      = "API key required. Select a Gemini API key to continue."
	MessageTimedOut         = "The request timed out."
	MessageOperationFailed  = "Operation failed"
	MessageScriptFailed     = "Failed to generate script"
	MessageVideoFailed      = "Video generation failed"
)

// DisplayMessage reduces any adapter error to a single human-readable line.
func DisplayMessage(err error) string {
	return DisplayMessageFor(err, MessageOperationFailed)
}

// DisplayMessageFor is DisplayMessage with fallback shown for errors that carry
// no readable text of their own.
func DisplayMessageFor(err error, fallback string) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, script.ErrNoText):
		return MessageNoScript
	case errors.Is(err, image.ErrNoEditedImageData):
		return MessageNoEditedImage
	case errors.Is(err, image.ErrNoImageData):
		return MessageNoImage
	case errors.Is(err, video.ErrNoVideoFromImage):
		return MessageNoVideoFromImage
	case errors.Is(err, video.ErrNoVideo):
		return MessageNoVideo
	case errors.Is(err, video.ErrDownloadFailed):
		return MessageDownloadFailed
	case errors.Is(err, credentials.ErrNoKey), errors.Is(err, genai.ErrMissingAPIKey):
		return MessageKeyRequired
	}

	var opErr *video.OperationError
	if errors.As(err, &opErr) && strings.TrimSpace(opErr.Message) != "" {
		return opErr.Message
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return MessageTimedOut
	}
	// The request URL may carry the API key, so only the cause is shown.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		if urlErr.Timeout() {
			return MessageTimedOut
		}
		return urlErr.Err.Error()
	}
	return fallback
}
