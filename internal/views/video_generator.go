package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/studio"
)

const videoSubText = "Powered by Veo. This may take 1-2 minutes."

// VideoMode switches the video generator between text and image input.
type VideoMode string

const (
	VideoModeText  VideoMode = "text"
	VideoModeImage VideoMode = "image"
)

// ParseVideoMode validates a video generator mode. Empty means text.
func ParseVideoMode(raw string) (VideoMode, error) {
	switch VideoMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", VideoModeText:
		return VideoModeText, nil
	case VideoModeImage:
		return VideoModeImage, nil
	default:
		return "", fmt.Errorf("unknown video mode %q", raw)
	}
}

// VideoForm holds the video generator inputs.
type VideoForm struct {
	Mode        VideoMode         `json:"mode"`
	Prompt      string            `json:"prompt"`
	AspectRatio video.AspectRatio `json:"aspect_ratio"`
	File        *Upload           `json:"-"`
}

// VideoGeneratorSnapshot is the render state of the video generator.
type VideoGeneratorSnapshot struct {
	Mode         VideoMode                          `json:"mode"`
	Prompt       string                             `json:"prompt"`
	AspectRatio  video.AspectRatio                  `json:"aspect_ratio"`
	File         *UploadInfo                        `json:"file,omitempty"`
	CanSubmit    bool                               `json:"can_submit"`
	TriggerLabel string                             `json:"trigger_label"`
	LoadingText  string                             `json:"loading_text,omitempty"`
	LoadingSub   string                             `json:"loading_sub_text,omitempty"`
	Task         TaskSnapshot[studio.VideoResource] `json:"task"`
}

// VideoGenerator renders a video from a prompt or animates an uploaded image.
type VideoGenerator struct {
	adapter studio.Adapter
	task    *Task[studio.VideoResource]

	mu   sync.Mutex
	form VideoForm
}

func NewVideoGenerator(base context.Context, adapter studio.Adapter, logger *infra.Logger) *VideoGenerator {
	return &VideoGenerator{
		adapter: adapter,
		task:    NewTask[studio.VideoResource](base, "video", logger).withFallback(studio.MessageVideoFailed),
		form:    VideoForm{Mode: VideoModeText, AspectRatio: video.AspectLandscape},
	}
}

// Update replaces the form. A nil file keeps the previously selected one.
func (v *VideoGenerator) Update(form VideoForm) {
	if form.Mode == "" {
		form.Mode = VideoModeText
	}
	form.AspectRatio = video.NormalizeAspectRatio(string(form.AspectRatio))
	v.mu.Lock()
	if form.File == nil {
		form.File = v.form.File
	}
	v.form = form
	v.mu.Unlock()
}

// ClearFile drops the selected source image.
func (v *VideoGenerator) ClearFile() {
	v.mu.Lock()
	v.form.File = nil
	v.mu.Unlock()
}

func videoReady(form VideoForm) bool {
	if form.Mode == VideoModeImage {
		return form.File != nil
	}
	return strings.TrimSpace(form.Prompt) != ""
}

func (v *VideoGenerator) CanSubmit() bool {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	return videoReady(form) && !v.task.Pending()
}

func (v *VideoGenerator) Submit() error {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	if !videoReady(form) {
		return ErrNotReady
	}
	if form.Mode == VideoModeImage {
		file := form.File
		return v.task.Start(func(ctx context.Context) (studio.VideoResource, error) {
			res, err := v.adapter.GenerateVideoFromImage(ctx, video.ImageRequest{
				Prompt:      form.Prompt,
				Source:      file.Data,
				MIMEType:    file.MIMEType,
				AspectRatio: form.AspectRatio,
			})
			if err != nil {
				return studio.VideoResource{}, err
			}
			return *res, nil
		})
	}
	return v.task.Start(func(ctx context.Context) (studio.VideoResource, error) {
		res, err := v.adapter.GenerateVideo(ctx, video.GenerateRequest{
			Prompt:      form.Prompt,
			AspectRatio: form.AspectRatio,
		})
		if err != nil {
			return studio.VideoResource{}, err
		}
		return *res, nil
	})
}

func (v *VideoGenerator) Wait(ctx context.Context) (TaskSnapshot[studio.VideoResource], error) {
	return v.task.Wait(ctx)
}

func (v *VideoGenerator) Snapshot() VideoGeneratorSnapshot {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	task := v.task.Snapshot()

	snap := VideoGeneratorSnapshot{
		Mode:        form.Mode,
		Prompt:      form.Prompt,
		AspectRatio: form.AspectRatio,
		File:        form.File.info(),
		CanSubmit:   videoReady(form) && !task.Pending(),
		Task:        task,
	}
	switch {
	case task.Pending():
		snap.TriggerLabel = "Processing..."
		snap.LoadingSub = videoSubText
		if form.Mode == VideoModeImage {
			snap.LoadingText = "Animating Image..."
		} else {
			snap.LoadingText = "Generating Video..."
		}
	case form.Mode == VideoModeImage:
		snap.TriggerLabel = "Animate Image"
	default:
		snap.TriggerLabel = "Generate Video"
	}
	return snap
}
