package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/studio"
)

// ImageMode switches the image studio between generation and editing.
type ImageMode string

const (
	ImageModeGenerate ImageMode = "generate"
	ImageModeEdit     ImageMode = "edit"
)

// ParseImageMode validates an image studio mode. Empty means generate.
func ParseImageMode(raw string) (ImageMode, error) {
	switch ImageMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ImageModeGenerate:
		return ImageModeGenerate, nil
	case ImageModeEdit:
		return ImageModeEdit, nil
	default:
		return "", fmt.Errorf("unknown image mode %q", raw)
	}
}

// ImageForm holds the image studio inputs.
type ImageForm struct {
	Mode        ImageMode         `json:"mode"`
	Prompt      string            `json:"prompt"`
	AspectRatio image.AspectRatio `json:"aspect_ratio"`
	Resolution  image.Resolution  `json:"resolution"`
	File        *Upload           `json:"-"`
}

// ImageStudioSnapshot is the render state of the image studio.
type ImageStudioSnapshot struct {
	Mode         ImageMode                          `json:"mode"`
	Prompt       string                             `json:"prompt"`
	AspectRatio  image.AspectRatio                  `json:"aspect_ratio"`
	Resolution   image.Resolution                   `json:"resolution"`
	File         *UploadInfo                        `json:"file,omitempty"`
	CanSubmit    bool                               `json:"can_submit"`
	TriggerLabel string                             `json:"trigger_label"`
	LoadingText  string                             `json:"loading_text,omitempty"`
	Task         TaskSnapshot[studio.ImageResource] `json:"task"`
}

// ImageStudio generates images from prompts or edits an uploaded image.
type ImageStudio struct {
	adapter studio.Adapter
	task    *Task[studio.ImageResource]

	mu   sync.Mutex
	form ImageForm
}

func NewImageStudio(base context.Context, adapter studio.Adapter, logger *infra.Logger) *ImageStudio {
	return &ImageStudio{
		adapter: adapter,
		task:    NewTask[studio.ImageResource](base, "image", logger),
		form: ImageForm{
			Mode:        ImageModeGenerate,
			AspectRatio: image.AspectSquare,
			Resolution:  image.Resolution1K,
		},
	}
}

// Update replaces the form, normalizing aspect ratio and resolution. A nil
// file keeps the previously selected one.
func (v *ImageStudio) Update(form ImageForm) {
	if form.Mode == "" {
		form.Mode = ImageModeGenerate
	}
	form.AspectRatio = image.NormalizeAspectRatio(string(form.AspectRatio))
	form.Resolution = image.NormalizeResolution(string(form.Resolution))
	v.mu.Lock()
	if form.File == nil {
		form.File = v.form.File
	}
	v.form = form
	v.mu.Unlock()
}

// ClearFile drops the selected source image.
func (v *ImageStudio) ClearFile() {
	v.mu.Lock()
	v.form.File = nil
	v.mu.Unlock()
}

func imageReady(form ImageForm) bool {
	if strings.TrimSpace(form.Prompt) == "" {
		return false
	}
	return form.Mode != ImageModeEdit || form.File != nil
}

func (v *ImageStudio) CanSubmit() bool {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	return imageReady(form) && !v.task.Pending()
}

func (v *ImageStudio) Submit() error {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	if !imageReady(form) {
		return ErrNotReady
	}
	if form.Mode == ImageModeEdit {
		file := form.File
		return v.task.Start(func(ctx context.Context) (studio.ImageResource, error) {
			res, err := v.adapter.EditImage(ctx, image.EditRequest{
				Source:   file.Data,
				MIMEType: file.MIMEType,
				Prompt:   form.Prompt,
			})
			if err != nil {
				return studio.ImageResource{}, err
			}
			return *res, nil
		})
	}
	return v.task.Start(func(ctx context.Context) (studio.ImageResource, error) {
		res, err := v.adapter.GenerateImage(ctx, image.GenerateRequest{
			Prompt:      form.Prompt,
			AspectRatio: form.AspectRatio,
			Resolution:  form.Resolution,
		})
		if err != nil {
			return studio.ImageResource{}, err
		}
		return *res, nil
	})
}

func (v *ImageStudio) Wait(ctx context.Context) (TaskSnapshot[studio.ImageResource], error) {
	return v.task.Wait(ctx)
}

func (v *ImageStudio) Snapshot() ImageStudioSnapshot {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	task := v.task.Snapshot()

	snap := ImageStudioSnapshot{
		Mode:        form.Mode,
		Prompt:      form.Prompt,
		AspectRatio: form.AspectRatio,
		Resolution:  form.Resolution,
		File:        form.File.info(),
		CanSubmit:   imageReady(form) && !task.Pending(),
		Task:        task,
	}
	switch {
	case task.Pending():
		snap.TriggerLabel = "Processing..."
		if form.Mode == ImageModeEdit {
			snap.LoadingText = "Applying Edits..."
		} else {
			snap.LoadingText = "Generating High-Res Image..."
		}
	case form.Mode == ImageModeEdit:
		snap.TriggerLabel = "Edit Image"
	default:
		snap.TriggerLabel = "Generate Image"
	}
	return snap
}
