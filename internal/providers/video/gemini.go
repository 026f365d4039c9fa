package video

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/providers/genai"
)

const (
	defaultModel          = "veo-3.1-generate-preview"
	defaultFromImageModel = "veo-3.1-fast-generate-preview"
	defaultPollInterval   = 5 * time.Second
	defaultSourceMIME     = "image/png"
	defaultVideoMIME      = "video/mp4"

	textResolution  = "1080p"
	imageResolution = "720p"
)

type VeoOptions struct {
	Client         *genai.Client
	Model          string
	FromImageModel string
	PollInterval   time.Duration
	Logger         *infra.Logger
}

// VeoGenerator submits Veo jobs, polls them to completion and downloads the result.
type VeoGenerator struct {
	client         *genai.Client
	model          string
	fromImageModel string
	interval       time.Duration
	logger         *infra.Logger
	after          func(time.Duration) <-chan time.Time
}

func NewVeoGenerator(opts VeoOptions) (*VeoGenerator, error) {
	if opts.Client == nil {
		return nil, errors.New("video: gemini client is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	fromImage := strings.TrimSpace(opts.FromImageModel)
	if fromImage == "" {
		fromImage = defaultFromImageModel
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &VeoGenerator{
		client:         opts.Client,
		model:          model,
		fromImageModel: fromImage,
		interval:       interval,
		logger:         logger,
		after:          time.After,
	}, nil
}

func (v *VeoGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	op, err := v.client.PredictLongRunning(ctx, v.model, genai.PredictLongRunningRequest{
		Instances: []genai.VideoInstance{{Prompt: req.Prompt}},
		Parameters: &genai.VideoParameters{
			AspectRatio: string(NormalizeAspectRatio(string(req.AspectRatio))),
			Resolution:  textResolution,
			SampleCount: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("submit video job: %w", err)
	}
	return v.complete(ctx, op, ErrNoVideo)
}

func (v *VeoGenerator) GenerateFromImage(ctx context.Context, req ImageRequest) (*Asset, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = DefaultImagePrompt
	}
	mimeType := strings.TrimSpace(req.MIMEType)
	if mimeType == "" {
		mimeType = defaultSourceMIME
	}
	op, err := v.client.PredictLongRunning(ctx, v.fromImageModel, genai.PredictLongRunningRequest{
		Instances: []genai.VideoInstance{{
			Prompt: prompt,
			Image: &genai.VideoImage{
				BytesBase64Encoded: base64.StdEncoding.EncodeToString(req.Source),
				MimeType:           mimeType,
			},
		}},
		Parameters: &genai.VideoParameters{
			AspectRatio: string(NormalizeAspectRatio(string(req.AspectRatio))),
			Resolution:  imageResolution,
			SampleCount: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("submit image video job: %w", err)
	}
	return v.complete(ctx, op, ErrNoVideoFromImage)
}

func (v *VeoGenerator) complete(ctx context.Context, op *genai.Operation, missing error) (*Asset, error) {
	op, err := v.await(ctx, op)
	if err != nil {
		return nil, err
	}
	uri := op.VideoURI()
	if uri == "" {
		v.logger.Warn().
			Str("operation", op.Name).
			Strs("filtered", op.FilteredReasons()).
			Msg("video: operation finished without uri")
		return nil, missing
	}

	dl, err := v.client.Download(ctx, uri)
	if err != nil {
		var dlErr *genai.DownloadError
		if errors.As(err, &dlErr) {
			return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
		}
		return nil, fmt.Errorf("download video: %w", err)
	}
	mimeType := dl.MIMEType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = defaultVideoMIME
	}
	return &Asset{Data: dl.Data, MIMEType: mimeType, URI: uri}, nil
}

// await re-fetches the operation at a fixed interval until it reports done.
// There is no ceiling; only ctx ends the wait early.
func (v *VeoGenerator) await(ctx context.Context, op *genai.Operation) (*genai.Operation, error) {
	name := op.Name
	polls := 0
	for !op.Done {
		select {
		case <-v.after(v.interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		next, err := v.client.GetOperation(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("poll video job: %w", err)
		}
		if next.Name == "" {
			next.Name = name
		}
		op = next
		polls++
		v.logger.Debug().Str("operation", name).Int("polls", polls).Bool("done", op.Done).Msg("video: polled operation")
	}
	if op.Error != nil {
		return nil, &OperationError{Code: op.Error.Code, Message: op.Error.Message}
	}
	return op, nil
}

var _ Generator = (*VeoGenerator)(nil)
