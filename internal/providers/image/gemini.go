package image

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/providers/genai"
)

const defaultGeminiModel = "gemini-3-pro-image-preview"

type GeminiOptions struct {
	Client *genai.Client
	Model  string
	Logger *infra.Logger
}

// GeminiGenerator renders and edits images with a Gemini image model.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *infra.Logger
}

func NewGeminiGenerator(opts GeminiOptions) (*GeminiGenerator, error) {
	if opts.Client == nil {
		return nil, errors.New("image: gemini client is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &GeminiGenerator{client: opts.Client, model: model, logger: logger}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	resp, err := g.client.GenerateContent(ctx, g.model, genai.GenerateContentRequest{
		Contents: genai.UserContent(genai.TextPart(req.Prompt)),
		GenerationConfig: &genai.GenerationConfig{
			ImageConfig: &genai.ImageConfig{
				AspectRatio: string(NormalizeAspectRatio(string(req.AspectRatio))),
				ImageSize:   string(NormalizeResolution(string(req.Resolution))),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	blob, ok := resp.FirstInlineData()
	if !ok {
		g.logger.Warn().Str("model", g.model).Msg("image: response without inline data")
		return nil, ErrNoImageData
	}
	return &Asset{MIMEType: blob.MimeType, Data: blob.Data}, nil
}

func (g *GeminiGenerator) Edit(ctx context.Context, req EditRequest) (*Asset, error) {
	mimeType := strings.TrimSpace(req.MIMEType)
	if mimeType == "" {
		mimeType = defaultSourceMIME
	}
	resp, err := g.client.GenerateContent(ctx, g.model, genai.GenerateContentRequest{
		Contents: genai.UserContent(
			genai.InlinePart(mimeType, base64.StdEncoding.EncodeToString(req.Source)),
			genai.TextPart(req.Prompt),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("edit image: %w", err)
	}
	blob, ok := resp.FirstInlineData()
	if !ok {
		g.logger.Warn().Str("model", g.model).Msg("image: edit response without inline data")
		return nil, ErrNoEditedImageData
	}
	return &Asset{MIMEType: blob.MimeType, Data: blob.Data}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
