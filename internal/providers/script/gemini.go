package script

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/providers/genai"
)

const (
	defaultGeminiModel    = "gemini-3-pro-preview"
	defaultThinkingBudget = 2048
)

type GeminiOptions struct {
	Client         *genai.Client
	Model          string
	ThinkingBudget int
	Logger         *infra.Logger
}

// GeminiWriter writes scripts with a thinking-enabled Gemini model.
type GeminiWriter struct {
	client *genai.Client
	model  string
	budget int
	logger *infra.Logger
}

func NewGeminiWriter(opts GeminiOptions) (*GeminiWriter, error) {
	if opts.Client == nil {
		return nil, errors.New("script: gemini client is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	budget := opts.ThinkingBudget
	if budget <= 0 {
		budget = defaultThinkingBudget
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &GeminiWriter{client: opts.Client, model: model, budget: budget, logger: logger}, nil
}

func (g *GeminiWriter) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := g.client.GenerateContent(ctx, g.model, genai.GenerateContentRequest{
		Contents: genai.UserContent(genai.TextPart(BuildPrompt(req))),
		GenerationConfig: &genai.GenerationConfig{
			ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: g.budget},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate script: %w", err)
	}
	text := resp.Text()
	if text == "" {
		g.logger.Warn().Str("model", g.model).Msg("script: empty response")
		return "", ErrNoText
	}
	return text, nil
}

var _ Writer = (*GeminiWriter)(nil)
