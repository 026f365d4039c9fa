package script

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"creatorstudio/internal/infra"
)

const defaultCohereModel = "command-r-plus"

type CohereOptions struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// CohereWriter writes scripts through the Cohere chat endpoint.
type CohereWriter struct {
	client *cohereclient.Client
	model  string
	logger *infra.Logger
}

func NewCohereWriter(opts CohereOptions) (*CohereWriter, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("cohere api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultCohereModel
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &CohereWriter{
		client: cohereclient.NewClient(
			cohereclient.WithToken(strings.TrimSpace(opts.APIKey)),
			cohereclient.WithHTTPClient(httpClient),
		),
		model:  model,
		logger: logger,
	}, nil
}

func (c *CohereWriter) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: BuildPrompt(req),
		Model:   cohere.String(c.model),
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat: %w", err)
	}
	if resp == nil || resp.Text == "" {
		c.logger.Warn().Str("model", c.model).Msg("script: empty cohere response")
		return "", ErrNoText
	}
	return resp.Text, nil
}

var _ Writer = (*CohereWriter)(nil)
