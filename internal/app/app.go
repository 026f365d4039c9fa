// Package app assembles the studio components shared by the HTTP server and
// the terminal client.
package app

import (
	"errors"
	"fmt"
	"net/http"

	"creatorstudio/internal/feeds"
	"creatorstudio/internal/infra"
	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/media"
	"creatorstudio/internal/providers/genai"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/script"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/studio"
	"creatorstudio/internal/views"
)

type Components struct {
	Config      *infra.Config
	Presets     *infra.Presets
	Credentials *credentials.Store
	Service     *studio.Service
	Media       media.Store
	Feeds       *feeds.Fetcher

	logger  *infra.Logger
	closers []func() error
}

// LoadConfig reads the environment and overlays the optional presets file.
func LoadConfig() (*infra.Config, *infra.Presets, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	presets, err := infra.LoadPresets(cfg.PresetsPath)
	if err != nil {
		return nil, nil, err
	}
	cfg.ApplyPresets(presets)
	return cfg, presets, nil
}

// Build wires providers, storage and the studio service from configuration.
// The Gemini client resolves its key from the credential store on every call.
func Build(cfg *infra.Config, presets *infra.Presets, logger *infra.Logger) (*Components, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if presets == nil {
		presets = infra.DefaultPresets()
	}
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	c := &Components{Config: cfg, Presets: presets, logger: logger}
	c.Credentials = credentials.NewStore(cfg.GeminiAPIKey)

	gemini, err := genai.NewClient(genai.Options{
		Keys:           c.Credentials.GeminiAPIKey,
		BaseURL:        cfg.GeminiBaseURL,
		HTTPClient:     &http.Client{Timeout: cfg.ProviderTimeout},
		DownloadClient: &http.Client{Timeout: cfg.DownloadTimeout},
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	writer, err := newScriptWriter(cfg, gemini, logger)
	if err != nil {
		return nil, err
	}
	images, err := image.NewGeminiGenerator(image.GeminiOptions{
		Client: gemini,
		Model:  cfg.ImageModel,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	videos, err := video.NewVeoGenerator(video.VeoOptions{
		Client:         gemini,
		Model:          cfg.VideoModel,
		FromImageModel: cfg.VideoFromImageModel,
		PollInterval:   cfg.VideoPollInterval,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	if err := c.openMedia(); err != nil {
		return nil, err
	}

	c.Service, err = studio.NewService(studio.Options{
		Scripts: writer,
		Images:  images,
		Videos:  videos,
		Media:   c.Media,
		Logger:  logger,
	})
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Feeds = feeds.NewFetcher(feeds.Options{URLs: cfg.InspirationFeeds, Logger: logger})
	return c, nil
}

func newScriptWriter(cfg *infra.Config, gemini *genai.Client, logger *infra.Logger) (script.Writer, error) {
	if cfg.ScriptProvider == "cohere" {
		return script.NewCohereWriter(script.CohereOptions{
			APIKey:     cfg.CohereAPIKey,
			Model:      cfg.CohereModel,
			HTTPClient: &http.Client{Timeout: cfg.ProviderTimeout},
			Logger:     logger,
		})
	}
	return script.NewGeminiWriter(script.GeminiOptions{
		Client: gemini,
		Model:  cfg.ScriptModel,
		Logger: logger,
	})
}

func (c *Components) openMedia() error {
	if c.Config.MediaDir == "" {
		c.Media = media.NewMemoryStore()
		return nil
	}
	store, err := media.NewFileStore(c.Config.MediaDir)
	if err != nil {
		return fmt.Errorf("media store: %w", err)
	}
	c.Media = store
	c.closers = append(c.closers, store.Close)
	c.logger.Info().Str("dir", store.BasePath()).Msg("media: writing generated files to disk")
	return nil
}

// ViewOptions returns the settings every shell's views are built with.
func (c *Components) ViewOptions() views.Options {
	return views.Options{
		Adapter: c.Service,
		Tones:   c.Presets.Tones,
		Topics:  c.Feeds,
		Media:   c.Media,
		Logger:  c.logger,
	}
}

// Close releases storage owned by the components.
func (c *Components) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}
