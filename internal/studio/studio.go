package studio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/media"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/script"
	"creatorstudio/internal/providers/video"
)

// ImageResource is a generated image ready to render inline.
type ImageResource struct {
	DataURI  string `json:"data_uri"`
	Filename string `json:"filename"`
}

// VideoResource is a transient handle to a generated video.
type VideoResource struct {
	Handle   string `json:"handle"`
	URL      string `json:"url"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Filename string `json:"filename"`
}

// Adapter is the media service consumed by views and tool surfaces.
type Adapter interface {
	GenerateScript(ctx context.Context, req script.Request) (string, error)
	GenerateImage(ctx context.Context, req image.GenerateRequest) (*ImageResource, error)
	EditImage(ctx context.Context, req image.EditRequest) (*ImageResource, error)
	GenerateVideo(ctx context.Context, req video.GenerateRequest) (*VideoResource, error)
	GenerateVideoFromImage(ctx context.Context, req video.ImageRequest) (*VideoResource, error)
}

type Options struct {
	Scripts  script.Writer
	Images   image.Generator
	Videos   video.Generator
	Media    media.Store
	MediaURL func(id string) string
	Logger   *infra.Logger
}

// Service delegates each generation to its provider and turns raw results into
// renderable resources. It keeps no history and never caches.
type Service struct {
	scripts  script.Writer
	images   image.Generator
	videos   video.Generator
	media    media.Store
	mediaURL func(string) string
	logger   *infra.Logger
	now      func() time.Time
}

func NewService(opts Options) (*Service, error) {
	switch {
	case opts.Scripts == nil:
		return nil, errors.New("studio: script writer is required")
	case opts.Images == nil:
		return nil, errors.New("studio: image generator is required")
	case opts.Videos == nil:
		return nil, errors.New("studio: video generator is required")
	case opts.Media == nil:
		return nil, errors.New("studio: media store is required")
	}
	mediaURL := opts.MediaURL
	if mediaURL == nil {
		mediaURL = func(id string) string { return "/v1/media/" + id }
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Service{
		scripts:  opts.Scripts,
		images:   opts.Images,
		videos:   opts.Videos,
		media:    opts.Media,
		mediaURL: mediaURL,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (s *Service) GenerateScript(ctx context.Context, req script.Request) (string, error) {
	start := time.Now()
	text, err := s.scripts.Generate(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "script").Msg("studio: generation failed")
		return "", err
	}
	s.logger.Info().Str("op", "script").Int("chars", len(text)).Dur("elapsed", time.Since(start)).Msg("studio: generation finished")
	return text, nil
}

func (s *Service) GenerateImage(ctx context.Context, req image.GenerateRequest) (*ImageResource, error) {
	asset, err := s.images.Generate(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "image").Msg("studio: generation failed")
		return nil, err
	}
	return s.imageResource(asset), nil
}

func (s *Service) EditImage(ctx context.Context, req image.EditRequest) (*ImageResource, error) {
	asset, err := s.images.Edit(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "image_edit").Msg("studio: generation failed")
		return nil, err
	}
	return s.imageResource(asset), nil
}

func (s *Service) GenerateVideo(ctx context.Context, req video.GenerateRequest) (*VideoResource, error) {
	start := time.Now()
	asset, err := s.videos.Generate(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "video").Msg("studio: generation failed")
		return nil, err
	}
	res, err := s.storeVideo(ctx, asset)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("op", "video").Str("handle", res.Handle).Dur("elapsed", time.Since(start)).Msg("studio: generation finished")
	return res, nil
}

func (s *Service) GenerateVideoFromImage(ctx context.Context, req video.ImageRequest) (*VideoResource, error) {
	start := time.Now()
	asset, err := s.videos.GenerateFromImage(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "video_from_image").Msg("studio: generation failed")
		return nil, err
	}
	res, err := s.storeVideo(ctx, asset)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("op", "video_from_image").Str("handle", res.Handle).Dur("elapsed", time.Since(start)).Msg("studio: generation finished")
	return res, nil
}

func (s *Service) imageResource(asset *image.Asset) *ImageResource {
	return &ImageResource{
		DataURI:  asset.DataURI(),
		Filename: media.ImageFilename(s.now()),
	}
}

func (s *Service) storeVideo(ctx context.Context, asset *video.Asset) (*VideoResource, error) {
	item, err := s.media.Put(ctx, asset.Data, asset.MIMEType, media.VideoFilename(s.now()))
	if err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}
	return &VideoResource{
		Handle:   item.ID,
		URL:      s.mediaURL(item.ID),
		MIMEType: item.MIMEType,
		Size:     item.Size,
		Filename: item.Filename,
	}, nil
}

var _ Adapter = (*Service)(nil)
