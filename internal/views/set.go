package views

import (
	"context"
	"errors"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/media"
	"creatorstudio/internal/studio"
)

type Options struct {
	Adapter studio.Adapter
	Tones   []string
	Topics  TopicSource
	Media   media.Store
	Logger  *infra.Logger
}

// Set is one instance of every view, owned by a single shell.
type Set struct {
	Dashboard *Dashboard
	Script    *ScriptWriter
	Image     *ImageStudio
	Video     *VideoGenerator
}

// NewSet builds the views. Requests run on base so that leaving a view or
// dropping the triggering request does not cancel them.
func NewSet(base context.Context, opts Options) *Set {
	set := &Set{
		Dashboard: NewDashboard(opts.Topics, opts.Logger),
		Script:    NewScriptWriter(base, opts.Adapter, opts.Tones, opts.Logger),
		Image:     NewImageStudio(base, opts.Adapter, opts.Logger),
		Video:     NewVideoGenerator(base, opts.Adapter, opts.Logger),
	}
	if opts.Media != nil {
		set.Video.task.OnRelease(deleteVideo(opts.Media, opts.Logger))
	}
	return set
}

func deleteVideo(store media.Store, logger *infra.Logger) func(studio.VideoResource) {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return func(res studio.VideoResource) {
		if res.Handle == "" {
			return
		}
		if err := store.Delete(context.Background(), res.Handle); err != nil && !errors.Is(err, media.ErrNotFound) {
			logger.Warn().Err(err).Str("media_id", res.Handle).Msg("views: release video failed")
		}
	}
}

// Release drops every settled result, deleting released videos from the
// media store. It reports false when a request is still in flight; that
// view keeps its state.
func (s *Set) Release() bool {
	ok := s.Script.task.Discard()
	ok = s.Image.task.Discard() && ok
	ok = s.Video.task.Discard() && ok
	return ok
}

// Busy reports whether any view has a request in flight.
func (s *Set) Busy() bool {
	return s.Script.task.Pending() || s.Image.task.Pending() || s.Video.task.Pending()
}
