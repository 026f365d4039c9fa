package views

import (
	"context"

	"creatorstudio/internal/feeds"
	"creatorstudio/internal/infra"
)

// Card is a dashboard entry point to a feature view.
type Card struct {
	View        Kind   `json:"view"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var dashboardCards = []Card{
	{
		View:        KindScriptWriter,
		Icon:        "📝",
		Title:       "Script Writer",
		Description: "Generate engaging YouTube scripts with hooks, intros, and calls to action using Gemini Pro.",
	},
	{
		View:        KindImageStudio,
		Icon:        "🎨",
		Title:       "Image Studio",
		Description: "Generate 4K thumbnails or edit existing images with simple text instructions.",
	},
	{
		View:        KindVideoGenerator,
		Icon:        "🎥",
		Title:       "Veo Generator",
		Description: "Create high-definition videos from text prompts for your b-roll or Shorts.",
	},
}

// TopicSource supplies script ideas for the dashboard.
type TopicSource interface {
	Enabled() bool
	Topics(ctx context.Context, limit int) ([]feeds.Topic, error)
}

// DashboardSnapshot is the render state of the dashboard.
type DashboardSnapshot struct {
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle"`
	Cards       []Card        `json:"cards"`
	Topics      []feeds.Topic `json:"topics,omitempty"`
	TopicsError string        `json:"topics_error,omitempty"`
}

// Dashboard is the landing view. Its cards navigate through the shell.
type Dashboard struct {
	topics TopicSource
	logger *infra.Logger
}

func NewDashboard(topics TopicSource, logger *infra.Logger) *Dashboard {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Dashboard{topics: topics, logger: logger}
}

// Snapshot returns the static dashboard content.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	return DashboardSnapshot{
		Title:    "Welcome to CreatorStudio Pro",
		Subtitle: "The ultimate AI-powered suite for YouTube creators. Generate scripts, visualize ideas, edit images, and create cinematic videos in one place.",
		Cards:    append([]Card(nil), dashboardCards...),
	}
}

// WithInspiration returns the dashboard plus freshly fetched topics. A feed
// failure is reported in the snapshot rather than as an error.
func (d *Dashboard) WithInspiration(ctx context.Context, limit int) DashboardSnapshot {
	snap := d.Snapshot()
	if d.topics == nil || !d.topics.Enabled() {
		return snap
	}
	topics, err := d.topics.Topics(ctx, limit)
	if err != nil {
		d.logger.Warn().Err(err).Msg("views: inspiration unavailable")
		snap.TopicsError = "Topic inspiration is unavailable right now."
		return snap
	}
	snap.Topics = topics
	return snap
}
