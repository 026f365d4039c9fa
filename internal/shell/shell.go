package shell

import (
	"context"
	"errors"
	"strings"
	"sync"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/views"
)

// KeyModal is the blocking prompt shown while no API key is selected.
type KeyModal struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	Action       string `json:"action"`
	LearnMoreURL string `json:"learn_more_url"`
}

var keyModal = KeyModal{
	Title:        "API Key Required",
	Body:         "To use professional features like Veo Video Generation and High-Res Image Editing, you must select a valid Gemini API key associated with a billing-enabled Google Cloud Project.",
	Action:       "Select API Key",
	LearnMoreURL: "https://ai.google.dev/gemini-api/docs/billing",
}

// Snapshot is the full render state of a shell.
type Snapshot struct {
	View     views.Kind    `json:"view"`
	HasKey   bool          `json:"has_key"`
	Checking bool          `json:"checking"`
	KeyModal *KeyModal     `json:"key_modal,omitempty"`
	Sidebar  []SidebarItem `json:"sidebar"`
	Views    ViewSnapshots `json:"views"`
}

// SidebarItem is one navigation entry.
type SidebarItem struct {
	View   views.Kind `json:"view"`
	Label  string     `json:"label"`
	Active bool       `json:"active"`
}

// ViewSnapshots groups the render state of every view.
type ViewSnapshots struct {
	Dashboard views.DashboardSnapshot      `json:"dashboard"`
	Script    views.ScriptWriterSnapshot   `json:"script_writer"`
	Image     views.ImageStudioSnapshot    `json:"image_studio"`
	Video     views.VideoGeneratorSnapshot `json:"video_generator"`
}

// Shell owns the active view and the credential presence flag. Views keep
// running their requests regardless of which one is active.
type Shell struct {
	bridge credentials.Bridge
	views  *views.Set
	logger *infra.Logger

	mu       sync.RWMutex
	view     views.Kind
	hasKey   bool
	checking bool
}

// New returns a shell on the dashboard. It reports checking until the first
// CheckKey completes.
func New(bridge credentials.Bridge, set *views.Set, logger *infra.Logger) *Shell {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Shell{
		bridge:   bridge,
		views:    set,
		logger:   logger,
		view:     views.KindDashboard,
		checking: true,
	}
}

// Views exposes the views owned by the shell.
func (s *Shell) Views() *views.Set {
	return s.views
}

// CheckKey refreshes the credential presence flag. Bridge failures count as no key.
func (s *Shell) CheckKey(ctx context.Context) bool {
	s.mu.Lock()
	s.checking = true
	s.mu.Unlock()

	has, err := s.bridge.HasSelectedAPIKey(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("shell: error checking API key status")
		has = false
	}

	s.mu.Lock()
	s.hasKey = has
	s.checking = false
	s.mu.Unlock()
	return has
}

// SelectKey runs the selection flow and re-checks presence afterwards.
func (s *Shell) SelectKey(ctx context.Context, key string) error {
	if err := s.bridge.SelectAPIKey(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("shell: failed to select key")
		return err
	}
	if !s.CheckKey(ctx) {
		return credentials.ErrNoKey
	}
	return nil
}

// Navigate switches the active view.
func (s *Shell) Navigate(kind views.Kind) error {
	kind, err := views.ParseKind(string(kind))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.view = kind
	s.mu.Unlock()
	return nil
}

// UseTopic prefills the script writer with topic and opens it.
func (s *Shell) UseTopic(topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("topic is required")
	}
	s.views.Script.SetTopic(topic)
	return s.Navigate(views.KindScriptWriter)
}

func (s *Shell) View() views.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Shell) HasKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasKey
}

func (s *Shell) Checking() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checking
}

// Snapshot copies the shell and view state for rendering.
func (s *Shell) Snapshot() Snapshot {
	s.mu.RLock()
	view, hasKey, checking := s.view, s.hasKey, s.checking
	s.mu.RUnlock()

	snap := Snapshot{
		View:     view,
		HasKey:   hasKey,
		Checking: checking,
		Views: ViewSnapshots{
			Dashboard: s.views.Dashboard.Snapshot(),
			Script:    s.views.Script.Snapshot(),
			Image:     s.views.Image.Snapshot(),
			Video:     s.views.Video.Snapshot(),
		},
	}
	if !hasKey && !checking {
		modal := keyModal
		snap.KeyModal = &modal
	}
	for _, kind := range views.Kinds {
		snap.Sidebar = append(snap.Sidebar, SidebarItem{View: kind, Label: kind.Label(), Active: kind == view})
	}
	return snap
}
