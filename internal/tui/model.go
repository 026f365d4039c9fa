// Package tui renders the studio shell in a terminal with bubbletea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/media"
	"creatorstudio/internal/shell"
	"creatorstudio/internal/views"
)

const defaultTopicLimit = 6

type Options struct {
	Shell *shell.Shell
	Media media.Store
	Tones []string
	// OutputDir receives generated images and videos. Empty means the
	// working directory.
	OutputDir string
}

// Model is the terminal client state. The shell owns the view state; the
// model only keeps the editable inputs and transient UI bits.
type Model struct {
	ctx    context.Context
	shell  *shell.Shell
	media  media.Store
	outDir string

	forms    map[views.Kind]*form
	keyInput textinput.Model
	spinner  spinner.Model

	dashboard   views.DashboardSnapshot
	topicCursor int

	status string
	err    error
	width  int
}

// New creates the model. ctx bounds key checks and waits run by commands.
func New(ctx context.Context, opts Options) Model {
	tones := opts.Tones
	if len(tones) == 0 {
		tones = infra.DefaultTones
	}
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}

	key := textinput.New()
	key.Placeholder = "Gemini API key"
	key.EchoMode = textinput.EchoPassword
	key.Prompt = "> "
	key.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = FocusStyle

	return Model{
		ctx:       ctx,
		shell:     opts.Shell,
		media:     opts.Media,
		outDir:    outDir,
		forms:     newForms(tones),
		keyInput:  key,
		spinner:   spin,
		dashboard: opts.Shell.Views().Dashboard.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(checkKey(m.ctx, m.shell), m.spinner.Tick)
}
