package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/views"
)

var errNotReady = errors.New("fill in the required fields first")

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case keyCheckedMsg:
		return m, nil
	case keySelectedMsg:
		return m.handleKeySelected(msg)
	case settledMsg:
		return m.handleSettled(msg)
	case savedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("save failed: %w", msg.Err)
			return m, nil
		}
		m.status = "Saved to " + msg.Path
		return m, nil
	case topicsMsg:
		m.dashboard = msg.Dashboard
		m.topicCursor = 0
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.shell.Checking() {
		return m, nil
	}
	if !m.shell.HasKey() {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case "tab":
		return m.navigate(1), nil
	case "shift+tab":
		return m.navigate(-1), nil
	case "esc":
		_ = m.shell.Navigate(views.KindDashboard)
		return m, nil
	}

	view := m.shell.View()
	if view == views.KindDashboard {
		return m.handleDashboardKey(msg)
	}
	return m.handleFormKey(view, msg)
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		key := strings.TrimSpace(m.keyInput.Value())
		if key == "" {
			m.err = errors.New("enter an API key")
			return m, nil
		}
		m.keyInput.Reset()
		return m, selectKey(m.ctx, m.shell, key)
	}
	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m Model) handleKeySelected(msg keySelectedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, credentials.ErrNoKey) {
			m.err = errors.New("no API key is selected")
		} else {
			m.err = msg.Err
		}
		return m, nil
	}
	m.err = nil
	m.status = "API key selected"
	return m, nil
}

func (m Model) navigate(delta int) Model {
	current := m.shell.View()
	idx := 0
	for i, kind := range views.Kinds {
		if kind == current {
			idx = i
		}
	}
	n := len(views.Kinds)
	_ = m.shell.Navigate(views.Kinds[(idx+delta+n)%n])
	m.err = nil
	return m
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3":
		card := m.dashboard.Cards[int(msg.Runes[0]-'1')]
		_ = m.shell.Navigate(card.View)
	case "i":
		m.status = "Fetching topic ideas..."
		return m, loadInspiration(m.ctx, m.shell, defaultTopicLimit)
	case "up", "k":
		if m.topicCursor > 0 {
			m.topicCursor--
		}
	case "down", "j":
		if m.topicCursor < len(m.dashboard.Topics)-1 {
			m.topicCursor++
		}
	case "enter":
		if len(m.dashboard.Topics) == 0 {
			return m, nil
		}
		topic := m.dashboard.Topics[m.topicCursor].Title
		if err := m.shell.UseTopic(topic); err != nil {
			m.err = err
			return m, nil
		}
		m.forms[views.KindScriptWriter].set("topic", topic)
		m.status = ""
	}
	return m, nil
}

func (m Model) handleFormKey(view views.Kind, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.forms[view]
	switch msg.String() {
	case "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "enter":
		return m.submit(view)
	case "left", "right":
		if fd := f.focused(); fd.kind == choiceField {
			if msg.String() == "left" {
				fd.cycle(-1)
			} else {
				fd.cycle(1)
			}
			return m, nil
		}
	}
	return m, f.update(msg)
}

func (m Model) submit(view views.Kind) (tea.Model, tea.Cmd) {
	f := m.forms[view]
	set := m.shell.Views()
	var err error
	switch view {
	case views.KindScriptWriter:
		set.Script.Update(views.ScriptForm{
			Topic:    f.get("topic"),
			Tone:     f.get("tone"),
			Language: f.get("language"),
		})
		err = set.Script.Submit()
	case views.KindImageStudio:
		mode, _ := views.ParseImageMode(f.get("mode"))
		upload, uerr := m.loadFile(f.get("file"))
		if uerr != nil {
			m.err = uerr
			return m, nil
		}
		if upload == nil {
			set.Image.ClearFile()
		}
		set.Image.Update(views.ImageForm{
			Mode:        mode,
			Prompt:      f.get("prompt"),
			AspectRatio: image.AspectRatio(f.get("aspect_ratio")),
			Resolution:  image.Resolution(f.get("resolution")),
			File:        upload,
		})
		err = set.Image.Submit()
	case views.KindVideoGenerator:
		mode, _ := views.ParseVideoMode(f.get("mode"))
		upload, uerr := m.loadFile(f.get("file"))
		if uerr != nil {
			m.err = uerr
			return m, nil
		}
		if upload == nil {
			set.Video.ClearFile()
		}
		set.Video.Update(views.VideoForm{
			Mode:        mode,
			Prompt:      f.get("prompt"),
			AspectRatio: video.AspectRatio(f.get("aspect_ratio")),
			File:        upload,
		})
		err = set.Video.Submit()
	default:
		return m, nil
	}
	if err != nil {
		if errors.Is(err, views.ErrNotReady) {
			err = errNotReady
		}
		m.err = err
		return m, nil
	}
	m.err = nil
	m.status = ""
	return m, waitFor(m.ctx, m.shell, view)
}

func (m Model) loadFile(path string) (*views.Upload, error) {
	if path == "" {
		return nil, nil
	}
	return readUpload(path)
}

func (m Model) handleSettled(msg settledMsg) (tea.Model, tea.Cmd) {
	set := m.shell.Views()
	switch msg.View {
	case views.KindImageStudio:
		if snap := set.Image.Snapshot().Task; snap.Result != nil {
			return m, saveImage(*snap.Result, m.outDir)
		}
	case views.KindVideoGenerator:
		if snap := set.Video.Snapshot().Task; snap.Result != nil && m.media != nil {
			return m, saveVideo(m.ctx, m.media, *snap.Result, m.outDir)
		}
	}
	return m, nil
}
