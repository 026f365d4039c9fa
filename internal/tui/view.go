package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"creatorstudio/internal/shell"
	"creatorstudio/internal/views"
)

const scriptPreviewLines = 40

// View implements tea.Model.
func (m Model) View() string {
	snap := m.shell.Snapshot()

	var main string
	switch {
	case snap.Checking:
		main = m.spinner.View() + " Checking API key..."
	case snap.KeyModal != nil:
		main = m.renderKeyModal(snap.KeyModal)
	default:
		main = m.renderView(snap)
	}

	var footer strings.Builder
	if m.err != nil {
		footer.WriteString(ErrorStyle.Render(m.err.Error()))
		footer.WriteString("\n")
	} else if m.status != "" {
		footer.WriteString(StatusStyle.Render(m.status))
		footer.WriteString("\n")
	}
	footer.WriteString(HelpStyle.Render(m.help(snap)))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(snap.Sidebar),
		MainStyle.Render(main+"\n\n"+footer.String()),
	)
	return body + "\n"
}

func (m Model) renderSidebar(items []shell.SidebarItem) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("CreatorStudio Pro"))
	b.WriteString("\n")
	for _, item := range items {
		if item.Active {
			b.WriteString(ActiveItemStyle.Render(item.Label))
		} else {
			b.WriteString(ItemStyle.Render(item.Label))
		}
		b.WriteString("\n")
	}
	return SidebarStyle.Render(b.String())
}

func (m Model) renderKeyModal(modal *shell.KeyModal) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(modal.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(56).Render(modal.Body))
	b.WriteString("\n\n")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Enter: " + modal.Action))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Learn more: " + modal.LearnMoreURL))
	return BoxStyle.Render(b.String())
}

func (m Model) renderView(snap shell.Snapshot) string {
	switch snap.View {
	case views.KindScriptWriter:
		v := snap.Views.Script
		return m.renderForm("Script Writer", views.KindScriptWriter, v.Task.Pending(), v.TriggerLabel, v.LoadingText, "",
			v.Task.Error, scriptResult(v.Task.Result))
	case views.KindImageStudio:
		v := snap.Views.Image
		result := ""
		if r := v.Task.Result; r != nil {
			result = "Image ready: " + r.Filename
		}
		return m.renderForm("Image Studio", views.KindImageStudio, v.Task.Pending(), v.TriggerLabel, v.LoadingText, "",
			v.Task.Error, result)
	case views.KindVideoGenerator:
		v := snap.Views.Video
		result := ""
		if r := v.Task.Result; r != nil {
			result = fmt.Sprintf("Video ready: %s (%d bytes)", r.Filename, r.Size)
		}
		return m.renderForm("Veo Generator", views.KindVideoGenerator, v.Task.Pending(), v.TriggerLabel, v.LoadingText, v.LoadingSub,
			v.Task.Error, result)
	default:
		return m.renderDashboard()
	}
}

func (m Model) renderDashboard() string {
	d := m.dashboard
	var b strings.Builder
	b.WriteString(TitleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(64).Render(d.Subtitle))
	b.WriteString("\n\n")
	for i, card := range d.Cards {
		b.WriteString(FocusStyle.Render(fmt.Sprintf("[%d] %s %s", i+1, card.Icon, card.Title)))
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("    " + card.Description))
		b.WriteString("\n")
	}
	if d.TopicsError != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(d.TopicsError))
	}
	if len(d.Topics) > 0 {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("Topic ideas"))
		b.WriteString("\n")
		for i, topic := range d.Topics {
			line := fmt.Sprintf("  %s (%s)", topic.Title, topic.Source)
			if i == m.topicCursor {
				line = FocusStyle.Render("> " + strings.TrimPrefix(line, "  "))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderForm(title string, kind views.Kind, pending bool, trigger, loading, loadingSub, errText, result string) string {
	f := m.forms[kind]
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	for i, fd := range f.fields {
		label := LabelStyle.Render(fd.label + ":")
		if i == f.focus {
			label = FocusStyle.Render(fd.label + ":")
		}
		b.WriteString(label)
		b.WriteString(" ")
		if fd.kind == choiceField {
			b.WriteString("< " + fd.value() + " >")
		} else {
			b.WriteString(fd.input.View())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if pending {
		b.WriteString(m.spinner.View() + " " + loading)
		if loadingSub != "" {
			b.WriteString("\n" + LabelStyle.Render(loadingSub))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(ActiveItemStyle.Render("Enter: " + trigger))
		b.WriteString("\n")
	}
	if errText != "" {
		b.WriteString("\n" + ErrorStyle.Render(errText) + "\n")
	}
	if result != "" {
		b.WriteString("\n" + BoxStyle.Render(result) + "\n")
	}
	return b.String()
}

func scriptResult(text *string) string {
	if text == nil {
		return ""
	}
	lines := strings.Split(*text, "\n")
	if len(lines) > scriptPreviewLines {
		lines = append(lines[:scriptPreviewLines], "...")
	}
	return strings.Join(lines, "\n")
}

func (m Model) help(snap shell.Snapshot) string {
	switch {
	case snap.Checking:
		return "ctrl+c: quit"
	case snap.KeyModal != nil:
		return "enter: select key • ctrl+c: quit"
	case snap.View == views.KindDashboard:
		return "1-3: open tool • i: topic ideas • ↑/↓ + enter: use topic • tab: next view • ctrl+c: quit"
	default:
		return "↑/↓: field • ←/→: option • enter: submit • tab: next view • esc: dashboard • ctrl+c: quit"
	}
}
