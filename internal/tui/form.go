package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/views"
)

type fieldKind int

const (
	textField fieldKind = iota
	choiceField
)

type field struct {
	name     string
	label    string
	kind     fieldKind
	input    textinput.Model
	choices  []string
	selected int
}

func newTextField(name, label, placeholder string) *field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 2000
	in.Width = 60
	return &field{name: name, label: label, kind: textField, input: in}
}

func newChoiceField(name, label string, choices []string) *field {
	return &field{name: name, label: label, kind: choiceField, choices: choices}
}

func (f *field) value() string {
	if f.kind == choiceField {
		if len(f.choices) == 0 {
			return ""
		}
		return f.choices[f.selected]
	}
	return f.input.Value()
}

func (f *field) cycle(delta int) {
	if f.kind != choiceField || len(f.choices) == 0 {
		return
	}
	f.selected = (f.selected + delta + len(f.choices)) % len(f.choices)
}

// form is an ordered set of fields with a single focused entry.
type form struct {
	fields []*field
	focus  int
}

func newForm(fields ...*field) *form {
	f := &form{fields: fields}
	f.setFocus(0)
	return f
}

func (f *form) focused() *field {
	return f.fields[f.focus]
}

func (f *form) setFocus(i int) {
	n := len(f.fields)
	f.focus = (i%n + n) % n
	for idx, fd := range f.fields {
		if fd.kind != textField {
			continue
		}
		if idx == f.focus {
			fd.input.Focus()
		} else {
			fd.input.Blur()
		}
	}
}

func (f *form) get(name string) string {
	for _, fd := range f.fields {
		if fd.name == name {
			return strings.TrimSpace(fd.value())
		}
	}
	return ""
}

func (f *form) set(name, value string) {
	for _, fd := range f.fields {
		if fd.name == name && fd.kind == textField {
			fd.input.SetValue(value)
		}
	}
}

// update routes a key to the focused text input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	fd := f.focused()
	if fd.kind != textField {
		return nil
	}
	var cmd tea.Cmd
	fd.input, cmd = fd.input.Update(msg)
	return cmd
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func newForms(tones []string) map[views.Kind]*form {
	return map[views.Kind]*form{
		views.KindScriptWriter: newForm(
			newTextField("topic", "Video Topic", "e.g. Top 10 AI Tools for 2025"),
			newChoiceField("tone", "Tone", tones),
			newTextField("language", "Language", "en"),
		),
		views.KindImageStudio: newForm(
			newChoiceField("mode", "Mode", []string{string(views.ImageModeGenerate), string(views.ImageModeEdit)}),
			newTextField("prompt", "Prompt", "Describe the image or the edit"),
			newChoiceField("aspect_ratio", "Aspect Ratio", stringsOf(image.AspectRatios)),
			newChoiceField("resolution", "Resolution", stringsOf(image.Resolutions)),
			newTextField("file", "Source Image", "path/to/image.png (edit mode)"),
		),
		views.KindVideoGenerator: newForm(
			newChoiceField("mode", "Mode", []string{string(views.VideoModeText), string(views.VideoModeImage)}),
			newTextField("prompt", "Prompt", "Describe the scene"),
			newChoiceField("aspect_ratio", "Aspect Ratio", stringsOf(video.AspectRatios)),
			newTextField("file", "Start Frame", "path/to/frame.png (image mode)"),
		),
	}
}
