package views

import (
	"context"
	"strings"
	"sync"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/providers/script"
	"creatorstudio/internal/studio"
)

const (
	scriptLoadingText  = "Crafting your script..."
	scriptPendingLabel = "Thinking..."
	scriptIdleLabel    = "Generate Script"
)

// ScriptForm holds the script writer inputs.
type ScriptForm struct {
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Language string `json:"language,omitempty"`
}

// ScriptWriterSnapshot is the render state of the script writer.
type ScriptWriterSnapshot struct {
	Form         ScriptForm           `json:"form"`
	Tones        []string             `json:"tones"`
	CanSubmit    bool                 `json:"can_submit"`
	TriggerLabel string               `json:"trigger_label"`
	LoadingText  string               `json:"loading_text,omitempty"`
	Task         TaskSnapshot[string] `json:"task"`
}

// ScriptWriter turns a topic and tone into a markdown script.
type ScriptWriter struct {
	adapter studio.Adapter
	tones   []string
	task    *Task[string]

	mu   sync.Mutex
	form ScriptForm
}

func NewScriptWriter(base context.Context, adapter studio.Adapter, tones []string, logger *infra.Logger) *ScriptWriter {
	if len(tones) == 0 {
		tones = infra.DefaultTones
	}
	return &ScriptWriter{
		adapter: adapter,
		tones:   append([]string(nil), tones...),
		task:    NewTask[string](base, "script", logger).withFallback(studio.MessageScriptFailed),
		form:    ScriptForm{Tone: tones[0]},
	}
}

// Update replaces the form. A blank tone keeps the default.
func (v *ScriptWriter) Update(form ScriptForm) {
	if strings.TrimSpace(form.Tone) == "" {
		form.Tone = v.tones[0]
	}
	v.mu.Lock()
	v.form = form
	v.mu.Unlock()
}

// SetTopic changes only the topic.
func (v *ScriptWriter) SetTopic(topic string) {
	v.mu.Lock()
	v.form.Topic = topic
	v.mu.Unlock()
}

func (v *ScriptWriter) CanSubmit() bool {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	return strings.TrimSpace(form.Topic) != "" && !v.task.Pending()
}

// Submit starts a generation for the current form.
func (v *ScriptWriter) Submit() error {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	if strings.TrimSpace(form.Topic) == "" {
		return ErrNotReady
	}
	return v.task.Start(func(ctx context.Context) (string, error) {
		return v.adapter.GenerateScript(ctx, script.Request{
			Topic:    form.Topic,
			Tone:     form.Tone,
			Language: form.Language,
		})
	})
}

// Wait blocks until the in-flight request settles.
func (v *ScriptWriter) Wait(ctx context.Context) (TaskSnapshot[string], error) {
	return v.task.Wait(ctx)
}

func (v *ScriptWriter) Snapshot() ScriptWriterSnapshot {
	v.mu.Lock()
	form := v.form
	v.mu.Unlock()
	task := v.task.Snapshot()

	snap := ScriptWriterSnapshot{
		Form:         form,
		Tones:        append([]string(nil), v.tones...),
		CanSubmit:    strings.TrimSpace(form.Topic) != "" && !task.Pending(),
		TriggerLabel: scriptIdleLabel,
		Task:         task,
	}
	if task.Pending() {
		snap.TriggerLabel = scriptPendingLabel
		snap.LoadingText = scriptLoadingText
	}
	return snap
}
