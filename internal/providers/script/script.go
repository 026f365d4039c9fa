package script

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"creatorstudio/internal/infra"
)

// ErrNoText is returned when the provider answers without any script text.
var ErrNoText = errors.New("script: provider returned no text")

// Request describes one script generation.
type Request struct {
	Topic    string
	Tone     string
	Language string
}

// Writer produces a markdown script for a request.
type Writer interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// BuildPrompt renders the single instruction sent to the model. Topic and tone
// are embedded verbatim.
func BuildPrompt(req Request) string {
	tone := strings.TrimSpace(req.Tone)
	if tone == "" {
		tone = infra.DefaultTones[0]
	}
	lines := []string{
		fmt.Sprintf("Write a professional YouTube video script about \"%s\".", req.Topic),
		fmt.Sprintf("The tone should be %s.", tone),
		"Include a Hook, Intro, Main Content Points, and a Call to Action (Subscribe/Like).",
		"Format the output in Markdown.",
	}
	if name := languageName(req.Language); name != "" {
		lines = append(lines, fmt.Sprintf("Write the script in %s.", name))
	}
	return strings.Join(lines, "\n")
}

// languageName returns the English display name of a non-English language tag.
func languageName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return raw
	}
	if base, _ := tag.Base(); base.String() == "en" {
		return ""
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return raw
}
