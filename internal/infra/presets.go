package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTones lists the script tones offered by the script writer. The first
// entry is the default selection.
var DefaultTones = []string{
	"Energetic & Engaging",
	"Professional & Educational",
	"Funny & Sarcastic",
	"Dramatic & Storytelling",
	"Calm & Relaxing",
}

// Presets carries optional studio overrides read from a YAML file.
type Presets struct {
	Tones               []string     `yaml:"tones"`
	Models              PresetModels `yaml:"models"`
	PollIntervalSeconds int          `yaml:"poll_interval_seconds"`
	InspirationFeeds    []string     `yaml:"inspiration_feeds"`
}

// PresetModels overrides the provider model identifiers.
type PresetModels struct {
	Script         string `yaml:"script"`
	Image          string `yaml:"image"`
	Video          string `yaml:"video"`
	VideoFromImage string `yaml:"video_from_image"`
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() *Presets {
	return &Presets{Tones: append([]string(nil), DefaultTones...)}
}

// LoadPresets reads presets from path. An empty path yields the defaults.
func LoadPresets(path string) (*Presets, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultPresets(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes YAML presets and fills missing tones with the defaults.
func ParsePresets(data []byte) (*Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	tones := make([]string, 0, len(p.Tones))
	for _, tone := range p.Tones {
		if tone = strings.TrimSpace(tone); tone != "" {
			tones = append(tones, tone)
		}
	}
	if len(tones) == 0 {
		tones = append(tones, DefaultTones...)
	}
	p.Tones = tones
	if p.PollIntervalSeconds < 0 {
		return nil, fmt.Errorf("poll_interval_seconds must not be negative")
	}
	return &p, nil
}

// DefaultTone returns the first configured tone.
func (p *Presets) DefaultTone() string {
	if p == nil || len(p.Tones) == 0 {
		return DefaultTones[0]
	}
	return p.Tones[0]
}
