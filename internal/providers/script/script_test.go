package script

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"creatorstudio/internal/providers/genai"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func okJSON(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newGeminiWriter(t *testing.T, fn roundTripFunc) *GeminiWriter {
	t.Helper()
	client, err := genai.NewClient(genai.Options{
		Keys:       genai.StaticKey("k"),
		HTTPClient: &http.Client{Transport: fn},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	writer, err := NewGeminiWriter(GeminiOptions{Client: client})
	if err != nil {
		t.Fatalf("NewGeminiWriter returned error: %v", err)
	}
	return writer
}

func TestBuildPromptEmbedsTopicAndTone(t *testing.T) {
	prompt := BuildPrompt(Request{Topic: "Top 10 AI Tools for 2025", Tone: "Funny & Sarcastic"})

	for _, want := range []string{
		`about "Top 10 AI Tools for 2025".`,
		"The tone should be Funny & Sarcastic.",
		"Call to Action (Subscribe/Like)",
		"Format the output in Markdown.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Write the script in") {
		t.Fatalf("unexpected language clause:\n%s", prompt)
	}
}

func TestBuildPromptLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     string
	}{
		{name: "english omitted", language: "en-GB", want: ""},
		{name: "indonesian", language: "id", want: "Write the script in Indonesian."},
		{name: "spanish", language: "es", want: "Write the script in Spanish."},
		{name: "free text", language: "Klingon!!", want: "Write the script in Klingon!!."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(Request{Topic: "x", Language: tt.language})
			if tt.want == "" {
				if strings.Contains(prompt, "Write the script in") {
					t.Fatalf("unexpected language clause:\n%s", prompt)
				}
				return
			}
			if !strings.HasSuffix(prompt, tt.want) {
				t.Fatalf("prompt = %q, want suffix %q", prompt, tt.want)
			}
		})
	}
}

func TestBuildPromptDefaultsTone(t *testing.T) {
	if !strings.Contains(BuildPrompt(Request{Topic: "x"}), "The tone should be Energetic & Engaging.") {
		t.Fatal("expected default tone")
	}
}

func TestGeminiWriterReturnsTextUnmodified(t *testing.T) {
	const script = "# Hook\n\nDid you know...?\n"
	calls := 0
	writer := newGeminiWriter(t, func(r *http.Request) (*http.Response, error) {
		calls++
		var body genai.GenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Contents) != 1 || len(body.Contents[0].Parts) != 1 {
			t.Fatalf("expected single instruction, got %#v", body.Contents)
		}
		if !strings.Contains(body.Contents[0].Parts[0].Text, "Top 10 AI Tools for 2025") {
			t.Fatalf("topic missing from prompt")
		}
		if body.GenerationConfig.ThinkingConfig.ThinkingBudget != 2048 {
			t.Fatalf("thinking budget = %d", body.GenerationConfig.ThinkingConfig.ThinkingBudget)
		}
		raw, _ := json.Marshal(map[string]any{
			"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": script}}}}},
		})
		return okJSON(string(raw)), nil
	})

	got, err := writer.Generate(context.Background(), Request{Topic: "Top 10 AI Tools for 2025", Tone: "Funny & Sarcastic"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != script {
		t.Fatalf("Generate = %q, want %q", got, script)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestGeminiWriterEmptyText(t *testing.T) {
	writer := newGeminiWriter(t, func(r *http.Request) (*http.Response, error) {
		return okJSON(`{"candidates":[{"content":{"parts":[]}}]}`), nil
	})
	if _, err := writer.Generate(context.Background(), Request{Topic: "x"}); !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestGeminiWriterProviderError(t *testing.T) {
	writer := newGeminiWriter(t, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"bad topic"}}`)),
		}, nil
	})
	_, err := writer.Generate(context.Background(), Request{Topic: "x"})
	var apiErr *genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "bad topic" {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestCohereWriter(t *testing.T) {
	writer, err := NewCohereWriter(CohereOptions{
		APIKey: "co-key",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if got := r.Header.Get("Authorization"); got != "Bearer co-key" {
				t.Fatalf("Authorization = %q", got)
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if msg, _ := body["message"].(string); !strings.Contains(msg, "Calm & Relaxing") {
				t.Fatalf("message = %q", msg)
			}
			return okJSON(`{"text":"## Intro","generation_id":"g1"}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewCohereWriter returned error: %v", err)
	}

	got, err := writer.Generate(context.Background(), Request{Topic: "tea", Tone: "Calm & Relaxing"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "## Intro" {
		t.Fatalf("Generate = %q", got)
	}
}

func TestNewCohereWriterRequiresKey(t *testing.T) {
	if _, err := NewCohereWriter(CohereOptions{}); err == nil {
		t.Fatal("expected error without key")
	}
}
