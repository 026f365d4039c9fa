package image

import (
	"context"
	"encoding/base64"
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

func newGenerator(t *testing.T, fn roundTripFunc) *GeminiGenerator {
	t.Helper()
	client, err := genai.NewClient(genai.Options{
		Keys:       genai.StaticKey("k"),
		HTTPClient: &http.Client{Transport: fn},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	gen, err := NewGeminiGenerator(GeminiOptions{Client: client})
	if err != nil {
		t.Fatalf("NewGeminiGenerator returned error: %v", err)
	}
	return gen
}

func TestGenerateSendsImageConfig(t *testing.T) {
	gen := newGenerator(t, func(r *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-3-pro-image-preview:generateContent") {
			t.Fatalf("path = %s", r.URL.Path)
		}
		var body genai.GenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		cfg := body.GenerationConfig.ImageConfig
		if cfg.AspectRatio != "16:9" || cfg.ImageSize != "2K" {
			t.Fatalf("image config = %#v", cfg)
		}
		return okJSON(`{"candidates":[{"content":{"parts":[{"text":"here you go"},{"inlineData":{"mimeType":"image/png","data":"QUJD"}},{"inlineData":{"mimeType":"image/png","data":"WFla"}}]}}]}`), nil
	})

	asset, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "a cat", AspectRatio: AspectLandscape, Resolution: Resolution2K})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got := asset.DataURI(); got != "data:image/png;base64,QUJD" {
		t.Fatalf("DataURI() = %q", got)
	}
}

func TestGenerateWithoutInlineData(t *testing.T) {
	gen := newGenerator(t, func(r *http.Request) (*http.Response, error) {
		return okJSON(`{"candidates":[{"content":{"parts":[{"text":"sorry, I can't draw that"}]}}]}`), nil
	})
	if _, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "x"}); !errors.Is(err, ErrNoImageData) {
		t.Fatalf("expected ErrNoImageData, got %v", err)
	}
}

func TestEditSendsSourceBeforeInstruction(t *testing.T) {
	source := []byte{0x89, 'P', 'N', 'G'}
	gen := newGenerator(t, func(r *http.Request) (*http.Response, error) {
		var body genai.GenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		parts := body.Contents[0].Parts
		if len(parts) != 2 {
			t.Fatalf("parts = %#v", parts)
		}
		if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/png" {
			t.Fatalf("first part should be the source image: %#v", parts[0])
		}
		if parts[0].InlineData.Data != base64.StdEncoding.EncodeToString(source) {
			t.Fatalf("unexpected payload %q", parts[0].InlineData.Data)
		}
		if parts[1].Text != "add a retro filter" {
			t.Fatalf("second part = %#v", parts[1])
		}
		if body.GenerationConfig != nil {
			t.Fatalf("edit should not send generation config")
		}
		return okJSON(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"RURJVA=="}}]}}]}`), nil
	})

	asset, err := gen.Edit(context.Background(), EditRequest{Source: source, Prompt: "add a retro filter"})
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}
	if asset.Data != "RURJVA==" {
		t.Fatalf("Data = %q", asset.Data)
	}
}

func TestEditWithoutInlineData(t *testing.T) {
	gen := newGenerator(t, func(r *http.Request) (*http.Response, error) {
		return okJSON(`{"candidates":[]}`), nil
	})
	_, err := gen.Edit(context.Background(), EditRequest{Source: []byte("x"), MIMEType: "image/jpeg", Prompt: "y"})
	if !errors.Is(err, ErrNoEditedImageData) || !errors.Is(err, ErrNoImageData) {
		t.Fatalf("expected edited image sentinel, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		aspect, resolution string
		wantAspect         AspectRatio
		wantResolution     Resolution
	}{
		{"", "", AspectSquare, Resolution1K},
		{"9:16", "4k", AspectPortrait, Resolution4K},
		{" 16:9 ", "2K", AspectLandscape, Resolution2K},
		{"4:3", "8K", AspectSquare, Resolution1K},
	}
	for _, tt := range tests {
		if got := NormalizeAspectRatio(tt.aspect); got != tt.wantAspect {
			t.Fatalf("NormalizeAspectRatio(%q) = %q", tt.aspect, got)
		}
		if got := NormalizeResolution(tt.resolution); got != tt.wantResolution {
			t.Fatalf("NormalizeResolution(%q) = %q", tt.resolution, got)
		}
	}
}
