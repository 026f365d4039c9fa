package studio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/media"
	"creatorstudio/internal/providers/genai"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/script"
	"creatorstudio/internal/providers/video"
)

type fakeWriter struct {
	calls atomic.Int32
	text  string
	err   error
}

func (f *fakeWriter) Generate(ctx context.Context, req script.Request) (string, error) {
	f.calls.Add(1)
	return f.text, f.err
}

type fakeImages struct {
	calls atomic.Int32
}

func (f *fakeImages) Generate(ctx context.Context, req image.GenerateRequest) (*image.Asset, error) {
	f.calls.Add(1)
	return &image.Asset{MIMEType: "image/png", Data: "R0VO"}, nil
}

func (f *fakeImages) Edit(ctx context.Context, req image.EditRequest) (*image.Asset, error) {
	f.calls.Add(1)
	return nil, image.ErrNoEditedImageData
}

type fakeVideos struct {
	calls atomic.Int32
}

func (f *fakeVideos) Generate(ctx context.Context, req video.GenerateRequest) (*video.Asset, error) {
	f.calls.Add(1)
	return &video.Asset{Data: []byte("mp4:" + req.Prompt), MIMEType: "video/mp4"}, nil
}

func (f *fakeVideos) GenerateFromImage(ctx context.Context, req video.ImageRequest) (*video.Asset, error) {
	f.calls.Add(1)
	return nil, video.ErrNoVideoFromImage
}

func newService(t *testing.T) (*Service, *fakeWriter, *fakeImages, *fakeVideos, media.Store) {
	t.Helper()
	writer := &fakeWriter{text: "# Script"}
	images := &fakeImages{}
	videos := &fakeVideos{}
	store := media.NewMemoryStore()
	svc, err := NewService(Options{Scripts: writer, Images: images, Videos: videos, Media: store})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, writer, images, videos, store
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(Options{}); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

func TestGenerateImageReturnsDataURI(t *testing.T) {
	svc, _, _, _, _ := newService(t)
	res, err := svc.GenerateImage(context.Background(), image.GenerateRequest{Prompt: "cat"})
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if res.DataURI != "data:image/png;base64,R0VO" {
		t.Fatalf("DataURI = %q", res.DataURI)
	}
	if !strings.HasPrefix(res.Filename, "generated-image-") || !strings.HasSuffix(res.Filename, ".png") {
		t.Fatalf("Filename = %q", res.Filename)
	}
}

func TestGenerateVideoStoresHandle(t *testing.T) {
	svc, _, _, _, store := newService(t)
	res, err := svc.GenerateVideo(context.Background(), video.GenerateRequest{Prompt: "waves"})
	if err != nil {
		t.Fatalf("GenerateVideo returned error: %v", err)
	}
	if res.URL != "/v1/media/"+res.Handle {
		t.Fatalf("URL = %q", res.URL)
	}
	_, rc, err := store.Open(context.Background(), res.Handle)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "mp4:waves" {
		t.Fatalf("stored data = %q", data)
	}
}

func TestIdenticalRequestsAreNotCached(t *testing.T) {
	svc, writer, _, videos, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.GenerateScript(ctx, script.Request{Topic: "same", Tone: "same"}); err != nil {
			t.Fatalf("GenerateScript returned error: %v", err)
		}
	}
	if writer.calls.Load() != 2 {
		t.Fatalf("script calls = %d, want 2", writer.calls.Load())
	}

	a, err := svc.GenerateVideo(ctx, video.GenerateRequest{Prompt: "same"})
	if err != nil {
		t.Fatalf("GenerateVideo returned error: %v", err)
	}
	b, err := svc.GenerateVideo(ctx, video.GenerateRequest{Prompt: "same"})
	if err != nil {
		t.Fatalf("GenerateVideo returned error: %v", err)
	}
	if videos.calls.Load() != 2 || a.Handle == b.Handle {
		t.Fatalf("expected two provider calls and distinct handles, got %d calls, %q vs %q", videos.calls.Load(), a.Handle, b.Handle)
	}
}

func TestAdapterErrorsPassThrough(t *testing.T) {
	svc, _, _, _, _ := newService(t)
	if _, err := svc.EditImage(context.Background(), image.EditRequest{}); !errors.Is(err, image.ErrNoEditedImageData) {
		t.Fatalf("expected edit sentinel, got %v", err)
	}
	if _, err := svc.GenerateVideoFromImage(context.Background(), video.ImageRequest{}); !errors.Is(err, video.ErrNoVideoFromImage) {
		t.Fatalf("expected image video sentinel, got %v", err)
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "script", err: script.ErrNoText, want: "Failed to generate script."},
		{name: "image", err: fmt.Errorf("wrap: %w", image.ErrNoImageData), want: "No image data found in response"},
		{name: "edited image", err: image.ErrNoEditedImageData, want: "No edited image data found in response"},
		{name: "video", err: video.ErrNoVideo, want: "Video generation failed or no URI returned."},
		{name: "video from image", err: video.ErrNoVideoFromImage, want: "Video generation failed."},
		{name: "download", err: fmt.Errorf("%w: %w", video.ErrDownloadFailed, &genai.DownloadError{Status: 500}), want: "Failed to download generated video."},
		{name: "no key", err: credentials.ErrNoKey, want: MessageKeyRequired},
		{name: "operation", err: &video.OperationError{Code: 3, Message: "prompt rejected"}, want: "prompt rejected"},
		{name: "api", err: fmt.Errorf("generate image: %w", &genai.APIError{Status: 429, Message: "quota exceeded"}), want: "quota exceeded"},
		{name: "api without message", err: &genai.APIError{Status: 500}, want: "Operation failed"},
		{name: "other", err: errors.New("boom"), want: "Operation failed"},
		{name: "deadline", err: fmt.Errorf("poll: %w", context.DeadlineExceeded), want: MessageTimedOut},
		{
			name: "transport hides url",
			err:  &url.Error{Op: "Get", URL: "https://files.example/v.mp4?key=secret", Err: errors.New("dial tcp: connection refused")},
			want: "dial tcp: connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayMessage(tt.err); got != tt.want {
				t.Fatalf("DisplayMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayMessageForUsesFallback(t *testing.T) {
	if got := DisplayMessageFor(errors.New("boom"), MessageVideoFailed); got != "Video generation failed" {
		t.Fatalf("fallback = %q", got)
	}
	if got := DisplayMessageFor(video.ErrNoVideo, MessageVideoFailed); got != MessageNoVideo {
		t.Fatalf("known error = %q", got)
	}
}
