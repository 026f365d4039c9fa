package tui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"creatorstudio/internal/media"
	"creatorstudio/internal/shell"
	"creatorstudio/internal/studio"
	"creatorstudio/internal/views"
)

// checkKey creates a command that refreshes the credential presence flag.
func checkKey(ctx context.Context, sh *shell.Shell) tea.Cmd {
	return func() tea.Msg {
		return keyCheckedMsg{HasKey: sh.CheckKey(ctx)}
	}
}

// selectKey creates a command that runs the key selection flow.
func selectKey(ctx context.Context, sh *shell.Shell, key string) tea.Cmd {
	return func() tea.Msg {
		return keySelectedMsg{Err: sh.SelectKey(ctx, key)}
	}
}

// waitFor creates a command that blocks until the view's request settles.
func waitFor(ctx context.Context, sh *shell.Shell, kind views.Kind) tea.Cmd {
	return func() tea.Msg {
		set := sh.Views()
		switch kind {
		case views.KindScriptWriter:
			_, _ = set.Script.Wait(ctx)
		case views.KindImageStudio:
			_, _ = set.Image.Wait(ctx)
		case views.KindVideoGenerator:
			_, _ = set.Video.Wait(ctx)
		}
		return settledMsg{View: kind}
	}
}

func loadInspiration(ctx context.Context, sh *shell.Shell, limit int) tea.Cmd {
	return func() tea.Msg {
		return topicsMsg{Dashboard: sh.Views().Dashboard.WithInspiration(ctx, limit)}
	}
}

// saveImage writes a generated image from its data URI into dir.
func saveImage(res studio.ImageResource, dir string) tea.Cmd {
	return func() tea.Msg {
		_, payload, ok := strings.Cut(res.DataURI, ";base64,")
		if !ok {
			return savedMsg{Err: errors.New("unexpected image data")}
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return savedMsg{Err: fmt.Errorf("decode image: %w", err)}
		}
		path := filepath.Join(dir, res.Filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Path: path}
	}
}

// saveVideo copies a stored video into dir.
func saveVideo(ctx context.Context, store media.Store, res studio.VideoResource, dir string) tea.Cmd {
	return func() tea.Msg {
		_, body, err := store.Open(ctx, res.Handle)
		if err != nil {
			return savedMsg{Err: err}
		}
		defer body.Close()
		path := filepath.Join(dir, res.Filename)
		out, err := os.Create(path)
		if err != nil {
			return savedMsg{Err: err}
		}
		if _, err := io.Copy(out, body); err != nil {
			_ = out.Close()
			return savedMsg{Err: err}
		}
		if err := out.Close(); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Path: path}
	}
}

func readUpload(path string) (*views.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	upload := views.NewUpload(filepath.Base(path), "", data)
	if !strings.HasPrefix(upload.MIMEType, "image/") {
		return nil, fmt.Errorf("%s is not an image", filepath.Base(path))
	}
	return upload, nil
}
