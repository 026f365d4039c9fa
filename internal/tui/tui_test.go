package tui

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/media"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/script"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/shell"
	"creatorstudio/internal/studio"
	"creatorstudio/internal/views"
)

type fakeAdapter struct {
	mu      sync.Mutex
	scripts []script.Request
	images  []image.GenerateRequest
}

func (f *fakeAdapter) GenerateScript(_ context.Context, req script.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts = append(f.scripts, req)
	return "# " + req.Topic, nil
}

func (f *fakeAdapter) GenerateImage(_ context.Context, req image.GenerateRequest) (*studio.ImageResource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, req)
	return &studio.ImageResource{
		DataURI:  "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes")),
		Filename: "generated-image-7.png",
	}, nil
}

func (f *fakeAdapter) EditImage(context.Context, image.EditRequest) (*studio.ImageResource, error) {
	return &studio.ImageResource{}, nil
}

func (f *fakeAdapter) GenerateVideo(context.Context, video.GenerateRequest) (*studio.VideoResource, error) {
	return &studio.VideoResource{}, nil
}

func (f *fakeAdapter) GenerateVideoFromImage(context.Context, video.ImageRequest) (*studio.VideoResource, error) {
	return &studio.VideoResource{}, nil
}

func newTestModel(t *testing.T, key string) (Model, *shell.Shell, *fakeAdapter) {
	t.Helper()
	ctx := context.Background()
	adapter := &fakeAdapter{}
	sh := shell.New(credentials.NewStore(key), views.NewSet(ctx, views.Options{Adapter: adapter}), nil)
	m := New(ctx, Options{Shell: sh, Media: media.NewMemoryStore(), OutputDir: t.TempDir()})
	m = send(t, m, checkKey(ctx, sh)())
	return m, sh, adapter
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyModalSelectsKey(t *testing.T) {
	m, sh, _ := newTestModel(t, "")
	require.Contains(t, m.View(), "API Key Required")

	m = send(t, m, keys("fresh-key"))
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	require.True(t, sh.HasKey())
	require.NotContains(t, m.View(), "API Key Required")
	require.NoError(t, m.err)
}

func TestTabCyclesViews(t *testing.T) {
	m, sh, _ := newTestModel(t, "key")
	require.Equal(t, views.KindDashboard, sh.View())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, views.KindScriptWriter, sh.View())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, views.KindDashboard, sh.View())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, views.KindVideoGenerator, sh.View())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, views.KindDashboard, sh.View())
	_ = send(t, m, keys("2"))
	require.Equal(t, views.KindImageStudio, sh.View())
}

func TestScriptSubmitRequiresTopic(t *testing.T) {
	m, _, adapter := newTestModel(t, "key")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.ErrorIs(t, m.err, errNotReady)
	require.Empty(t, adapter.scripts)
}

func TestScriptSubmitAndSettle(t *testing.T) {
	m, sh, adapter := newTestModel(t, "key")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, keys("Top 10 AI Tools for 2025"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	snap := sh.Views().Script.Snapshot()
	require.Equal(t, views.StatusSucceeded, snap.Task.Status)
	require.Equal(t, "# Top 10 AI Tools for 2025", *snap.Task.Result)
	require.Len(t, adapter.scripts, 1)
	require.Equal(t, "Professional & Educational", adapter.scripts[0].Tone)
	require.Contains(t, m.View(), "# Top 10 AI Tools for 2025")
}

func TestImageResultIsSaved(t *testing.T) {
	m, _, adapter := newTestModel(t, "key")
	m = send(t, m, keys("2"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, keys("neon fox"))

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, save := sendCmd(t, m, cmd())
	require.NotNil(t, save)
	m = send(t, m, save())

	require.Len(t, adapter.images, 1)
	require.Equal(t, "neon fox", adapter.images[0].Prompt)
	path := filepath.Join(m.outDir, "generated-image-7.png")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
	require.Equal(t, "Saved to "+path, m.status)
}

func TestImageEditRejectsMissingFile(t *testing.T) {
	m, _, _ := newTestModel(t, "key")
	m = send(t, m, keys("2"))
	for range 4 {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, "file", m.forms[views.KindImageStudio].focused().name)
	m = send(t, m, keys("/does/not/exist.png"))

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Error(t, m.err)
}
