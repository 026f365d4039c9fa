// Package mcptools exposes the studio generators as MCP tools. Calls are
// synchronous: a video tool returns only once the render is downloaded.
package mcptools

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"creatorstudio/internal/infra"
	"creatorstudio/internal/providers/image"
	"creatorstudio/internal/providers/script"
	"creatorstudio/internal/providers/video"
	"creatorstudio/internal/studio"
)

const serverName = "creatorstudio"

type ScriptInput struct {
	Topic    string `json:"topic" jsonschema:"Video topic, e.g. Top 10 AI Tools for 2025"`
	Tone     string `json:"tone,omitempty" jsonschema:"Script tone, e.g. Funny & Sarcastic (default: Energetic & Engaging)"`
	Language string `json:"language,omitempty" jsonschema:"BCP 47 language of the script (default: English)"`
}

type ScriptOutput struct {
	Script string `json:"script" jsonschema:"Markdown script"`
}

type ImageInput struct {
	Prompt      string `json:"prompt" jsonschema:"Description of the image"`
	AspectRatio string `json:"aspect_ratio,omitempty" jsonschema:"1:1 (default), 16:9 or 9:16"`
	Resolution  string `json:"resolution,omitempty" jsonschema:"1K (default), 2K or 4K"`
}

type EditImageInput struct {
	Prompt      string `json:"prompt" jsonschema:"Edit instruction, e.g. add a retro filter"`
	ImageBase64 string `json:"image_base64" jsonschema:"Source image, base64 encoded"`
	MIMEType    string `json:"mime_type,omitempty" jsonschema:"Source image MIME type (default: image/png)"`
}

type VideoInput struct {
	Prompt      string `json:"prompt" jsonschema:"Description of the video"`
	AspectRatio string `json:"aspect_ratio,omitempty" jsonschema:"16:9 (default) or 9:16"`
}

type VideoFromImageInput struct {
	Prompt      string `json:"prompt,omitempty" jsonschema:"Animation instruction (default: Animate this image)"`
	ImageBase64 string `json:"image_base64" jsonschema:"Starting frame, base64 encoded"`
	MIMEType    string `json:"mime_type,omitempty" jsonschema:"Starting frame MIME type (default: image/png)"`
	AspectRatio string `json:"aspect_ratio,omitempty" jsonschema:"16:9 (default) or 9:16"`
}

// NewServer builds an MCP server with every studio tool registered.
func NewServer(version string, adapter studio.Adapter, logger *infra.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	Register(server, adapter, logger)
	return server
}

// Handler serves server over the streamable HTTP transport.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

// Register adds the script, image and video tools to server.
func Register(server *mcp.Server, adapter studio.Adapter, logger *infra.Logger) {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	t := &tools{adapter: adapter, logger: logger}
	t.registerScript(server)
	t.registerImage(server)
	t.registerEditImage(server)
	t.registerVideo(server)
	t.registerVideoFromImage(server)
}

type tools struct {
	adapter studio.Adapter
	logger  *infra.Logger
}

func (t *tools) registerScript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_script",
		Description: "Write a YouTube video script in Markdown with a hook, intro, main points, visual cues in brackets and a call to action.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ScriptInput) (*mcp.CallToolResult, ScriptOutput, error) {
		if strings.TrimSpace(input.Topic) == "" {
			return nil, ScriptOutput{}, errors.New("topic is required")
		}
		text, err := t.adapter.GenerateScript(ctx, script.Request{
			Topic:    input.Topic,
			Tone:     input.Tone,
			Language: input.Language,
		})
		if err != nil {
			return nil, ScriptOutput{}, t.fail("generate_script", err)
		}
		return nil, ScriptOutput{Script: text}, nil
	})
}

func (t *tools) registerImage(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_image",
		Description: "Generate a high resolution image from a text prompt. Returns a PNG data URI.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ImageInput) (*mcp.CallToolResult, *studio.ImageResource, error) {
		if strings.TrimSpace(input.Prompt) == "" {
			return nil, nil, errors.New("prompt is required")
		}
		res, err := t.adapter.GenerateImage(ctx, image.GenerateRequest{
			Prompt:      input.Prompt,
			AspectRatio: image.NormalizeAspectRatio(input.AspectRatio),
			Resolution:  image.NormalizeResolution(input.Resolution),
		})
		if err != nil {
			return nil, nil, t.fail("generate_image", err)
		}
		return nil, res, nil
	})
}

func (t *tools) registerEditImage(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_image",
		Description: "Apply a text instruction to an existing image. Returns a PNG data URI.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input EditImageInput) (*mcp.CallToolResult, *studio.ImageResource, error) {
		if strings.TrimSpace(input.Prompt) == "" {
			return nil, nil, errors.New("prompt is required")
		}
		source, err := decodeImage(input.ImageBase64)
		if err != nil {
			return nil, nil, err
		}
		res, err := t.adapter.EditImage(ctx, image.EditRequest{
			Source:   source,
			MIMEType: input.MIMEType,
			Prompt:   input.Prompt,
		})
		if err != nil {
			return nil, nil, t.fail("edit_image", err)
		}
		return nil, res, nil
	})
}

func (t *tools) registerVideo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_video",
		Description: "Render a 1080p video from a text prompt with Veo. This may take 1-2 minutes. Returns a media URL.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoInput) (*mcp.CallToolResult, *studio.VideoResource, error) {
		if strings.TrimSpace(input.Prompt) == "" {
			return nil, nil, errors.New("prompt is required")
		}
		res, err := t.adapter.GenerateVideo(ctx, video.GenerateRequest{
			Prompt:      input.Prompt,
			AspectRatio: video.NormalizeAspectRatio(input.AspectRatio),
		})
		if err != nil {
			return nil, nil, t.fail("generate_video", err)
		}
		return nil, res, nil
	})
}

func (t *tools) registerVideoFromImage(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_video_from_image",
		Description: "Animate a still image into a 720p video with Veo. This may take 1-2 minutes. Returns a media URL.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoFromImageInput) (*mcp.CallToolResult, *studio.VideoResource, error) {
		source, err := decodeImage(input.ImageBase64)
		if err != nil {
			return nil, nil, err
		}
		res, err := t.adapter.GenerateVideoFromImage(ctx, video.ImageRequest{
			Prompt:      input.Prompt,
			Source:      source,
			MIMEType:    input.MIMEType,
			AspectRatio: video.NormalizeAspectRatio(input.AspectRatio),
		})
		if err != nil {
			return nil, nil, t.fail("generate_video_from_image", err)
		}
		return nil, res, nil
	})
}

// fail logs the provider error and returns the message a user would see.
func (t *tools) fail(tool string, err error) error {
	t.logger.Warn().Err(err).Str("tool", tool).Msg("mcp: tool failed")
	return errors.New(studio.DisplayMessage(err))
}

func decodeImage(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("image_base64 is required")
	}
	if idx := strings.Index(raw, ";base64,"); strings.HasPrefix(raw, "data:") && idx >= 0 {
		raw = raw[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("image_base64 is not valid base64: %w", err)
	}
	return data, nil
}
