package genai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DownloadError reports a non-2xx answer while fetching a generated file.
type DownloadError struct {
	Status int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download status %d", e.Status)
}

// Download is a fetched remote file.
type Download struct {
	Data     []byte
	MIMEType string
}

// Download fetches uri with the API key appended as the key query parameter.
// Generated video locations are only readable with credentials attached.
func (c *Client) Download(ctx context.Context, uri string) (*Download, error) {
	key, err := c.keys(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrMissingAPIKey
	}

	target, err := withKey(uri, key)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &DownloadError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	c.logger.Debug().Int("bytes", len(data)).Str("mime", mimeType).Msg("genai: downloaded file")
	return &Download{Data: data, MIMEType: strings.TrimSpace(mimeType)}, nil
}

func withKey(uri, key string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid download uri %q", uri)
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
