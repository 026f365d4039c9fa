package feeds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"creatorstudio/internal/infra"
)

// Topic is a headline offered on the dashboard as a script idea.
type Topic struct {
	Title       string    `json:"title"`
	Link        string    `json:"link,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

type Options struct {
	URLs       []string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Fetcher reads RSS/Atom feeds and turns their latest items into topics.
type Fetcher struct {
	urls   []string
	client *http.Client
	logger *infra.Logger
}

func NewFetcher(opts Options) *Fetcher {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	urls := make([]string, 0, len(opts.URLs))
	for _, u := range opts.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return &Fetcher{urls: urls, client: client, logger: logger}
}

// Enabled reports whether any feed is configured.
func (f *Fetcher) Enabled() bool {
	return f != nil && len(f.urls) > 0
}

// Topics fetches every feed concurrently and returns up to limit topics,
// newest first. A failing feed is skipped; the call fails only when all do.
func (f *Fetcher) Topics(ctx context.Context, limit int) ([]Topic, error) {
	if !f.Enabled() {
		return nil, nil
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		topics []Topic
		errs   []error
	)
	for _, feedURL := range f.urls {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()
			items, err := f.fetch(ctx, feedURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.logger.Warn().Err(err).Str("feed", feedURL).Msg("feeds: fetch failed")
				errs = append(errs, err)
				return
			}
			topics = append(topics, items...)
		}(feedURL)
	}
	wg.Wait()

	if len(errs) == len(f.urls) {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].PublishedAt.After(topics[j].PublishedAt)
	})
	return dedupe(topics, limit), nil
}

func (f *Fetcher) fetch(ctx context.Context, feedURL string) ([]Topic, error) {
	parser := gofeed.NewParser()
	parser.Client = f.client
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	out := make([]Topic, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}
		out = append(out, Topic{
			Title:       title,
			Link:        item.Link,
			Source:      strings.TrimSpace(feed.Title),
			PublishedAt: publishedAt,
		})
	}
	return out, nil
}

func dedupe(topics []Topic, limit int) []Topic {
	seen := make(map[string]struct{}, len(topics))
	out := make([]Topic, 0, len(topics))
	for _, t := range topics {
		key := strings.ToLower(t.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
