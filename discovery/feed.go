package discovery

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/internal/sliceutils"
	"github.com/habiliai/agenteval/internal/stringutils"
	"github.com/mmcdole/gofeed"
)

const (
	defaultFeedTimeout  = 30 * time.Second
	defaultMaxFeedItems = 5
	maxItemDescription  = 160
)

// FeedItem is one release announcement read from a feed.
type FeedItem struct {
	Feed        string    `json:"feed"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link"`
	Published   time.Time `json:"published"`
}

// FeedSource reads release feeds (RSS or Atom) of agent frameworks, e.g. the
// GitHub releases feed of a repository.
type FeedSource struct {
	parser   *gofeed.Parser
	urls     []string
	maxItems int
	timeout  time.Duration
}

var _ Source = (*FeedSource)(nil)

func NewFeedSource(urls []string, maxItems int) *FeedSource {
	if maxItems <= 0 {
		maxItems = defaultMaxFeedItems
	}
	return &FeedSource{
		parser:   gofeed.NewParser(),
		urls:     urls,
		maxItems: maxItems,
		timeout:  defaultFeedTimeout,
	}
}

func (s *FeedSource) Name() string {
	return "feeds"
}

// ReadFeed returns the newest items of one feed, newest first.
func (s *FeedSource) ReadFeed(ctx context.Context, feedURL string) ([]FeedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		description := item.Description
		if description == "" {
			description = item.Content
		}
		fi := FeedItem{
			Feed:        feed.Title,
			Title:       stringutils.CollapseSpace(item.Title),
			Description: stringutils.Truncate(stringutils.CollapseSpace(description), maxItemDescription),
			Link:        item.Link,
		}
		switch {
		case item.PublishedParsed != nil:
			fi.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			fi.Published = *item.UpdatedParsed
		}
		items = append(items, fi)
	}
	slices.SortStableFunc(items, func(a, b FeedItem) int {
		return cmp.Compare(b.Published.Unix(), a.Published.Unix())
	})

	return sliceutils.Head(items, s.maxItems), nil
}

type feedResult struct {
	url   string
	items []FeedItem
	err   error
}

// Collect reads every feed in parallel. Lines keep the configured feed order.
// A feed that fails is reported in the joined error; the others still count.
func (s *FeedSource) Collect(ctx context.Context, _ entity.ProductDescription) ([]string, error) {
	ch := make(chan feedResult, len(s.urls))
	for _, url := range s.urls {
		go func(feedURL string) {
			items, err := s.ReadFeed(ctx, feedURL)
			ch <- feedResult{url: feedURL, items: items, err: err}
		}(url)
	}

	results := make(map[string]feedResult, len(s.urls))
	for range s.urls {
		r := <-ch
		results[r.url] = r
	}

	var (
		lines []string
		errs  []error
	)
	for _, url := range s.urls {
		r := results[url]
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		for _, item := range r.items {
			lines = append(lines, item.Line())
		}
	}

	return lines, joinErrors(errs)
}

// Line renders the item for a prompt.
func (i FeedItem) Line() string {
	line := i.Title
	if i.Feed != "" {
		line = i.Feed + ": " + line
	}
	if !i.Published.IsZero() {
		line += " (" + i.Published.Format(time.DateOnly) + ")"
	}
	if i.Description != "" {
		line += " - " + i.Description
	}
	return line
}
