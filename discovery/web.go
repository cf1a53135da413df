package discovery

import (
	"context"
	"fmt"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/stringutils"
	firecrawl "github.com/mendableai/firecrawl-go"
)

const defaultMaxPageChars = 4000

// Scraper fetches a page as markdown. *firecrawl.FirecrawlApp implements it.
type Scraper interface {
	ScrapeURL(url string, params *firecrawl.ScrapeParams) (*firecrawl.FirecrawlDocument, error)
}

// WebSource scrapes agent directory pages to markdown.
type WebSource struct {
	scraper  Scraper
	urls     []string
	maxChars int
}

var _ Source = (*WebSource)(nil)

func NewWebSource(scraper Scraper, urls []string, maxChars int) *WebSource {
	if maxChars <= 0 {
		maxChars = defaultMaxPageChars
	}
	return &WebSource{
		scraper:  scraper,
		urls:     urls,
		maxChars: maxChars,
	}
}

// NewFirecrawlSource returns a WebSource backed by the Firecrawl API.
func NewFirecrawlSource(apiKey, apiURL string, urls []string, maxChars int) (*WebSource, error) {
	if apiKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "firecrawl api key is required")
	}
	app, err := firecrawl.NewFirecrawlApp(apiKey, apiURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create firecrawl client")
	}
	return NewWebSource(app, urls, maxChars), nil
}

func (s *WebSource) Name() string {
	return "web"
}

func (s *WebSource) Collect(ctx context.Context, _ entity.ProductDescription) ([]string, error) {
	var (
		lines []string
		errs  []error
	)
	for _, url := range s.urls {
		if err := ctx.Err(); err != nil {
			return lines, err
		}

		doc, err := s.scraper.ScrapeURL(url, &firecrawl.ScrapeParams{
			Formats: []string{"markdown"},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to scrape %s: %w", url, err))
			continue
		}
		if doc == nil || doc.Markdown == "" {
			continue
		}

		title := url
		if doc.Metadata != nil && doc.Metadata.Title != nil && *doc.Metadata.Title != "" {
			title = *doc.Metadata.Title
		}
		lines = append(lines, fmt.Sprintf("[Page: %s]\n%s", title, stringutils.Truncate(stringutils.Clean(doc.Markdown), s.maxChars)))
	}

	return lines, joinErrors(errs)
}
