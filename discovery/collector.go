// Package discovery gathers optional live context (recent framework releases,
// agent directory pages) for the agent search stage. It never fails a run.
package discovery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/habiliai/agenteval/config"
	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
)

type Source interface {
	Name() string
	Collect(ctx context.Context, product entity.ProductDescription) ([]string, error)
}

type Collector struct {
	sources []Source
	logger  *mylog.Logger
}

func NewCollector(logger *mylog.Logger, sources ...Source) *Collector {
	if logger == nil {
		logger = mylog.Discard()
	}
	return &Collector{
		sources: sources,
		logger:  logger,
	}
}

// NewCollectorFromConfig builds the sources that conf enables. A source
// whose setup fails is logged and left out.
func NewCollectorFromConfig(conf *config.DiscoveryConfig, logger *mylog.Logger) *Collector {
	if logger == nil {
		logger = mylog.Discard()
	}

	var sources []Source
	if urls := conf.FeedURLs(); len(urls) > 0 {
		sources = append(sources, NewFeedSource(urls, conf.MaxFeedItems))
	}
	if urls := conf.PageURLs(); len(urls) > 0 {
		web, err := NewFirecrawlSource(conf.FirecrawlAPIKey, conf.FirecrawlAPIURL, urls, conf.MaxPageChars)
		if err != nil {
			logger.Warn("web discovery disabled", mylog.Err(err))
		} else {
			sources = append(sources, web)
		}
	}

	return NewCollector(logger, sources...)
}

func (c *Collector) Enabled() bool {
	return c != nil && len(c.sources) > 0
}

// Collect returns the context lines of every source joined by newlines. A
// failing source is logged and skipped; partial results are kept.
func (c *Collector) Collect(ctx context.Context, product entity.ProductDescription) string {
	if !c.Enabled() {
		return ""
	}

	var lines []string
	for _, source := range c.sources {
		started := time.Now()
		got, err := source.Collect(ctx, product)
		if err != nil {
			c.logger.Warn(
				"discovery source failed",
				slog.String("source", source.Name()),
				mylog.Err(errors.Wrapf(errors.ErrExternalCall, "%v", err)),
			)
		}
		c.logger.Debug(
			"discovery source collected",
			slog.String("source", source.Name()),
			slog.Int("lines", len(got)),
			slog.Duration("elapsed", time.Since(started)),
		)
		lines = append(lines, got...)
	}

	return strings.Join(lines, "\n")
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return errors.New(strings.Join(msgs, "; "))
}
