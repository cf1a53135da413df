package config

import (
	"strings"

	"github.com/samber/lo"
)

type DiscoveryConfig struct {
	// Feeds is a comma separated list of RSS/Atom feeds, typically framework
	// release feeds.
	Feeds string `env:"AGENTEVAL_DISCOVERY_FEEDS"`
	// MaxFeedItems bounds the items taken from each feed.
	MaxFeedItems int `env:"AGENTEVAL_DISCOVERY_MAX_FEED_ITEMS"`

	FirecrawlAPIKey string `env:"FIRECRAWL_API_KEY"`
	FirecrawlAPIURL string `env:"FIRECRAWL_API_URL"`
	// Pages is a comma separated list of directory pages to scrape.
	Pages string `env:"AGENTEVAL_DISCOVERY_PAGES"`
	// MaxPageChars truncates each scraped page.
	MaxPageChars int `env:"AGENTEVAL_DISCOVERY_MAX_PAGE_CHARS"`
}

func NewDiscoveryConfig() *DiscoveryConfig {
	return &DiscoveryConfig{
		MaxFeedItems:    5,
		FirecrawlAPIURL: "https://api.firecrawl.dev",
		MaxPageChars:    4000,
	}
}

func (c *DiscoveryConfig) FeedURLs() []string {
	return splitList(c.Feeds)
}

func (c *DiscoveryConfig) PageURLs() []string {
	return splitList(c.Pages)
}

// Enabled reports whether any discovery source is configured.
func (c *DiscoveryConfig) Enabled() bool {
	return len(c.FeedURLs()) > 0 || (c.FirecrawlAPIKey != "" && len(c.PageURLs()) > 0)
}

func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(v string, _ int) string {
		return strings.TrimSpace(v)
	}))
}
