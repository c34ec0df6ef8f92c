// Package collector pulls configured RSS feeds into the article store.
// Failures are isolated: a bad feed or a bad entry is counted in the run
// summary and never aborts the rest of the run.
package collector

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"frameworks/lookout/internal/storage"
	"frameworks/lookout/pkg/logging"
	"frameworks/lookout/pkg/models"
)

// ArticleStore is the slice of the storage gateway the collector needs.
type ArticleStore interface {
	InsertArticle(ctx context.Context, a models.Article) (int64, error)
	LatestPublished(ctx context.Context, source string) (time.Time, bool, error)
}

// Config holds collection settings.
type Config struct {
	// Feeds is the configured feed list. Empty means DefaultFeeds.
	Feeds []string
	// FeedTimeout bounds the fetch+parse of a single feed.
	FeedTimeout time.Duration
	// Freshness is how far back to accept entries from a feed with no
	// stored articles yet.
	Freshness time.Duration
	// MaxSummaryRunes caps the stored summary length.
	MaxSummaryRunes int
}

// DefaultConfig returns the stock collection settings.
func DefaultConfig() Config {
	return Config{
		FeedTimeout:     20 * time.Second,
		Freshness:       24 * time.Hour,
		MaxSummaryRunes: 2000,
	}
}

// Collector fetches feeds and hands new articles to the store.
type Collector struct {
	store  ArticleStore
	parser *gofeed.Parser
	logger logging.Logger
	cfg    Config
}

// New creates a collector. Zero config fields fall back to defaults.
func New(store ArticleStore, logger logging.Logger, cfg Config) *Collector {
	def := DefaultConfig()
	if cfg.FeedTimeout <= 0 {
		cfg.FeedTimeout = def.FeedTimeout
	}
	if cfg.Freshness <= 0 {
		cfg.Freshness = def.Freshness
	}
	if cfg.MaxSummaryRunes <= 0 {
		cfg.MaxSummaryRunes = def.MaxSummaryRunes
	}
	return &Collector{
		store:  store,
		parser: gofeed.NewParser(),
		logger: logger,
		cfg:    cfg,
	}
}

// Collect runs one collection pass over the given feeds (or the
// configured list when empty) and returns per-feed counts. Entries within a feed are
// processed in feed order so duplicate detection against articles
// inserted earlier in the same run is deterministic.
func (c *Collector) Collect(ctx context.Context, feeds []string) models.CollectSummary {
	if len(feeds) == 0 {
		feeds = c.cfg.Feeds
	}
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}

	var summary models.CollectSummary
	for _, url := range feeds {
		summary.Add(c.collectFeed(ctx, url))
	}

	c.logger.WithFields(logging.Fields{
		"feeds":     len(feeds),
		"fetched":   summary.Fetched,
		"inserted":  summary.Inserted,
		"duplicate": summary.Duplicate,
		"failed":    summary.Failed,
		"skipped":   summary.Skipped,
	}).Info("Collection run finished")

	return summary
}

func (c *Collector) collectFeed(ctx context.Context, url string) models.FeedSummary {
	fs := models.FeedSummary{Feed: url}

	feedCtx, cancel := context.WithTimeout(ctx, c.cfg.FeedTimeout)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(url, feedCtx)
	if err != nil {
		c.logger.WithError(err).WithField("feed", url).Warn("Feed fetch failed")
		fs.Error = err.Error()
		return fs
	}

	cutoff := time.Now().Add(-c.cfg.Freshness)
	if latest, ok, err := c.store.LatestPublished(ctx, url); err != nil {
		c.logger.WithError(err).WithField("feed", url).Warn("Could not read latest publish time")
	} else if ok && latest.After(cutoff) {
		cutoff = latest
	}

	for _, item := range feed.Items {
		fs.Fetched++

		article, err := c.normalize(item, url)
		if err != nil {
			fs.Failed++
			c.logger.WithError(err).WithField("feed", url).Debug("Skipping malformed entry")
			continue
		}

		if !article.Published.After(cutoff) {
			fs.Skipped++
			continue
		}

		// Uniqueness is enforced by the store, not pre-checked here, so
		// concurrent runs cannot race a check-then-act window.
		_, err = c.store.InsertArticle(ctx, article)
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			fs.Duplicate++
		case err != nil:
			fs.Failed++
			c.logger.WithError(err).WithFields(logging.Fields{
				"feed": url,
				"link": article.Link,
			}).Error("Failed to insert article")
		default:
			fs.Inserted++
		}
	}

	return fs
}

func (c *Collector) normalize(item *gofeed.Item, source string) (models.Article, error) {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return models.Article{}, errors.New("entry has no link")
	}

	var published time.Time
	switch {
	case item.PublishedParsed != nil:
		published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = *item.UpdatedParsed
	default:
		return models.Article{}, errors.New("entry has no usable timestamp")
	}

	body := item.Description
	if body == "" {
		body = item.Content
	}

	return models.Article{
		Source:    source,
		Title:     strings.TrimSpace(htmlToText(item.Title)),
		Link:      link,
		Published: published,
		Summary:   truncate(htmlToText(body), c.cfg.MaxSummaryRunes),
	}, nil
}

// htmlToText flattens feed HTML into whitespace-normalized plain text.
func htmlToText(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
