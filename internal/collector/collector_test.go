package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"frameworks/lookout/internal/storage"
	"frameworks/lookout/pkg/models"
)

type storeStub struct {
	inserted   []models.Article
	duplicates map[string]bool
	insertErr  error
	latest     time.Time
	hasLatest  bool
}

func (s *storeStub) InsertArticle(ctx context.Context, a models.Article) (int64, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	if s.duplicates[a.Link] {
		return 0, storage.ErrDuplicate
	}
	s.inserted = append(s.inserted, a)
	return int64(len(s.inserted)), nil
}

func (s *storeStub) LatestPublished(ctx context.Context, source string) (time.Time, bool, error) {
	return s.latest, s.hasLatest, nil
}

func rssDocument(items ...string) string {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>test feed</title>`
	for _, item := range items {
		doc += item
	}
	return doc + `</channel></rss>`
}

func rssItem(title, link string, published time.Time) string {
	return fmt.Sprintf(
		`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate><description>&lt;p&gt;Some &lt;b&gt;markup&lt;/b&gt; here&lt;/p&gt;</description></item>`,
		title, link, published.Format(time.RFC1123Z))
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCollector(store ArticleStore) *Collector {
	logger, _ := test.NewNullLogger()
	return New(store, logger, Config{FeedTimeout: 5 * time.Second})
}

func TestCollectCountsDuplicates(t *testing.T) {
	now := time.Now()
	srv := serveFeed(t, rssDocument(
		rssItem("first", "https://example.com/a", now),
		rssItem("second", "https://example.com/b", now),
		rssItem("repeat", "https://example.com/dup", now),
	))

	store := &storeStub{duplicates: map[string]bool{"https://example.com/dup": true}}
	c := newTestCollector(store)

	summary := c.Collect(context.Background(), []string{srv.URL})
	if summary.Fetched != 3 || summary.Inserted != 2 || summary.Duplicate != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(store.inserted))
	}
}

func TestCollectNormalizesEntries(t *testing.T) {
	now := time.Now()
	srv := serveFeed(t, rssDocument(rssItem("BTC &amp; ETH", "https://example.com/a", now)))

	store := &storeStub{}
	c := newTestCollector(store)
	c.Collect(context.Background(), []string{srv.URL})

	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(store.inserted))
	}
	a := store.inserted[0]
	if a.Title != "BTC & ETH" {
		t.Fatalf("unexpected title %q", a.Title)
	}
	if a.Summary != "Some markup here" {
		t.Fatalf("expected HTML stripped from summary, got %q", a.Summary)
	}
	if a.Source != srv.URL {
		t.Fatalf("expected source %q, got %q", srv.URL, a.Source)
	}
}

func TestCollectBadFeedDoesNotAbortRun(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	good := serveFeed(t, rssDocument(rssItem("ok", "https://example.com/a", time.Now())))

	store := &storeStub{}
	c := newTestCollector(store)

	summary := c.Collect(context.Background(), []string{bad.URL, good.URL})
	if len(summary.Feeds) != 2 {
		t.Fatalf("expected 2 feed summaries, got %d", len(summary.Feeds))
	}
	if summary.Feeds[0].Error == "" {
		t.Fatal("expected an error recorded for the bad feed")
	}
	if summary.Inserted != 1 {
		t.Fatalf("expected the good feed to still insert, got %+v", summary)
	}
}

func TestCollectCountsEntriesWithoutLinkAsFailed(t *testing.T) {
	now := time.Now()
	noLink := fmt.Sprintf(`<item><title>broken</title><pubDate>%s</pubDate></item>`, now.Format(time.RFC1123Z))
	srv := serveFeed(t, rssDocument(noLink, rssItem("fine", "https://example.com/a", now)))

	store := &storeStub{}
	c := newTestCollector(store)

	summary := c.Collect(context.Background(), []string{srv.URL})
	if summary.Fetched != 2 || summary.Failed != 1 || summary.Inserted != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestCollectSkipsEntriesOlderThanCutoff(t *testing.T) {
	now := time.Now()
	srv := serveFeed(t, rssDocument(
		rssItem("fresh", "https://example.com/fresh", now),
		rssItem("stale", "https://example.com/stale", now.Add(-2*time.Hour)),
	))

	store := &storeStub{latest: now.Add(-1 * time.Hour), hasLatest: true}
	c := newTestCollector(store)

	summary := c.Collect(context.Background(), []string{srv.URL})
	if summary.Inserted != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(store.inserted) != 1 || store.inserted[0].Link != "https://example.com/fresh" {
		t.Fatalf("expected only the fresh entry inserted, got %+v", store.inserted)
	}
}

func TestHTMLToText(t *testing.T) {
	got := htmlToText("<p>Hello   <b>world</b></p>\n<p>again</p>")
	if got != "Hello world again" {
		t.Fatalf("unexpected text: %q", got)
	}
	if htmlToText("") != "" {
		t.Fatal("expected empty string unchanged")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 5); got != "ab..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("short string should be unchanged, got %q", got)
	}
}
