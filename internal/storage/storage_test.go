package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"frameworks/lookout/pkg/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestEnsureSchemaRunsAllStatements(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS predictions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS llm_queries").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet SQL expectations: %v", err)
	}
}

func TestInsertArticleReturnsID(t *testing.T) {
	store, mock := newMockStore(t)
	published := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO articles (source, title, link, published, summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`)).
		WithArgs("https://example.com/rss", "BTC rallies", "https://example.com/btc", published, "summary").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.InsertArticle(context.Background(), models.Article{
		Source:    "https://example.com/rss",
		Title:     "BTC rallies",
		Link:      "https://example.com/btc",
		Published: published,
		Summary:   "summary",
	})
	if err != nil {
		t.Fatalf("InsertArticle returned error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet SQL expectations: %v", err)
	}
}

func TestInsertArticleMapsUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO articles").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "articles_link_key"})

	_, err := store.InsertArticle(context.Background(), models.Article{
		Link:      "https://example.com/dup",
		Published: time.Now(),
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestInsertPredictionMapsForeignKeyViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO predictions").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "predictions_article_id_fkey"})

	_, err := store.InsertPrediction(context.Background(), models.Prediction{
		ArticleID:  42,
		Model:      "test-model",
		Label:      models.SentimentNeutral,
		Confidence: 0.5,
	})
	if !errors.Is(err, ErrReferential) {
		t.Fatalf("expected ErrReferential, got %v", err)
	}
}

func TestInsertQueryLogMapsForeignKeyViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO llm_queries").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "llm_queries_article_id_fkey"})

	_, err := store.InsertQueryLog(context.Background(), models.QueryLog{
		ArticleID: 42,
		Model:     "test-model",
		Prompt:    "p",
		Response:  "r",
	})
	if !errors.Is(err, ErrReferential) {
		t.Fatalf("expected ErrReferential, got %v", err)
	}
}

func TestInsertQueryLogReturnsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO llm_queries").
		WithArgs(int64(3), "test-model", "prompt", "raw response", true, 42, int64(1200)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := store.InsertQueryLog(context.Background(), models.QueryLog{
		ArticleID:  3,
		Model:      "test-model",
		Prompt:     "prompt",
		Response:   "raw response",
		Success:    true,
		TokensUsed: 42,
		DurationMS: 1200,
	})
	if err != nil {
		t.Fatalf("InsertQueryLog returned error: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, source, title, link, published, summary, collected_at").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetArticle(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetArticle(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, source, title, link, published, summary, collected_at").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source", "title", "link", "published", "summary", "collected_at"}).
			AddRow(int64(3), "feed", "title", "link", now, "summary", now))

	a, err := store.GetArticle(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}
	if a.ID != 3 || a.Title != "title" {
		t.Fatalf("unexpected article: %+v", a)
	}
}

func TestLatestPublished(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(published) FROM articles WHERE source = $1")).
		WithArgs("feed").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	_, ok, err := store.LatestPublished(context.Background(), "feed")
	if err != nil {
		t.Fatalf("LatestPublished returned error: %v", err)
	}
	if ok {
		t.Fatal("expected no latest time for empty feed")
	}

	latest := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(published) FROM articles WHERE source = $1")).
		WithArgs("feed").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(latest))

	got, ok, err := store.LatestPublished(context.Background(), "feed")
	if err != nil {
		t.Fatalf("LatestPublished returned error: %v", err)
	}
	if !ok || !got.Equal(latest) {
		t.Fatalf("expected %v, got %v (ok=%v)", latest, got, ok)
	}
}

func TestListArticlesPagination(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, source, title, link, published, summary, collected_at").
		WithArgs(50, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source", "title", "link", "published", "summary", "collected_at"}).
			AddRow(int64(2), "feed", "second", "l2", now, "", now).
			AddRow(int64(1), "feed", "first", "l1", now, "", now))

	articles, err := store.ListArticles(context.Background(), 50, 10)
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].ID != 2 {
		t.Fatalf("expected most recent first, got id %d", articles[0].ID)
	}
}

func TestListPredictionsEmpty(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, article_id, model, label, confidence, created_at").
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "article_id", "model", "label", "confidence", "created_at"}))

	predictions, err := store.ListPredictions(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("ListPredictions returned error: %v", err)
	}
	if predictions == nil || len(predictions) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", predictions)
	}
}
