// Package storage is the gateway to the append-only news schema. Every
// operation is a single auto-committing statement; uniqueness and
// referential integrity are enforced by the database constraints, not by
// application-level checks.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"frameworks/lookout/pkg/models"
)

// Postgres error codes mapped to gateway sentinel errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id BIGSERIAL PRIMARY KEY,
		source TEXT NOT NULL,
		title TEXT NOT NULL,
		link TEXT NOT NULL UNIQUE,
		published TIMESTAMPTZ NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		collected_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id BIGSERIAL PRIMARY KEY,
		article_id BIGINT NOT NULL REFERENCES articles(id),
		model TEXT NOT NULL,
		label TEXT NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS llm_queries (
		id BIGSERIAL PRIMARY KEY,
		article_id BIGINT NOT NULL REFERENCES articles(id),
		model TEXT NOT NULL,
		prompt TEXT NOT NULL,
		response TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		tokens_used INTEGER NOT NULL DEFAULT 0,
		duration_ms BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Store exposes insert and query operations over the news schema.
type Store struct {
	db *sql.DB
}

// New creates a store on top of an open database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema idempotently creates the three tables. Safe to call on
// every process start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// InsertArticle stores a new article and returns its id. ErrDuplicate is
// returned when the link is already present; this is the sole
// deduplication mechanism and holds under concurrent collection runs.
func (s *Store) InsertArticle(ctx context.Context, a models.Article) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (source, title, link, published, summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, a.Source, a.Title, a.Link, a.Published, a.Summary).Scan(&id)
	if err != nil {
		return 0, mapConstraintError(err)
	}
	return id, nil
}

// InsertPrediction stores a sentiment judgment for an existing article.
func (s *Store) InsertPrediction(ctx context.Context, p models.Prediction) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO predictions (article_id, model, label, confidence)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.ArticleID, p.Model, p.Label, p.Confidence).Scan(&id)
	if err != nil {
		return 0, mapConstraintError(err)
	}
	return id, nil
}

// InsertQueryLog stores the audit record of one outbound LLM call.
func (s *Store) InsertQueryLog(ctx context.Context, q models.QueryLog) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO llm_queries (article_id, model, prompt, response, success, tokens_used, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, q.ArticleID, q.Model, q.Prompt, q.Response, q.Success, q.TokensUsed, q.DurationMS).Scan(&id)
	if err != nil {
		return 0, mapConstraintError(err)
	}
	return id, nil
}

// GetArticle loads one article by id.
func (s *Store) GetArticle(ctx context.Context, id int64) (models.Article, error) {
	var a models.Article
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, title, link, published, summary, collected_at
		FROM articles
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Source, &a.Title, &a.Link, &a.Published, &a.Summary, &a.CollectedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Article{}, ErrNotFound
	}
	if err != nil {
		return models.Article{}, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// LatestPublished returns the newest stored publish time for one feed.
// The second return value reports whether the feed has any articles.
func (s *Store) LatestPublished(ctx context.Context, source string) (time.Time, bool, error) {
	var latest sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(published) FROM articles WHERE source = $1
	`, source).Scan(&latest)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest published: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	return latest.Time, true, nil
}

// ListArticles returns stored articles, most recently collected first.
func (s *Store) ListArticles(ctx context.Context, limit, offset int) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, title, link, published, summary, collected_at
		FROM articles
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Source, &a.Title, &a.Link, &a.Published, &a.Summary, &a.CollectedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ListPredictions returns stored predictions, most recent first.
func (s *Store) ListPredictions(ctx context.Context, limit, offset int) ([]models.Prediction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, article_id, model, label, confidence, created_at
		FROM predictions
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	predictions := []models.Prediction{}
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.ID, &p.ArticleID, &p.Model, &p.Label, &p.Confidence, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

// ListQueryLogs returns stored LLM call records, most recent first.
func (s *Store) ListQueryLogs(ctx context.Context, limit, offset int) ([]models.QueryLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, article_id, model, prompt, response, success, tokens_used, duration_ms, created_at
		FROM llm_queries
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list query logs: %w", err)
	}
	defer rows.Close()

	logs := []models.QueryLog{}
	for rows.Next() {
		var q models.QueryLog
		if err := rows.Scan(&q.ID, &q.ArticleID, &q.Model, &q.Prompt, &q.Response, &q.Success, &q.TokensUsed, &q.DurationMS, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan query log: %w", err)
		}
		logs = append(logs, q)
	}
	return logs, rows.Err()
}

// mapConstraintError converts Postgres constraint violations into the
// gateway's sentinel errors and leaves everything else untouched.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicate
		case pqForeignKeyViolation:
			return ErrReferential
		}
	}
	return err
}
