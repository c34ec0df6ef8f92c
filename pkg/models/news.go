package models

import (
	"time"
)

// Sentiment labels a prediction can carry.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Article is one deduplicated news entry derived from a feed entry.
// Rows are append-only; an article is never updated after insert.
type Article struct {
	ID          int64     `json:"id" db:"id"`
	Source      string    `json:"source" db:"source"`
	Title       string    `json:"title" db:"title"`
	Link        string    `json:"link" db:"link"`
	Published   time.Time `json:"published" db:"published"`
	Summary     string    `json:"summary" db:"summary"`
	CollectedAt time.Time `json:"collected_at" db:"collected_at"`
}

// Prediction is one sentiment judgment for one article. An article may
// accumulate any number of predictions from different models or re-runs.
type Prediction struct {
	ID         int64     `json:"id" db:"id"`
	ArticleID  int64     `json:"article_id" db:"article_id"`
	Model      string    `json:"model" db:"model"`
	Label      string    `json:"label" db:"label"`
	Confidence float64   `json:"confidence" db:"confidence"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// QueryLog is the audit record of one outbound LLM call, written for
// every attempt whether or not a prediction was produced.
type QueryLog struct {
	ID         int64     `json:"id" db:"id"`
	ArticleID  int64     `json:"article_id" db:"article_id"`
	Model      string    `json:"model" db:"model"`
	Prompt     string    `json:"prompt" db:"prompt"`
	Response   string    `json:"response" db:"response"`
	Success    bool      `json:"success" db:"success"`
	TokensUsed int       `json:"tokens_used" db:"tokens_used"`
	DurationMS int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
