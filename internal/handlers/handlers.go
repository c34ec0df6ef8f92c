// Package handlers exposes the HTTP surface: trigger endpoints for
// collection and prediction runs, and paged read endpoints over the
// stored rows.
package handlers

import (
	"context"

	"frameworks/lookout/pkg/logging"
	"frameworks/lookout/pkg/models"
)

// Collector triggers one feed collection run.
type Collector interface {
	Collect(ctx context.Context, feeds []string) models.CollectSummary
}

// Predictor triggers one prediction run for one article.
type Predictor interface {
	Predict(ctx context.Context, articleID int64, promptTemplate, model string) (models.Prediction, error)
}

// Reader pages through stored rows for display.
type Reader interface {
	ListArticles(ctx context.Context, limit, offset int) ([]models.Article, error)
	ListPredictions(ctx context.Context, limit, offset int) ([]models.Prediction, error)
	ListQueryLogs(ctx context.Context, limit, offset int) ([]models.QueryLog, error)
}

// Handlers carries the wired dependencies for all routes.
type Handlers struct {
	collector Collector
	predictor Predictor
	reader    Reader
	logger    logging.Logger
	metrics   *Metrics

	// predictEnabled is false when no API key is configured; the predict
	// route then fails fast with 503 instead of issuing doomed calls.
	predictEnabled bool
}

// New creates the handler set.
func New(collector Collector, predictor Predictor, reader Reader, logger logging.Logger, metrics *Metrics, predictEnabled bool) *Handlers {
	return &Handlers{
		collector:      collector,
		predictor:      predictor,
		reader:         reader,
		logger:         logger,
		metrics:        metrics,
		predictEnabled: predictEnabled,
	}
}
