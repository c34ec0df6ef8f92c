// Package predictor orchestrates one sentiment prediction per call: load
// the article, render the prompt, issue a single LLM call, and record
// both the raw call and the derived prediction. Every attempt leaves a
// query log row behind, success or not.
package predictor

import (
	"context"
	"strings"
	"time"

	"frameworks/lookout/pkg/llm"
	"frameworks/lookout/pkg/logging"
	"frameworks/lookout/pkg/models"
)

// SystemPrompt pins the response shape the parser expects. The model must
// answer with a single JSON object and nothing else.
const SystemPrompt = `You classify the market sentiment of a crypto news article.
Respond with strictly valid JSON of the form:
{"label": "positive" | "neutral" | "negative", "confidence": <number between 0 and 1>}
No extra commentary, no markdown.`

// DefaultPromptTemplate is used when the caller supplies no template.
// {{title}} and {{summary}} are replaced with the article's fields.
const DefaultPromptTemplate = `Classify the market sentiment of this crypto news article.

Title: {{title}}

Summary: {{summary}}`

// Store is the slice of the storage gateway the predictor needs.
type Store interface {
	GetArticle(ctx context.Context, id int64) (models.Article, error)
	InsertPrediction(ctx context.Context, p models.Prediction) (int64, error)
	InsertQueryLog(ctx context.Context, q models.QueryLog) (int64, error)
}

// Predictor runs single-article prediction passes.
type Predictor struct {
	store    Store
	provider llm.Provider
	logger   logging.Logger
	model    string
	timeout  time.Duration
}

// New creates a predictor with the given default model and call timeout.
func New(store Store, provider llm.Provider, logger logging.Logger, defaultModel string, timeout time.Duration) *Predictor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Predictor{
		store:    store,
		provider: provider,
		logger:   logger,
		model:    defaultModel,
		timeout:  timeout,
	}
}

// Predict runs one prediction for one article. It is deliberately not
// idempotent: each call appends its own query log and, on success, its
// own prediction row, so re-runs and model comparisons accumulate.
func (p *Predictor) Predict(ctx context.Context, articleID int64, promptTemplate, model string) (models.Prediction, error) {
	article, err := p.store.GetArticle(ctx, articleID)
	if err != nil {
		return models.Prediction{}, &RunError{Stage: StageFetchArticle, Err: err}
	}

	if promptTemplate == "" {
		promptTemplate = DefaultPromptTemplate
	}
	prompt := RenderPrompt(promptTemplate, article)

	if model == "" {
		model = p.model
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, callErr := p.provider.Complete(callCtx, llm.Request{
		Model:  model,
		System: SystemPrompt,
		Prompt: prompt,
	})

	qlog := models.QueryLog{
		ArticleID:  articleID,
		Model:      model,
		Prompt:     prompt,
		DurationMS: time.Since(start).Milliseconds(),
	}

	if callErr != nil {
		qlog.Success = false
		qlog.Response = callErr.Error()
		if _, logErr := p.store.InsertQueryLog(ctx, qlog); logErr != nil {
			p.logger.WithError(logErr).WithField("article_id", articleID).Error("Failed to record query log")
		}
		p.logger.WithError(callErr).WithFields(logging.Fields{
			"article_id": articleID,
			"model":      model,
		}).Warn("LLM call failed")
		return models.Prediction{}, &RunError{Stage: StageRemoteCall, Err: callErr}
	}

	qlog.Success = true
	qlog.Response = resp.Text
	qlog.TokensUsed = resp.TokensUsed
	if _, logErr := p.store.InsertQueryLog(ctx, qlog); logErr != nil {
		p.logger.WithError(logErr).WithField("article_id", articleID).Error("Failed to record query log")
		return models.Prediction{}, &RunError{Stage: StageRecord, Err: logErr}
	}

	label, confidence, parseErr := ParseSentiment(resp.Text)
	if parseErr != nil {
		p.logger.WithError(parseErr).WithFields(logging.Fields{
			"article_id": articleID,
			"model":      model,
		}).Warn("LLM response did not match expected shape")
		return models.Prediction{}, &RunError{Stage: StageParseResponse, Err: parseErr}
	}

	prediction := models.Prediction{
		ArticleID:  articleID,
		Model:      model,
		Label:      label,
		Confidence: confidence,
	}
	id, err := p.store.InsertPrediction(ctx, prediction)
	if err != nil {
		return models.Prediction{}, &RunError{Stage: StageRecord, Err: err}
	}
	prediction.ID = id

	p.logger.WithFields(logging.Fields{
		"article_id": articleID,
		"model":      model,
		"label":      label,
		"confidence": confidence,
	}).Info("Prediction recorded")

	return prediction, nil
}

// RenderPrompt substitutes the article's title and summary into the
// template.
func RenderPrompt(template string, article models.Article) string {
	return strings.NewReplacer(
		"{{title}}", article.Title,
		"{{summary}}", article.Summary,
	).Replace(template)
}
