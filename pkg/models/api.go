package models

// CollectRequest optionally overrides the configured feed list for one run.
type CollectRequest struct {
	Feeds []string `json:"feeds"`
}

// FeedSummary reports the outcome of collecting a single feed.
type FeedSummary struct {
	Feed      string `json:"feed"`
	Fetched   int    `json:"fetched"`
	Inserted  int    `json:"inserted"`
	Duplicate int    `json:"duplicate"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// CollectSummary is the result of one collection run across all feeds.
type CollectSummary struct {
	Feeds     []FeedSummary `json:"feeds"`
	Fetched   int           `json:"fetched"`
	Inserted  int           `json:"inserted"`
	Duplicate int           `json:"duplicate"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
}

// Add folds one feed summary into the run totals.
func (s *CollectSummary) Add(fs FeedSummary) {
	s.Feeds = append(s.Feeds, fs)
	s.Fetched += fs.Fetched
	s.Inserted += fs.Inserted
	s.Duplicate += fs.Duplicate
	s.Failed += fs.Failed
	s.Skipped += fs.Skipped
}

// PredictRequest triggers one prediction run for one article.
type PredictRequest struct {
	ArticleID      int64  `json:"article_id" binding:"required"`
	PromptTemplate string `json:"prompt_template"`
	Model          string `json:"model"`
}

// ErrorResponse is the shape of any failed API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}
