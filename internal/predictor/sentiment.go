package predictor

import (
	"encoding/json"
	"fmt"
	"strings"

	"frameworks/lookout/pkg/models"
)

type sentimentPayload struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
}

// ParseSentiment extracts the label and confidence from the model's raw
// answer. The integration contract is a single JSON object
// {"label": ..., "confidence": ...}; anything else is a parse failure.
// There is no fallback heuristic: the raw text is already in the query
// log for inspection.
func ParseSentiment(raw string) (string, float64, error) {
	var payload sentimentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", 0, fmt.Errorf("response is not a JSON object: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(payload.Label))
	switch label {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	case "":
		return "", 0, fmt.Errorf("response is missing the label field")
	default:
		return "", 0, fmt.Errorf("unknown sentiment label %q", label)
	}

	if payload.Confidence == nil {
		return "", 0, fmt.Errorf("response is missing the confidence field")
	}
	confidence := *payload.Confidence
	if confidence < 0 || confidence > 1 {
		return "", 0, fmt.Errorf("confidence %v is outside [0, 1]", confidence)
	}

	return label, confidence, nil
}
