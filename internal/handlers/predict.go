package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"frameworks/lookout/internal/predictor"
	"frameworks/lookout/internal/storage"
	"frameworks/lookout/pkg/models"
)

// Predict triggers one prediction run for one article. Failures come back
// as structured JSON with the stage that failed, never as a stack trace.
func (h *Handlers) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncPredictRun("bad_request")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !h.predictEnabled {
		h.metrics.IncPredictRun("no_api_key")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: "Prediction is disabled: no API key configured",
		})
		return
	}

	start := time.Now()
	prediction, err := h.predictor.Predict(c.Request.Context(), req.ArticleID, req.PromptTemplate, req.Model)
	h.metrics.ObserveLLMCall(req.Model, time.Since(start).Seconds())

	if err != nil {
		h.respondPredictError(c, err)
		return
	}

	h.metrics.IncPredictRun("ok")
	c.JSON(http.StatusOK, prediction)
}

func (h *Handlers) respondPredictError(c *gin.Context, err error) {
	var runErr *predictor.RunError
	if !errors.As(err, &runErr) {
		h.metrics.IncPredictRun("error")
		h.logger.WithError(err).Error("Prediction failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	h.metrics.IncPredictRun(string(runErr.Stage))

	switch runErr.Stage {
	case predictor.StageFetchArticle:
		if errors.Is(runErr.Err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Article not found",
				Stage: string(runErr.Stage),
			})
			return
		}
		h.logger.WithError(runErr).Error("Failed to load article for prediction")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal server error",
			Stage: string(runErr.Stage),
		})
	case predictor.StageRemoteCall:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: fmt.Sprintf("LLM call failed: %v", runErr.Err),
			Stage: string(runErr.Stage),
		})
	case predictor.StageParseResponse:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: fmt.Sprintf("LLM response did not match the expected shape: %v", runErr.Err),
			Stage: string(runErr.Stage),
		})
	default:
		h.logger.WithError(runErr).Error("Prediction bookkeeping failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal server error",
			Stage: string(runErr.Stage),
		})
	}
}
