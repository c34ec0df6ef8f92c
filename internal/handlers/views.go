package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frameworks/lookout/pkg/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Articles lists stored articles, most recent first.
func (h *Handlers) Articles(c *gin.Context) {
	limit, offset := pageParams(c)
	articles, err := h.reader.ListArticles(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list articles")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "limit": limit, "offset": offset})
}

// Predictions lists stored predictions, most recent first.
func (h *Handlers) Predictions(c *gin.Context) {
	limit, offset := pageParams(c)
	predictions, err := h.reader.ListPredictions(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list predictions")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions, "limit": limit, "offset": offset})
}

// QueryLogs lists stored LLM call records, most recent first.
func (h *Handlers) QueryLogs(c *gin.Context) {
	limit, offset := pageParams(c)
	logs, err := h.reader.ListQueryLogs(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list query logs")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"llm_queries": logs, "limit": limit, "offset": offset})
}

// pageParams clamps limit/offset query parameters to sane bounds.
func pageParams(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
