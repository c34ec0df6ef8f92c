package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frameworks/lookout/pkg/models"
)

// Collect triggers one collection run. The optional JSON body overrides
// the configured feed list for this run only.
func (h *Handlers) Collect(c *gin.Context) {
	var req models.CollectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.metrics.IncCollectRun("bad_request")
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	summary := h.collector.Collect(c.Request.Context(), req.Feeds)

	h.metrics.IncCollectRun("ok")
	h.metrics.AddArticlesInserted(summary.Inserted)

	c.JSON(http.StatusOK, summary)
}
