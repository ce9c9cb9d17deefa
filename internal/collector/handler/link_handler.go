package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/service"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type LinkPipeline interface {
	Process(ctx context.Context, submission service.Submission) (*service.Result, error)
	RecentLinks(ctx context.Context, limit uint64) ([]*models.LinkRecord, error)
}

type saveLinkRequest struct {
	URL string `json:"url"`
}

type saveLinkResponse struct {
	Success  bool               `json:"success"`
	Link     *models.LinkRecord `json:"link"`
	Enriched bool               `json:"enriched"`
	Warning  string             `json:"warning,omitempty"`
}

type listLinksResponse struct {
	Links []*models.LinkRecord `json:"links"`
}

type LinkHandler struct {
	pipeline  LinkPipeline
	listLimit uint64
	logger    *slog.Logger
}

func NewLinkHandler(pipeline LinkPipeline, listLimit uint64, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		pipeline:  pipeline,
		listLimit: listLimit,
		logger:    logger,
	}
}

// SaveLink обрабатывает POST /api/links.
func (h *LinkHandler) SaveLink(c *gin.Context) {
	var req saveLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	result, err := h.pipeline.Process(c.Request.Context(), service.Submission{
		Text:    req.URL,
		Channel: models.ChannelForm,
	})
	if err != nil {
		_ = c.Error(err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save link"})

		return
	}

	switch result.Outcome {
	case service.OutcomeNoURL:
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid URL found"})
	case service.OutcomeSaved, service.OutcomePartial:
		c.JSON(http.StatusOK, saveLinkResponse{
			Success:  true,
			Link:     result.Record,
			Enriched: result.Enriched,
			Warning:  result.Warning,
		})
	default:
		_ = c.Error(errors.New("неожиданный исход обработки: " + string(result.Outcome)))

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save link"})
	}
}

// ListLinks обрабатывает GET /api/links.
func (h *LinkHandler) ListLinks(c *gin.Context) {
	links, err := h.pipeline.RecentLinks(c.Request.Context(), h.listLimit)
	if err != nil {
		_ = c.Error(err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})

		return
	}

	c.JSON(http.StatusOK, listLinksResponse{Links: links})
}
