package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"minimalist-backend/internal/contentgen"
	"minimalist-backend/internal/metrics"
	"minimalist-backend/internal/models"
)

type ContentHandler struct {
	generator ContentGenerator
	store     ContentStore
}

// NewContentHandler wires the content endpoints. A nil generator disables
// POST /api/content/generate.
func NewContentHandler(generator ContentGenerator, store ContentStore) *ContentHandler {
	return &ContentHandler{
		generator: generator,
		store:     store,
	}
}

// GenerateContent godoc
// @Summary     Generate marketing copy
// @Description Generates a heading, subheading or paragraph for the given context. Nothing is persisted.
// @Tags        content
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateContentRequest true "Content parameters"
// @Success     200 {object} models.GenerateContentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /api/content/generate [post]
func (h *ContentHandler) GenerateContent(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "content generation is not configured"})
		return
	}

	var req models.GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Context) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Context is required"})
		return
	}

	content, err := h.generator.Generate(c.Request.Context(), req)
	metrics.Generation(models.KindGeneratedContent, err)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, contentgen.ErrEmptyContext) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Context is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate content"})
		return
	}

	c.JSON(http.StatusOK, models.GenerateContentResponse{Content: content})
}

// SaveContent godoc
// @Summary     Save generated content
// @Tags        content
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SaveContentRequest true "Content to save"
// @Success     200 {object} models.SaveContentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/content/save [post]
func (h *ContentHandler) SaveContent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Content is required"})
		return
	}

	contentID, err := h.store.Create(c.Request.Context(), userID, models.ContentAttributes{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
	})
	if err != nil {
		respondStoreError(c, "Failed to save content", err)
		return
	}
	metrics.RecordCreated(models.KindGeneratedContent)

	c.JSON(http.StatusOK, models.SaveContentResponse{Success: true, ContentID: contentID})
}

// ContentHistory godoc
// @Summary     List saved content
// @Tags        content
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.ContentHistoryItem
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/content/history [get]
func (h *ContentHandler) ContentHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := h.store.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, "Failed to fetch content history", err)
		return
	}

	items := make([]models.ContentHistoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, models.NewContentHistoryItem(record))
	}

	c.Header("Cache-Control", noCacheHeader)
	c.JSON(http.StatusOK, items)
}

// DeleteContent godoc
// @Summary     Delete saved content
// @Tags        content
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Content ID"
// @Success     200 {object} models.DeleteResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/content/{id} [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteByOwner(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondStoreError(c, "Failed to delete content", err)
		return
	}
	if deleted {
		metrics.RecordDeleted(models.KindGeneratedContent)
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Success: true, Deleted: deleted})
}
