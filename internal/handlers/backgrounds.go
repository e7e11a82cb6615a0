package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"minimalist-backend/internal/datauri"
	"minimalist-backend/internal/metrics"
	"minimalist-backend/internal/models"
	"minimalist-backend/internal/removebg"
)

type BackgroundsHandler struct {
	remover       removebg.Remover
	store         BackgroundStore
	mirror        AssetMirror
	maxUploadSize int64
	logger        *zap.Logger
}

func NewBackgroundsHandler(remover removebg.Remover, store BackgroundStore, mirror AssetMirror, maxUploadSize int64, logger *zap.Logger) *BackgroundsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackgroundsHandler{
		remover:       remover,
		store:         store,
		mirror:        mirror,
		maxUploadSize: maxUploadSize,
		logger:        logger.Named("backgrounds"),
	}
}

// RemoveBackground godoc
// @Summary     Remove an image background
// @Description Returns a PNG cut-out of the uploaded image. Nothing is persisted.
// @Tags        backgrounds
// @Accept      multipart/form-data
// @Produce     image/png
// @Security    Bearer
// @Param       image_file formData file true "Source image"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/backgrounds/remove [post]
func (h *BackgroundsHandler) RemoveBackground(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	up, err := readUpload(c, "image_file", h.maxUploadSize)
	if err != nil {
		c.JSON(uploadErrorStatus(err), models.ErrorResponse{Error: "Image file is required", Message: err.Error()})
		return
	}

	img, err := h.remover.Remove(c.Request.Context(), up.Filename, up.Data)
	metrics.Generation(models.KindBackgroundRemoval, err)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, removebg.ErrEmptyImage) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Image file is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to remove background"})
		return
	}

	c.Header("Cache-Control", noCacheHeader)
	c.Data(http.StatusOK, img.MIMEType, img.Data)
}

// SaveBackground godoc
// @Summary     Save a background removal
// @Description Stores a processed image in the caller's history as a data URI.
// @Tags        backgrounds
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Processed image"
// @Param       prompt formData string false "Label, defaults to 'Background removed image'"
// @Success     200 {object} models.SaveImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/backgrounds/save [post]
func (h *BackgroundsHandler) SaveBackground(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	up, err := readUpload(c, "image", h.maxUploadSize)
	if err != nil {
		c.JSON(uploadErrorStatus(err), models.ErrorResponse{Error: "Image is required", Message: err.Error()})
		return
	}

	attrs := models.BackgroundAttributes{Prompt: strings.TrimSpace(c.PostForm("prompt"))}
	imageID, err := h.store.Create(c.Request.Context(), userID, attrs, datauri.NewAsset(up.Data, up.MIMEType))
	if err != nil {
		respondStoreError(c, "Failed to save background", err)
		return
	}
	metrics.RecordCreated(models.KindBackgroundRemoval)

	tempURL, isBase64, err := assetURL(c.Request.Context(), h.mirror, h.logger, userID, models.KindBackgroundRemoval, imageID, up)
	if err != nil {
		respondStoreError(c, "Failed to save background", err)
		return
	}

	c.JSON(http.StatusOK, models.SaveImageResponse{
		Success:  true,
		ImageID:  imageID,
		TempURL:  tempURL,
		IsBase64: isBase64,
	})
}

// BackgroundHistory godoc
// @Summary     List saved background removals
// @Tags        backgrounds
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.BackgroundHistoryItem
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/backgrounds/history [get]
func (h *BackgroundsHandler) BackgroundHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := h.store.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, "Failed to fetch background history", err)
		return
	}

	items := make([]models.BackgroundHistoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, models.NewBackgroundHistoryItem(record))
	}

	c.Header("Cache-Control", noCacheHeader)
	c.JSON(http.StatusOK, items)
}

// DeleteBackground godoc
// @Summary     Delete a saved background removal
// @Tags        backgrounds
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Record ID"
// @Success     200 {object} models.DeleteResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/backgrounds/{id} [delete]
func (h *BackgroundsHandler) DeleteBackground(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	deleted, err := h.store.DeleteByOwner(c.Request.Context(), userID, id)
	if err != nil {
		respondStoreError(c, "Failed to delete background", err)
		return
	}
	if deleted {
		metrics.RecordDeleted(models.KindBackgroundRemoval)
		removeMirrored(c.Request.Context(), h.mirror, h.logger, userID, models.KindBackgroundRemoval, id)
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Success: true, Deleted: deleted})
}
