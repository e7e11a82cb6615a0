package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"minimalist-backend/internal/datauri"
	"minimalist-backend/internal/metrics"
	"minimalist-backend/internal/models"
)

type ImagesHandler struct {
	store         ImageStore
	mirror        AssetMirror
	maxUploadSize int64
	logger        *zap.Logger
}

// NewImagesHandler wires the saved-image endpoints. mirror may be nil.
func NewImagesHandler(store ImageStore, mirror AssetMirror, maxUploadSize int64, logger *zap.Logger) *ImagesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImagesHandler{
		store:         store,
		mirror:        mirror,
		maxUploadSize: maxUploadSize,
		logger:        logger.Named("images"),
	}
}

// SaveImage godoc
// @Summary     Save a generated image
// @Description Stores an image in the caller's history as a data URI.
// @Tags        images
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Image file"
// @Param       prompt formData string true "Prompt that produced the image"
// @Param       aspectRatio formData string false "Aspect ratio, defaults to 1:1"
// @Success     200 {object} models.SaveImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/images/save [post]
func (h *ImagesHandler) SaveImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	up, err := readUpload(c, "image", h.maxUploadSize)
	prompt := strings.TrimSpace(c.PostForm("prompt"))
	if err != nil || prompt == "" {
		status := http.StatusBadRequest
		message := ""
		if err != nil {
			status = uploadErrorStatus(err)
			message = err.Error()
		}
		c.JSON(status, models.ErrorResponse{Error: "Image and prompt are required", Message: message})
		return
	}

	attrs := models.ImageAttributes{
		Prompt:      prompt,
		AspectRatio: c.PostForm("aspectRatio"),
	}
	imageID, err := h.store.Create(c.Request.Context(), userID, attrs, datauri.NewAsset(up.Data, up.MIMEType))
	if err != nil {
		respondStoreError(c, "Failed to save image", err)
		return
	}
	metrics.RecordCreated(models.KindGeneratedImage)

	tempURL, isBase64, err := assetURL(c.Request.Context(), h.mirror, h.logger, userID, models.KindGeneratedImage, imageID, up)
	if err != nil {
		respondStoreError(c, "Failed to save image", err)
		return
	}

	c.JSON(http.StatusOK, models.SaveImageResponse{
		Success:  true,
		ImageID:  imageID,
		TempURL:  tempURL,
		IsBase64: isBase64,
	})
}

// ImageHistory godoc
// @Summary     List saved images
// @Description Returns the caller's saved images, newest first.
// @Tags        images
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.ImageHistoryItem
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/images/history [get]
func (h *ImagesHandler) ImageHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	images, err := h.store.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, "Failed to fetch image history", err)
		return
	}

	items := make([]models.ImageHistoryItem, 0, len(images))
	for _, img := range images {
		items = append(items, models.NewImageHistoryItem(img))
	}

	c.Header("Cache-Control", noCacheHeader)
	c.JSON(http.StatusOK, items)
}

// DeleteImage godoc
// @Summary     Delete a saved image
// @Description Removes one of the caller's images. Unknown ids and images owned by someone else are left alone and reported as not deleted.
// @Tags        images
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Image ID"
// @Success     200 {object} models.DeleteResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/images/{id} [delete]
func (h *ImagesHandler) DeleteImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	deleted, err := h.store.DeleteByOwner(c.Request.Context(), userID, id)
	if err != nil {
		respondStoreError(c, "Failed to delete image", err)
		return
	}
	if deleted {
		metrics.RecordDeleted(models.KindGeneratedImage)
		removeMirrored(c.Request.Context(), h.mirror, h.logger, userID, models.KindGeneratedImage, id)
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Success: true, Deleted: deleted})
}
