package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"minimalist-backend/internal/imagen"
	"minimalist-backend/internal/metrics"
	"minimalist-backend/internal/models"
)

type GenerateHandler struct {
	generator imagen.Generator
	logger    *zap.Logger
}

func NewGenerateHandler(generator imagen.Generator, logger *zap.Logger) *GenerateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateHandler{
		generator: generator,
		logger:    logger.Named("generate"),
	}
}

// GenerateImage godoc
// @Summary     Generate an image
// @Description Generates an image from a text prompt and returns the raw bytes. Nothing is persisted.
// @Tags        images
// @Accept      json
// @Produce     image/jpeg
// @Produce     image/png
// @Security    Bearer
// @Param       request body models.GenerateImageRequest true "Prompt and aspect ratio"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/generate [post]
func (h *GenerateHandler) GenerateImage(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Prompt is required"})
		return
	}

	img, err := h.generator.Generate(c.Request.Context(), req.Prompt, req.AspectRatio)
	metrics.Generation(models.KindGeneratedImage, err)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, imagen.ErrEmptyPrompt) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Prompt is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate image"})
		return
	}

	c.Header("Cache-Control", noCacheHeader)
	c.Data(http.StatusOK, img.MIMEType, img.Data)
}
