package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"minimalist-backend/internal/datauri"
	"minimalist-backend/internal/gateway"
	"minimalist-backend/internal/middleware"
	"minimalist-backend/internal/models"
)

const noCacheHeader = "no-cache, no-store, must-revalidate"

// multipartOverhead is the room left for boundaries, part headers and plain
// form fields on top of the file size limit.
const multipartOverhead = 1 << 20

type ImageStore interface {
	Create(ctx context.Context, userID string, attrs models.ImageAttributes, asset *datauri.Asset) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.GeneratedImage, error)
	DeleteByOwner(ctx context.Context, userID, id string) (bool, error)
}

type BackgroundStore interface {
	Create(ctx context.Context, userID string, attrs models.BackgroundAttributes, asset *datauri.Asset) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.BackgroundRemoval, error)
	DeleteByOwner(ctx context.Context, userID, id string) (bool, error)
}

type ContentStore interface {
	Create(ctx context.Context, userID string, attrs models.ContentAttributes) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.GeneratedContent, error)
	DeleteByOwner(ctx context.Context, userID, id string) (bool, error)
}

// AssetMirror copies saved image bytes to object storage.
type AssetMirror interface {
	Upload(ctx context.Context, userID, kind, recordID string, data []byte, mimeType string) (string, error)
	Delete(ctx context.Context, userID, kind, recordID string) error
}

type ContentGenerator interface {
	Generate(ctx context.Context, req models.GenerateContentRequest) (string, error)
}

var (
	errFileMissing  = errors.New("file is missing")
	errFileTooLarge = errors.New("file is too large")
)

type upload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// currentUser aborts with 401 when the request carries no identity.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// readUpload caps the request body before the multipart form is parsed, so an
// oversized upload is rejected without being read in full.
func readUpload(c *gin.Context, field string, maxSize int64) (*upload, error) {
	bodyLimit := maxSize + multipartOverhead
	if c.Request.ContentLength > bodyLimit {
		return nil, errFileTooLarge
	}
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)
	}

	header, err := c.FormFile(field)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errFileTooLarge
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errFileMissing
		}
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	if header.Size > maxSize {
		return nil, errFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, errFileTooLarge
	}
	if len(data) == 0 {
		return nil, errFileMissing
	}

	return &upload{
		Filename: header.Filename,
		MIMEType: datauri.ResolveMIMEType(header.Header.Get("Content-Type"), data),
		Data:     data,
	}, nil
}

func uploadErrorStatus(err error) int {
	if errors.Is(err, errFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// respondStoreError maps gateway and encoding failures to an HTTP status and
// records err on the context for the request logger.
func respondStoreError(c *gin.Context, message string, err error) {
	_ = c.Error(err)

	var validationErr *gateway.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: message, Message: validationErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: message})
}

// assetURL returns the mirrored object URL when a mirror is configured and the
// upload succeeds, otherwise the asset as a data URI. The bool reports whether
// the URL is a data URI.
func assetURL(ctx context.Context, mirror AssetMirror, logger *zap.Logger, userID, kind, recordID string, up *upload) (string, bool, error) {
	if mirror != nil {
		url, err := mirror.Upload(ctx, userID, kind, recordID, up.Data, up.MIMEType)
		if err == nil {
			return url, false, nil
		}
		logger.Warn("Failed to mirror asset, falling back to data URI",
			zap.String("kind", kind),
			zap.String("user_id", userID),
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}

	uri, err := datauri.Encode(up.Data, up.MIMEType)
	if err != nil {
		return "", false, err
	}
	return uri, true, nil
}

func removeMirrored(ctx context.Context, mirror AssetMirror, logger *zap.Logger, userID, kind, recordID string) {
	if mirror == nil {
		return
	}
	if err := mirror.Delete(ctx, userID, kind, recordID); err != nil {
		logger.Warn("Failed to remove mirrored asset",
			zap.String("kind", kind),
			zap.String("user_id", userID),
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}
}
