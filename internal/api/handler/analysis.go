package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
)

const (
	defaultMaxImageSize = 10 * 1024 * 1024 // 10MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// AnalysisService interface for the service
type AnalysisService interface {
	Analyze(ctx context.Context, imageBytes []byte, band string) (*domain.Analysis, error)
}

// AnalysisHandler handles photo analysis requests
type AnalysisHandler struct {
	service      AnalysisService
	logger       *slog.Logger
	maxImageSize int64
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(service AnalysisService, logger *slog.Logger, maxImageSize int64) *AnalysisHandler {
	if maxImageSize <= 0 {
		maxImageSize = defaultMaxImageSize
	}
	return &AnalysisHandler{
		service:      service,
		logger:       logger,
		maxImageSize: maxImageSize,
	}
}

// Analyze POST /v1/analyze - classify the face and recommend styles
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	// 1. Extract and validate image
	imageBytes, err := h.extractAndValidateImage(c)
	if err != nil {
		return err
	}

	// 2. Optional age band
	band := strings.TrimSpace(c.FormValue("age_band"))

	// 3. Run the pipeline
	analysis, err := h.service.Analyze(c.Context(), imageBytes, band)
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// extractAndValidateImage extracts and validates the image from the form
func (h *AnalysisHandler) extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	// 1. Extract file
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("image is required"))
	}

	// 2. Validate size
	if file.Size > h.maxImageSize || file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	// 3. Validate Content-Type
	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(errors.New("unsupported content type " + contentType))
	}

	// 4. Read image bytes
	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}
