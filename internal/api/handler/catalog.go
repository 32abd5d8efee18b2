package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
)

// CatalogService interface for the catalog cache control surface
type CatalogService interface {
	Status() catalog.Status
	Refresh(ctx context.Context) (catalog.Status, error)
	Styles(ctx context.Context, shape, band string) (catalog.Listing, error)
}

// CatalogHandler handles catalog status, refresh and browse requests
type CatalogHandler struct {
	service CatalogService
	logger  *slog.Logger
}

func NewCatalogHandler(service CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// StylesResponse response for the browse endpoint
type StylesResponse struct {
	Shape   string               `json:"shape"`
	AgeBand string               `json:"age_band,omitempty"`
	Version uint64               `json:"version"`
	Styles  []catalog.StyleEntry `json:"styles"`
}

// Status GET /v1/catalog/status
func (h *CatalogHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// Refresh POST /v1/catalog/refresh - a failed listing answers 503 with the
// degraded status; the previous snapshot keeps serving
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	status, err := h.service.Refresh(c.Context())
	if err != nil {
		h.logger.Warn("forced catalog refresh failed",
			"error", err,
			"version", status.Version,
		)
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}

	h.logger.Info("catalog refreshed on request",
		"version", status.Version,
		"entries", status.EntryCount,
	)
	return c.JSON(status)
}

// Styles GET /v1/catalog/styles?shape=&age_band=
func (h *CatalogHandler) Styles(c *fiber.Ctx) error {
	shape := strings.TrimSpace(c.Query("shape"))
	if shape == "" {
		return domain.ErrInvalidFaceShape.WithError(nil)
	}
	band := strings.TrimSpace(c.Query("age_band"))

	listing, err := h.service.Styles(c.Context(), shape, band)
	if err != nil {
		return err
	}

	return c.JSON(StylesResponse{
		Shape:   shape,
		AgeBand: band,
		Version: listing.Version,
		Styles:  listing.Styles,
	})
}
