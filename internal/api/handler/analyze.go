package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
)

const (
	defaultMaxImageSize = 16 * 1024 * 1024 // 16MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

// AnalysisService interface for the service
type AnalysisService interface {
	Analyze(ctx context.Context, imageBytes []byte, actualAge *int) (*domain.SkinReport, error)
}

// AnalyzeHandler serves skin analyses
type AnalyzeHandler struct {
	service      AnalysisService
	logger       *slog.Logger
	maxImageSize int64
}

// NewAnalyzeHandler creates a new AnalyzeHandler; a non-positive
// maxImageSize selects the 16MB default.
func NewAnalyzeHandler(service AnalysisService, logger *slog.Logger, maxImageSize int64) *AnalyzeHandler {
	if maxImageSize <= 0 {
		maxImageSize = defaultMaxImageSize
	}
	return &AnalyzeHandler{
		service:      service,
		logger:       logger,
		maxImageSize: maxImageSize,
	}
}

// Analyze POST /v1/analyze - analyze the skin of the largest face in an image
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	actualAge, err := parseActualAge(c.FormValue("actual_age"))
	if err != nil {
		return err
	}

	imageBytes, err := h.extractAndValidateImage(c)
	if err != nil {
		return err
	}

	report, err := h.service.Analyze(c.UserContext(), imageBytes, actualAge)
	if err != nil {
		h.logger.Warn("skin analysis failed",
			slog.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			slog.Any("error", err),
		)
		return err
	}

	return c.JSON(report)
}

// parseActualAge reads the optional actual_age form field
func parseActualAge(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("actual_age must be an integer: %w", err))
	}
	if age < 0 || age > analyzer.MaxAge {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("actual_age must be between 0 and %d", analyzer.MaxAge))
	}
	return &age, nil
}

// extractAndValidateImage extracts and validates the image from the form
func (h *AnalyzeHandler) extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if file.Size > h.maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("image exceeds %d bytes", h.maxImageSize))
	}

	if file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(errors.New("empty image"))
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("unsupported content type %q", contentType))
	}

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
