package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
)

// ErrorHandler renders every error as {"error": {"code", "message"}}.
// AppErrors keep their status; anything unknown becomes a 500.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return writeError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message)
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 {
				logger.Error("request failed",
					slog.String("code", appErr.Code),
					slog.String("path", c.Path()),
					slog.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
					slog.Any("error", appErr.Err),
				)
			}
			return writeError(c, appErr.StatusCode, appErr.Code, appErr.Message)
		}

		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
			slog.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		)

		return writeError(c, fiber.StatusInternalServerError, domain.ErrInternal.Code, domain.ErrInternal.Message)
	}
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
