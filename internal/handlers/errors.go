package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"wishlist/internal/apperror"
	"wishlist/pkg/errutil"
)

// ErrorHandler renders every error returned by a handler or middleware as
// the JSON error envelope. Unclassified errors are logged, never echoed.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		resp, internal := apperror.ToResponse(err)
		if internal {
			errutil.LogError(logger, "request failed", err,
				"method", c.Method(),
				"path", c.Path(),
				"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			)
		}
		return c.Status(resp.StatusCode).JSON(resp)
	}
}
