package serverutils

import (
	"errors"

	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/document"
	"faq-chatbot-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler builds the fiber.Config ErrorHandler. Anything it does not
// recognise is answered with a generic 500 and logged.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var httpErr *HttpError
		var fiberErr *fiber.Error
		var validationErr *ValidationError

		switch {
		case errors.As(err, &httpErr):
			return ctx.Status(httpErr.Code).JSON(ErrorResponse(httpErr.Code, httpErr.Message))
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(&Response[map[string]string]{
				Code:    fiber.StatusBadRequest,
				Message: "validation failed",
				Data:    validationErr.Fields,
			})
		case errors.Is(err, document.ErrUnsupportedFormat), errors.Is(err, document.ErrEmptyDocument):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		}
		if errors.Is(err, rag.ErrServiceFailure) {
			details["kind"] = "service_failure"
		}
		log.Error("HTTP", "Unhandled request error", details)

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "something went wrong"))
	}
}
