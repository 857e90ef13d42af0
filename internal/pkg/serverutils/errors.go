package serverutils

import "github.com/gofiber/fiber/v2"

// HttpError carries the status the ErrorHandler should answer with.
type HttpError struct {
	Code    int
	Message string
}

func (e *HttpError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: fiber.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *HttpError {
	return &HttpError{Code: fiber.StatusUnauthorized, Message: message}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: fiber.StatusNotFound, Message: message}
}

func NewConflictError(message string) *HttpError {
	return &HttpError{Code: fiber.StatusConflict, Message: message}
}
