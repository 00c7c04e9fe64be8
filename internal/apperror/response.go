package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// genericMessage is what clients see for any unclassified failure.
const genericMessage = "An unexpected error occurred"

// Response is the uniform error envelope.
type Response struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	ErrorType  string `json:"error_type,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// ToResponse maps err onto its envelope. The second return value is true
// when err was not a classified domain error and must be logged by the
// caller; its text is never copied into the response.
func ToResponse(err error) (Response, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return Response{
			Error:      true,
			StatusCode: domainErr.Kind.Status(),
			Message:    domainErr.Message,
			ErrorType:  string(domainErr.Kind),
			Details:    domainErr.Details,
		}, false
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Response{
			Error:      true,
			StatusCode: fiberErr.Code,
			Message:    fiberErr.Message,
			ErrorType:  "HTTPException",
		}, fiberErr.Code >= fiber.StatusInternalServerError
	}

	return Response{
		Error:      true,
		StatusCode: fiber.StatusInternalServerError,
		Message:    genericMessage,
		ErrorType:  string(KindInternal),
	}, true
}
