package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://goalplan.dev/errors/validation"
	ErrorTypeNotFound     = "https://goalplan.dev/errors/not-found"
	ErrorTypeUnauthorized = "https://goalplan.dev/errors/unauthorized"
	ErrorTypeRateLimit    = "https://goalplan.dev/errors/rate-limit"
	ErrorTypeInternal     = "https://goalplan.dev/errors/internal"
	ErrorTypeHTTP         = "about:blank"
)

func problem(c echo.Context, status int, typ, title, detail string, errs []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     typ,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errs,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errs []ValidationError) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail, errs)
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail, nil)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail, nil)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail, nil)
}

// respondError maps domain errors onto problem responses. Unknown errors
// are logged and reported without their message.
func respondError(c echo.Context, err error) error {
	if verrs, ok := domain.AsValidationErrors(err); ok {
		fields := make([]ValidationError, len(verrs))
		for i, v := range verrs {
			fields[i] = ValidationError{Field: v.Field, Message: v.Message}
		}
		return NewValidationError(c, "The request contains invalid values", fields)
	}

	switch {
	case errors.Is(err, domain.ErrUnknownGoalType):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, domain.ErrPlanNotFound):
		return NewNotFoundError(c, "No plan is saved for this goal")
	case errors.Is(err, domain.ErrUserIDRequired):
		return NewUnauthorizedError(c, "The X-User-ID header is required")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Request failed")
	return NewInternalError(c, "An unexpected error occurred")
}

// httpErrorHandler renders errors that escape handlers, such as unknown
// routes and panics caught by Recover, as problem details.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok {
			detail = msg
		}
		if werr := problem(c, he.Code, ErrorTypeHTTP, http.StatusText(he.Code), detail, nil); werr != nil {
			log.Error().Err(werr).Msg("Failed to write error response")
		}
		return
	}

	if werr := respondError(c, err); werr != nil {
		log.Error().Err(werr).Msg("Failed to write error response")
	}
}
