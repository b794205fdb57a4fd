package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"parcelhub/internal/pkg/errs"
)

// Reasons returned in ErrorResponse.Reason.
const (
	ReasonInvalidTransition = "invalid_transition"
	ReasonNotFound          = "not_found"
	ReasonForbidden         = "forbidden"
	ReasonConflict          = "conflict"
	ReasonValidation        = "validation"
	ReasonUnauthenticated   = "unauthenticated"
	ReasonRateLimited       = "rate_limited"
	ReasonInternal          = "internal"
)

type ErrorResponse struct {
	Code       int              `json:"code"`
	Reason     string           `json:"reason"`
	Message    string           `json:"message"`
	Rejections []RejectionEntry `json:"rejections,omitempty"`
}

// RejectionEntry explains why one item of a batch request was refused.
type RejectionEntry struct {
	ID      string `json:"id"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// classify maps an error to its HTTP status and reason.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, ReasonInvalidTransition
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ReasonNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, ReasonForbidden
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, ReasonConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, ReasonValidation
	default:
		return http.StatusInternalServerError, ReasonInternal
	}
}

// newErrorResponse builds the body for err. A batch rejection takes the
// status of its first rejection and lists every offending id.
func newErrorResponse(err error) ErrorResponse {
	var rejected *errs.RejectedError
	if errors.As(err, &rejected) && len(rejected.Rejections) > 0 {
		code, reason := classify(rejected.Rejections[0].Reason)
		resp := ErrorResponse{Code: code, Reason: reason, Message: rejected.Error()}
		for _, r := range rejected.Rejections {
			_, itemReason := classify(r.Reason)
			resp.Rejections = append(resp.Rejections, RejectionEntry{
				ID:      r.ID,
				Reason:  itemReason,
				Message: r.Reason.Error(),
			})
		}
		return resp
	}

	code, reason := classify(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	return ErrorResponse{Code: code, Reason: reason, Message: msg}
}

func (s *Server) fail(c echo.Context, err error) error {
	resp := newErrorResponse(err)
	if resp.Code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}
	return c.JSON(resp.Code, resp)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Reason:  ReasonValidation,
		Message: message,
	})
}
