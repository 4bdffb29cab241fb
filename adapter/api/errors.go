package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

// Error codes returned in the error body.
const (
	CodeNotFound              = "NOT_FOUND"
	CodeQueueEmpty            = "QUEUE_EMPTY"
	CodeNoMatchingAppointment = "NO_MATCHING_APPOINTMENT"
	CodeInvalidStatus         = "INVALID_STATUS"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeNotADoctor            = "NOT_A_DOCTOR"
	CodeConflict              = "CONFLICT"
	CodeInternal              = "INTERNAL"
)

// APIError represents an API error.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type errorBody struct {
	Error *APIError `json:"error"`
}

// toAPIError maps err onto the error contract. The sub-kinds of an empty
// queue are checked before the general not-found kinds.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	status, code := http.StatusInternalServerError, CodeInternal
	switch {
	case errors.Is(err, domain.ErrNoMatchingAppointment):
		status, code = http.StatusNotFound, CodeNoMatchingAppointment
	case errors.Is(err, domain.ErrQueueEmpty):
		status, code = http.StatusNotFound, CodeQueueEmpty
	case errors.Is(err, sharedDomain.ErrNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrInvalidStatus):
		status, code = http.StatusBadRequest, CodeInvalidStatus
	case errors.Is(err, domain.ErrNotADoctor):
		status, code = http.StatusBadRequest, CodeNotADoctor
	case errors.Is(err, sharedDomain.ErrInvalidInput):
		status, code = http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, sharedDomain.ErrConflict):
		status, code = http.StatusConflict, CodeConflict
	}

	if code == CodeInternal {
		return &APIError{Status: status, Code: code, Message: "internal server error"}
	}
	return &APIError{Status: status, Code: code, Message: err.Error()}
}

// writeError writes the error body for err. Internal failures are logged
// and their details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	apiErr := toAPIError(err)
	if apiErr.Code == CodeInternal {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, apiErr.Status, errorBody{Error: apiErr})
}

func invalidInput(format string, args ...any) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}
