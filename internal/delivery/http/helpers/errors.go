package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventcoord/internal/domain"
)

// WriteDomainError maps a coordinator error to its HTTP status and error code.
// Unmapped errors are logged and reported as 500.
func WriteDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusForError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, r, status, code, "internal server error")
		return
	}
	WriteJSONError(w, r, status, code, err.Error())
}

// StatusForError returns the HTTP status and error code for err.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrDateConflict),
		errors.Is(err, domain.ErrStaffUnavailable),
		errors.Is(err, domain.ErrDuplicateInvite),
		errors.Is(err, domain.ErrDuplicateCustomer),
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrIneligibleCustomer):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}
