package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/subtrack/subtrack/internal/errs"
	"github.com/subtrack/subtrack/internal/handler/dto"
)

// writeDomainError maps a domain failure to the uniform error body
// {message, status}. Not-found renders 404, invalid input 400 (with one
// message per invalid field when available), and both conflict kinds 409.
// The body message still tells a duplicate key apart from a stale write.
// Anything unclassified is logged with full detail and rendered with a
// generic message so internal detail never leaks to the caller.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, errs.ErrInvalidInput):
		var domainErr *errs.Error
		if errors.As(err, &domainErr) && len(domainErr.Fields()) > 0 {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
				Message: domainErr.Fields(),
				Status:  http.StatusBadRequest,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrStaleWrite):
		writeError(w, http.StatusConflict, err.Error())

	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

// writeError writes a single-message error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Message: message,
		Status:  status,
	})
}
