package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"wikitree/internal/domain"
	"wikitree/internal/domain/models/tree"
	"wikitree/internal/httputil"
)

// handleError converts domain errors to RFC 7807 responses carrying the error code
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflictErr *domain.ConflictError
	code := domain.CodeOf(err)

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondProblem(w, http.StatusBadRequest, err.Error(), code)
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondProblem(w, http.StatusNotFound, err.Error(), code)
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondProblem(w, http.StatusUnauthorized, err.Error(), code)
	case errors.As(err, &conflictErr):
		httputil.RespondProblem(w, http.StatusConflict, conflictErr.Error(), code)
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondProblem(w, http.StatusInternalServerError, "internal server error", code)
	}
}

// respondOperation writes a mutation result. Failed operations keep the
// result as the body and take their status from the error.
func respondOperation(w http.ResponseWriter, logger *slog.Logger, status int, result *tree.OperationResult, err error) {
	if err == nil {
		httputil.RespondJSON(w, status, result)
		return
	}
	if result == nil {
		handleError(w, logger, err)
		return
	}
	httputil.RespondJSON(w, domain.StatusOf(err), result)
}
