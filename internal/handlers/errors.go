package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ttttttwt/final-test/internal/repo"
)

// ErrMessageInternal is the generic message for 500 pages. Do not expose internal details to visitors.
const ErrMessageInternal = "Something went wrong"

// renderError renders the shared error page with the given status.
func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderStatus(w, status, "error.html", payload(r, map[string]interface{}{
		"Status":  status,
		"Message": message,
	}))
}

// renderRepoError maps a persistence error onto the unified error page:
// ErrNotFound -> 404, ErrForbidden -> 403, anything else is logged and
// surfaced as a generic 500.
func renderRepoError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, forbiddenMsg string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		renderError(w, r, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repo.ErrForbidden):
		renderError(w, r, http.StatusForbidden, forbiddenMsg)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		renderError(w, r, http.StatusInternalServerError, ErrMessageInternal)
	}
}
