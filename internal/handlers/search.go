package handlers

import (
	"net/http"

	"github.com/ttttttwt/final-test/internal/repo"
)

// ==========================
// Search Handler
// ==========================
type SearchHandler struct {
	Posts *repo.PostRepo
}

// ==========================
// Search (trigram + substring; empty query goes home)
// ==========================
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	results, err := h.Posts.Search(r.Context(), query)
	if err != nil {
		renderRepoError(w, r, err, "", "")
		return
	}

	renderTemplate(w, "search_results.html", payload(r, map[string]interface{}{
		"Query":        query,
		"Results":      results,
		"ResultsCount": len(results),
	}))
}
