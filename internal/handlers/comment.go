package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ttttttwt/final-test/internal/authz"
	"github.com/ttttttwt/final-test/internal/middleware"
	"github.com/ttttttwt/final-test/internal/repo"
)

// ==========================
// Comment Handler
// ==========================
type CommentHandler struct {
	Comments *repo.CommentRepo
}

// ==========================
// Add comment
// ==========================
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	content := r.FormValue("commentContent")

	// Empty comments are dropped with a plain redirect, no error. Longstanding
	// behavior the site's users expect.
	if strings.TrimSpace(content) == "" {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusFound)
		return
	}

	user, _ := middleware.UserFrom(r.Context())
	if err := h.Comments.Create(r.Context(), content, user.ID, postID); err != nil {
		renderRepoError(w, r, err, "", "")
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusFound)
}

// ==========================
// Edit form (owner only)
// ==========================
func (h *CommentHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeComment(w, r)
	if !ok {
		return
	}

	comment, err := h.Comments.GetByID(r.Context(), id)
	if err != nil {
		renderRepoError(w, r, err, "Comment not found", "")
		return
	}

	renderTemplate(w, "edit_comment.html", payload(r, map[string]interface{}{
		"Comment": comment,
	}))
}

// ==========================
// Update comment (owner only; marks it edited)
// ==========================
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeComment(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	user, _ := middleware.UserFrom(r.Context())
	postID, err := h.Comments.Update(r.Context(), id, r.FormValue("commentContent"), user.ID)
	if err != nil {
		renderRepoError(w, r, err, "Comment not found", "You don't have permission to edit this comment")
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusFound)
}

// ==========================
// Delete comment (owner only)
// ==========================
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeComment(w, r)
	if !ok {
		return
	}

	user, _ := middleware.UserFrom(r.Context())
	postID, err := h.Comments.Delete(r.Context(), id, user.ID)
	if err != nil {
		renderRepoError(w, r, err, "Comment not found", "You don't have permission to delete this comment")
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusFound)
}

// authorizeComment runs the shared ownership check for the comment in the URL.
func (h *CommentHandler) authorizeComment(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "commentID"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "Comment not found")
		return 0, false
	}

	user, _ := middleware.UserFrom(r.Context())
	decision, err := authz.Authorize(r.Context(), h.Comments.OwnerID, id, user.ID)
	if err != nil {
		renderRepoError(w, r, err, "", "")
		return 0, false
	}

	switch decision {
	case authz.NotFound:
		renderError(w, r, http.StatusNotFound, "Comment not found")
		return 0, false
	case authz.Forbidden:
		renderError(w, r, http.StatusForbidden, "You don't have permission to modify this comment")
		return 0, false
	}

	return id, true
}
