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

const homeStartingContent = "Hi Everyone."

// ==========================
// Post Handler
// ==========================
type PostHandler struct {
	Posts    *repo.PostRepo
	Comments *repo.CommentRepo
}

// ==========================
// Home (all posts, insertion order)
// ==========================
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		renderRepoError(w, r, err, "", "")
		return
	}

	renderTemplate(w, "home.html", payload(r, map[string]interface{}{
		"StartingContent": homeStartingContent,
		"Posts":           posts,
	}))
}

// ==========================
// Compose form
// ==========================
func (h *PostHandler) ComposeForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "compose.html", payload(r, nil))
}

// ==========================
// Compose (create post)
// ==========================
func (h *PostHandler) Compose(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	subject := strings.TrimSpace(r.FormValue("postSubject"))
	title := strings.TrimSpace(r.FormValue("postTitle"))
	content := strings.TrimSpace(r.FormValue("postBody"))
	if subject == "" || title == "" || content == "" {
		renderTemplate(w, "compose.html", payload(r, map[string]interface{}{
			"Error": "Subject, title and content are required",
		}))
		return
	}

	user, _ := middleware.UserFrom(r.Context())
	if _, err := h.Posts.Create(r.Context(), subject, title, content, user.ID); err != nil {
		renderRepoError(w, r, err, "", "")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Show post (detail + comments, oldest first)
// ==========================
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.Posts.GetByID(r.Context(), id)
	if err != nil {
		renderRepoError(w, r, err, "Post not found", "")
		return
	}

	comments, err := h.Comments.ListForPost(r.Context(), id)
	if err != nil {
		renderRepoError(w, r, err, "", "")
		return
	}

	user, loggedIn := middleware.UserFrom(r.Context())
	isOwner := loggedIn && post.UserID != nil && *post.UserID == user.ID

	renderTemplate(w, "post.html", payload(r, map[string]interface{}{
		"Post":     post,
		"IsOwner":  isOwner,
		"Comments": comments,
	}))
}

// ==========================
// Edit form (owner only)
// ==========================
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizePost(w, r)
	if !ok {
		return
	}

	post, err := h.Posts.GetByID(r.Context(), id)
	if err != nil {
		renderRepoError(w, r, err, "Post not found", "")
		return
	}

	renderTemplate(w, "edit.html", payload(r, map[string]interface{}{
		"Post": post,
	}))
}

// ==========================
// Edit (owner only; id and owner unchanged)
// ==========================
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizePost(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	user, _ := middleware.UserFrom(r.Context())
	err := h.Posts.Update(r.Context(), id,
		r.FormValue("postSubject"), r.FormValue("postTitle"), r.FormValue("postBody"), user.ID)
	if err != nil {
		renderRepoError(w, r, err, "Post not found", "You don't have permission to edit this post")
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusFound)
}

// ==========================
// Delete (owner only)
// ==========================
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizePost(w, r)
	if !ok {
		return
	}

	user, _ := middleware.UserFrom(r.Context())
	if err := h.Posts.Delete(r.Context(), id, user.ID); err != nil {
		renderRepoError(w, r, err, "Post not found", "You don't have permission to delete this post")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// authorizePost runs the shared ownership check for the post in the URL and
// writes the 403/404 page itself when the requester may not touch it.
func (h *PostHandler) authorizePost(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "Post not found")
		return 0, false
	}

	user, _ := middleware.UserFrom(r.Context())
	decision, err := authz.Authorize(r.Context(), h.Posts.OwnerID, id, user.ID)
	if err != nil {
		renderRepoError(w, r, err, "", "")
		return 0, false
	}

	switch decision {
	case authz.NotFound:
		renderError(w, r, http.StatusNotFound, "Post not found")
		return 0, false
	case authz.Forbidden:
		renderError(w, r, http.StatusForbidden, "You don't have permission to modify this post")
		return 0, false
	}

	return id, true
}
