package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/ttttttwt/final-test/internal/middleware"
	"github.com/ttttttwt/final-test/internal/repo"
)

func newPostRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &PostHandler{Posts: repo.NewPostRepo(db), Comments: repo.NewCommentRepo(db)}

	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/posts/{postID}", h.Show)
	r.Post("/edit/{postID}", h.Edit)
	r.Get("/delete/{postID}", h.Delete)
	return r, mock, func() { db.Close() }
}

func asUser(req *http.Request, id int, username string) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(),
		middleware.SessionUser{ID: id, Username: username, Token: "tok"}))
}

func TestPostHandler_Home(t *testing.T) {
	r, mock, closeDB := newPostRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT posts.id, posts.subject, posts.title`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject", "title", "content", "user_id", "username"}).
			AddRow(1, "Travel", "Visit Vietnam", "Beautiful country.", 1, "twwt"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Visit Vietnam") {
		t.Errorf("expected the post title on the home page")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_Show_NotFound(t *testing.T) {
	r, mock, closeDB := newPostRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT posts.id, posts.subject, posts.title`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/42", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_Edit_NotOwner(t *testing.T) {
	r, mock, closeDB := newPostRouter(t)
	defer closeDB()

	// The post belongs to user 3; user 1 asks to edit it.
	mock.ExpectQuery(`SELECT user_id FROM posts`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3))

	req := asUser(postForm("/edit/7", "postSubject=s&postTitle=t&postBody=b"), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "permission") {
		t.Errorf("expected a permission message in the error page")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_Edit_UnownedPost(t *testing.T) {
	r, mock, closeDB := newPostRouter(t)
	defer closeDB()

	// Posts with no owner cannot be edited by anyone.
	mock.ExpectQuery(`SELECT user_id FROM posts`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(nil))

	req := asUser(postForm("/edit/7", "postSubject=s&postTitle=t&postBody=b"), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_Delete_NotFound(t *testing.T) {
	r, mock, closeDB := newPostRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT user_id FROM posts`).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	req := asUser(httptest.NewRequest(http.MethodGet, "/delete/404", nil), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	r, mock, closeDB := newPostRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT user_id FROM posts`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := asUser(httptest.NewRequest(http.MethodGet, "/delete/7", nil), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect: got %q, want /", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
