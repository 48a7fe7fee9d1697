package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/ttttttwt/final-test/internal/repo"
)

func newCommentRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &CommentHandler{Comments: repo.NewCommentRepo(db)}

	r := chi.NewRouter()
	r.Post("/posts/{postID}/comments", h.Add)
	r.Post("/comments/{commentID}", h.Update)
	r.Post("/comments/{commentID}/delete", h.Delete)
	return r, mock, func() { db.Close() }
}

func TestCommentHandler_Add(t *testing.T) {
	r, mock, closeDB := newCommentRouter(t)
	defer closeDB()

	mock.ExpectExec(`INSERT INTO comments`).
		WithArgs("nice post", 1, 5).
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := asUser(postForm("/posts/5/comments", "commentContent=nice+post"), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/posts/5" {
		t.Errorf("redirect: got %q, want /posts/5", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_Add_EmptyContent(t *testing.T) {
	r, mock, closeDB := newCommentRouter(t)
	defer closeDB()

	// No INSERT expectation: a blank comment must not touch the database.
	req := asUser(postForm("/posts/5/comments", "commentContent=++%0A+"), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/posts/5" {
		t.Errorf("redirect: got %q, want /posts/5", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_Update(t *testing.T) {
	r, mock, closeDB := newCommentRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT user_id FROM comments`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
	mock.ExpectQuery(`UPDATE comments`).
		WithArgs("edited text", 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow(5))

	req := asUser(postForm("/comments/3", "commentContent=edited+text"), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/posts/5" {
		t.Errorf("redirect: got %q, want /posts/5", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_Update_NotOwner(t *testing.T) {
	r, mock, closeDB := newCommentRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT user_id FROM comments`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(99))

	req := asUser(postForm("/comments/3", "commentContent=hijack"), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_Delete(t *testing.T) {
	r, mock, closeDB := newCommentRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT user_id FROM comments`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
	mock.ExpectQuery(`DELETE FROM comments`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow(5))

	req := asUser(postForm("/comments/3/delete", ""), 1, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/posts/5" {
		t.Errorf("redirect: got %q, want /posts/5", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
