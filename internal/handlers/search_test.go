package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ttttttwt/final-test/internal/repo"
)

func TestSearchHandler_EmptyQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &SearchHandler{Posts: repo.NewPostRepo(db)}

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/search", nil))

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

func TestSearchHandler_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`similarity\(title, \$1\) > 0.3`).
		WithArgs("vietnam", "%vietnam%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject", "title", "content", "user_id", "username", "title_sim", "content_sim"}).
			AddRow(1, "Travel", "Visit Vietnam", "Beautiful country.", 1, "twwt", 0.6, 0.1))

	h := &SearchHandler{Posts: repo.NewPostRepo(db)}

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/search?query=vietnam", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Visit Vietnam") {
		t.Errorf("expected the matching post in the results page")
	}
	if !strings.Contains(body, "vietnam") {
		t.Errorf("expected the query echoed on the results page")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
