package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ttttttwt/final-test/internal/config"
	"github.com/ttttttwt/final-test/internal/handlers"
	"github.com/ttttttwt/final-test/internal/middleware"
	"github.com/ttttttwt/final-test/internal/repo"
	"github.com/ttttttwt/final-test/internal/session"
	"golang.org/x/time/rate"
)

// newRouter builds the full site router. Split out of main so the integration
// tests can stand the whole thing up against a mocked database.
func newRouter(db *sql.DB, cfg config.Config, mailer handlers.ContactMailer) *chi.Mux {
	sessions := session.NewStore(db, time.Duration(cfg.SessionTTLHours)*time.Hour)

	auth := &handlers.AuthHandler{Users: repo.NewUserRepo(db), Sessions: sessions}
	posts := &handlers.PostHandler{Posts: repo.NewPostRepo(db), Comments: repo.NewCommentRepo(db)}
	comments := &handlers.CommentHandler{Comments: repo.NewCommentRepo(db)}
	search := &handlers.SearchHandler{Posts: repo.NewPostRepo(db)}
	contact := &handlers.ContactHandler{Mailer: mailer}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.LoadSession(sessions))

	// Health (no templates)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public pages
	r.Get("/", posts.Home)
	r.Get("/about", contact.About)
	r.Get("/contact", contact.Page)
	r.Get("/posts/{postID}", posts.Show)
	r.Get("/search", search.Search)
	r.Get("/login", auth.LoginForm)
	r.Get("/register", auth.RegisterForm)
	r.Get("/logout", auth.Logout)

	// Abuse-prone form posts get a per-IP limiter on top of the body cap.
	limiter := middleware.NewIPRateLimiter(rate.Limit(10.0/60.0), 10)
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Use(limiter.Middleware)
		r.Post("/login", auth.Login)
		r.Post("/register", auth.Register)
		r.Post("/contact", contact.Send)
	})

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Get("/compose", posts.ComposeForm)
		r.Post("/compose", posts.Compose)
		r.Get("/edit/{postID}", posts.EditForm)
		r.Post("/edit/{postID}", posts.Edit)
		r.Get("/delete/{postID}", posts.Delete)
		r.Post("/posts/{postID}/comments", comments.Add)
		r.Get("/comments/{commentID}/edit", comments.EditForm)
		r.Post("/comments/{commentID}", comments.Update)
		r.Post("/comments/{commentID}/delete", comments.Delete)
	})

	return r
}
