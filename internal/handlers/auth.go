package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ttttttwt/final-test/internal/middleware"
	"github.com/ttttttwt/final-test/internal/repo"
	"github.com/ttttttwt/final-test/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost keeps verification in the tens-of-milliseconds range.
const bcryptCost = 10

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Sessions *session.Store
}

// ==========================
// Login form
// ==========================
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	renderTemplate(w, "login.html", nil)
}

// ==========================
// Login (verifies the stored bcrypt hash, then opens a session)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "Username and password are required"})
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), username)
	if errors.Is(err, repo.ErrNotFound) {
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "Invalid username or password"})
		return
	}
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "An error occurred during login"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "Invalid username or password"})
		return
	}

	sess, err := h.Sessions.Create(r.Context(), user.ID, user.Username)
	if err != nil {
		slog.Error("session create failed", "error", err)
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "An error occurred during login"})
		return
	}

	setSessionCookie(w, sess.Token, h.Sessions.TTL)
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Register form
// ==========================
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	renderTemplate(w, "register.html", nil)
}

// ==========================
// Register (unique username + bcrypt hash, then opens a session)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderTemplate(w, "register.html", map[string]interface{}{"Error": "Username and password are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		slog.Error("password hash failed", "error", err)
		renderTemplate(w, "register.html", map[string]interface{}{"Error": "An error occurred during registration"})
		return
	}

	user, err := h.Users.Create(r.Context(), username, string(hash))
	if errors.Is(err, repo.ErrDuplicateUser) {
		renderTemplate(w, "register.html", map[string]interface{}{"Error": "Username already exists"})
		return
	}
	if err != nil {
		slog.Error("register create failed", "error", err)
		renderTemplate(w, "register.html", map[string]interface{}{"Error": "An error occurred during registration"})
		return
	}

	sess, err := h.Sessions.Create(r.Context(), user.ID, user.Username)
	if err != nil {
		slog.Error("session create failed", "error", err)
		renderTemplate(w, "register.html", map[string]interface{}{"Error": "An error occurred during registration"})
		return
	}

	setSessionCookie(w, sess.Token, h.Sessions.TTL)
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Logout (destroys the session; idempotent)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.UserFrom(r.Context()); ok {
		if err := h.Sessions.Delete(r.Context(), user.Token); err != nil {
			slog.Error("session delete failed", "error", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: middleware.CookieName, Value: "", Path: "/", MaxAge: -1})
}
