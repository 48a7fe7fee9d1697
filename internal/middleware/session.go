package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ttttttwt/final-test/internal/repo"
	"github.com/ttttttwt/final-test/internal/session"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "blog_session"

type key string

const sessionUserKey key = "session_user"

// SessionUser is the authenticated identity attached to the request context
// by LoadSession.
type SessionUser struct {
	ID       int
	Username string
	Token    string
}

// LoadSession resolves the session cookie into a SessionUser on the request
// context. Requests with no cookie, or with an expired or unknown token,
// proceed anonymously; only RequireAuth turns that into a redirect.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, repo.ErrNotFound) {
					slog.Error("session lookup failed", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUser(r.Context(), SessionUser{
				ID:       sess.UserID,
				Username: sess.Username,
				Token:    sess.Token,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a context carrying the authenticated user, exactly as
// LoadSession attaches it.
func WithUser(ctx context.Context, u SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserKey, u)
}

// UserFrom returns the authenticated user on the context, if any.
func UserFrom(ctx context.Context) (SessionUser, bool) {
	u, ok := ctx.Value(sessionUserKey).(SessionUser)
	return u, ok
}

// RequireAuth redirects unauthenticated requests to /login and aborts the
// wrapped handler. Use after LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
