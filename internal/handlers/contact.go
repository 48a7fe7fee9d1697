package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ttttttwt/final-test/internal/metrics"
)

const (
	aboutTitle   = "About Me"
	contactTitle = "Contact"
)

// ContactMailer dispatches a contact-form message. Satisfied by *mail.Mailer.
type ContactMailer interface {
	SendContactMessage(ctx context.Context, name, email, inquiry, message string) error
}

// ==========================
// Contact Handler (static pages + mail dispatch)
// ==========================
type ContactHandler struct {
	// Mailer is nil when SMTP is not configured; sends then fail gracefully.
	Mailer ContactMailer
}

// ==========================
// About page
// ==========================
func (h *ContactHandler) About(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "about.html", payload(r, map[string]interface{}{
		"AboutTitle": aboutTitle,
	}))
}

// ==========================
// Contact page (shows the notification from the last send, if any)
// ==========================
func (h *ContactHandler) Page(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "contact.html", payload(r, map[string]interface{}{
		"ContactTitle": contactTitle,
		"Notification": r.URL.Query().Get("notification"),
	}))
}

// ==========================
// Send (dispatches mail; outcome only affects the redirect notification)
// ==========================
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	inquiry := r.FormValue("inquiry")
	message := r.FormValue("message")

	if h.Mailer == nil {
		slog.Error("contact mail not configured")
		redirectWithNotification(w, r, "Error: Unable to send the message.")
		return
	}

	if err := h.Mailer.SendContactMessage(r.Context(), name, email, inquiry, message); err != nil {
		slog.Error("contact mail failed", "error", err)
		metrics.IncContactMail("error")
		redirectWithNotification(w, r, "Error: Unable to send the message.")
		return
	}

	metrics.IncContactMail("sent")
	redirectWithNotification(w, r, "Email sent successfully!")
}

func redirectWithNotification(w http.ResponseWriter, r *http.Request, notification string) {
	http.Redirect(w, r, "/contact?notification="+url.QueryEscape(notification), http.StatusFound)
}
