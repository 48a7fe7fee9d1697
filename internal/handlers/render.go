package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ttttttwt/final-test/internal/middleware"
)

//go:embed templates
var templatesFS embed.FS

// standalonePages render without the shared layout.
var standalonePages = map[string]bool{
	"login.html":    true,
	"register.html": true,
}

func renderTemplate(w http.ResponseWriter, name string, data map[string]interface{}) {
	renderStatus(w, http.StatusOK, name, data)
}

func renderStatus(w http.ResponseWriter, status int, name string, data map[string]interface{}) {
	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if standalonePages[name] {
		w.WriteHeader(status)
		t := template.Must(template.New("").Parse(string(content)))
		if err := t.ExecuteTemplate(w, "page", data); err != nil {
			slog.Error("template execute", "template", name, "error", err)
		}
		return
	}

	layout, _ := templatesFS.ReadFile("templates/layout.html")
	t := template.Must(template.New("").Parse(string(layout)))
	t = template.Must(t.New("").Parse(string(content)))
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template execute", "template", name, "error", err)
	}
}

// payload merges the current user into the template data so the layout can
// render the right nav links.
func payload(r *http.Request, data map[string]interface{}) map[string]interface{} {
	if data == nil {
		data = map[string]interface{}{}
	}
	if user, ok := middleware.UserFrom(r.Context()); ok {
		data["User"] = user
	}
	return data
}
