package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"bookrate/internal/core"
	"bookrate/internal/logging"
)

//go:embed templates/*.html
var templateFiles embed.FS

// parseTemplates parses the embedded page templates once at startup.
func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"coverURL": coverURL,
	}).ParseFS(templateFiles, "templates/*.html")
}

// coverURL returns the book's cover image URL, or a deterministic
// placeholder when the dataset has no image for it.
func coverURL(b core.Book, index int) string {
	if url := strings.TrimSpace(b.ImageURL); url != "" {
		return url
	}
	return fmt.Sprintf("https://picsum.photos/150/220?random=%d", index)
}

// render executes a page template into a buffer first so a template
// error becomes a clean 500 instead of a half-written page.
func (srv *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := srv.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logging.FromContext(r.Context()).Error("template render failed",
			"template", name,
			"error", err,
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
