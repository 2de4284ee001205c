package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountDashboard serves index.html at / and the rest of assets under /static/.
func MountDashboard(r chi.Router, assets fs.FS) error {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return err
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFileFS(w, r, assets, "index.html")
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	return nil
}
