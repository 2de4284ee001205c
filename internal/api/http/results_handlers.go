package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/introscore/internal/scorelog"
)

// MountResults exposes the score log read-side under the given router.
func MountResults(r chi.Router, repo *scorelog.Repo) {
	// GET /results?limit=&offset=
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		list, err := repo.List(r.Context(), scorelog.ListOpts{
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, list)
	})

	// GET /results/{id}
	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		e, err := repo.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, scorelog.ErrNotFound) {
				writeError(w, http.StatusNotFound, "result not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, e)
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}

func parseFloatParam(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
