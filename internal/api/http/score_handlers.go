package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mind-engage/introscore/internal/scorelog"
	"github.com/mind-engage/introscore/internal/scoring"
)

// Scorer is satisfied by *scoring.Engine.
type Scorer interface {
	Score(ctx context.Context, text string, durationSeconds *float64) (scoring.ScoreResult, error)
}

// Recorder persists scored transcripts; see scorelog.Repo.
type Recorder interface {
	Append(ctx context.Context, text string, res scoring.ScoreResult) (scorelog.Entry, error)
}

type scoreReq struct {
	Text            string   `json:"text"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

const msgNoText = "No text provided"

// POST /score
func ScoreHandler(scorer Scorer, rec Recorder, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBody > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		var req scoreReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeError(w, http.StatusRequestEntityTooLarge, "text too large")
				return
			}
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		scoreAndRespond(w, r, scorer, rec, req.Text, req.DurationSeconds)
	}
}

// POST /score/upload  (multipart, field "file", optional "duration_seconds")
func ScoreUploadHandler(scorer Scorer, rec Recorder, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBody > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeError(w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()
		if !strings.HasSuffix(filepath.Base(hdr.Filename), ".txt") {
			writeError(w, http.StatusBadRequest, "Please upload a .txt file only.")
			return
		}
		b, err := io.ReadAll(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
			return
		}
		var dur *float64
		if v, ok := parseFloatParam(r.FormValue("duration_seconds")); ok {
			dur = &v
		}
		scoreAndRespond(w, r, scorer, rec, string(b), dur)
	}
}

func scoreAndRespond(w http.ResponseWriter, r *http.Request, scorer Scorer, rec Recorder, text string, dur *float64) {
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, msgNoText)
		return
	}
	res, err := scorer.Score(r.Context(), text, dur)
	if err != nil {
		if errors.Is(err, scoring.ErrEmptyText) {
			writeError(w, http.StatusBadRequest, msgNoText)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec != nil {
		// a failed log write never fails the score
		if e, err := rec.Append(r.Context(), text, res); err != nil {
			log.Printf("score log: %v", err)
		} else {
			w.Header().Set("X-Score-ID", e.ID)
		}
	}
	writeJSON(w, http.StatusOK, res)
}
