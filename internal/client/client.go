// Package client talks to the scoring endpoint the way the dashboard does:
// validate the text locally, issue one POST /score, decode the result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mind-engage/introscore/internal/scoring"
)

var (
	// ErrEmptyText is returned before any request when the text is blank.
	ErrEmptyText = errors.New("please paste text or upload a file")
	// ErrNotTextFile is returned for uploads whose name does not end in .txt.
	ErrNotTextFile = errors.New("please upload a .txt file only")
	// ErrMalformedResponse is returned when the server answers with something other than JSON.
	ErrMalformedResponse = errors.New("malformed score response")
)

// ResponseError is a non-2xx answer from the scoring endpoint.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("score request failed: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("score request failed (%d): %s", e.StatusCode, e.Message)
}

// ValidateText trims s and rejects it when nothing is left.
func ValidateText(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", ErrEmptyText
	}
	return t, nil
}

// LoadTextFile reads a plain-text upload. Files not named *.txt are rejected
// without being opened.
func LoadTextFile(path string) (string, error) {
	if !strings.HasSuffix(filepath.Base(path), ".txt") {
		return "", ErrNotTextFile
	}
	b, err := os.ReadFile(path) //nolint:gosec // user-selected upload
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type scoreRequest struct {
	Text            string   `json:"text"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Score validates text and sends exactly one POST /score. There is no retry.
func (c *Client) Score(ctx context.Context, text string) (scoring.ScoreResult, error) {
	return c.ScoreTimed(ctx, text, nil)
}

// ScoreTimed is Score with the speaking duration sent along, so the server
// can rate words per minute. A nil duration is omitted from the request.
func (c *Client) ScoreTimed(ctx context.Context, text string, durationSeconds *float64) (scoring.ScoreResult, error) {
	t, err := ValidateText(text)
	if err != nil {
		return scoring.ScoreResult{}, err
	}
	body, err := json.Marshal(scoreRequest{Text: t, DurationSeconds: durationSeconds})
	if err != nil {
		return scoring.ScoreResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return scoring.ScoreResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return scoring.ScoreResult{}, fmt.Errorf("score request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return scoring.ScoreResult{}, fmt.Errorf("read score response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return scoring.ScoreResult{}, &ResponseError{StatusCode: resp.StatusCode, Message: eb.Error}
	}
	var out scoring.ScoreResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return scoring.ScoreResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}
