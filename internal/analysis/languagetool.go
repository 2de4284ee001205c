package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// whitespaceRule only flags spacing, which transcripts are full of.
const whitespaceRule = "WHITESPACE_RULE"

// LanguageTool counts grammar issues through a LanguageTool server's
// /v2/check endpoint.
type LanguageTool struct {
	BaseURL  string
	Language string
	HTTP     *http.Client
}

func NewLanguageTool(baseURL, language string) *LanguageTool {
	if language == "" {
		language = "en-US"
	}
	return &LanguageTool{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Language: language,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (*LanguageTool) Name() string { return "language-tool" }

type ltResponse struct {
	Matches []struct {
		Message string `json:"message"`
		Rule    struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check returns the number of matches other than whitespace ones.
func (lt *LanguageTool) Check(ctx context.Context, text string) (int, error) {
	form := url.Values{"text": {text}, "language": {lt.Language}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.BaseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	hc := lt.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("languagetool: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("languagetool: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("languagetool: decode: %w", err)
	}
	n := 0
	for _, m := range out.Matches {
		if m.Rule.ID != whitespaceRule {
			n++
		}
	}
	return n, nil
}
