package config

import (
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	// Score log; empty DBDriver disables it.
	DBDriver string
	DBDSN    string

	RubricPath     string // optional YAML rubric
	MaxBodyBytes   int64
	ServeDashboard bool // mount the browser UI at /

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Optional analysers; each stays off while its key is empty.
	Sentiment            string // "vader"
	LanguageToolURL      string
	LanguageToolLanguage string
	GeminiAPIKey         string
	EmbeddingModel       string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           os.Getenv("DB_DRIVER"),
		DBDSN:              os.Getenv("DB_DSN"),
		RubricPath:         os.Getenv("RUBRIC_PATH"),
		MaxBodyBytes:       envInt64("MAX_BODY_BYTES", 1<<20),
		ServeDashboard:     envBool("SERVE_DASHBOARD", true),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://introscore.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:8080"),

		Sentiment:            strings.ToLower(strings.TrimSpace(os.Getenv("SENTIMENT"))),
		LanguageToolURL:      os.Getenv("LANGUAGETOOL_URL"),
		LanguageToolLanguage: envOr("LANGUAGETOOL_LANGUAGE", "en-US"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		EmbeddingModel:       envOr("EMBEDDING_MODEL", "text-embedding-004"),
	}
}

// CORSOrigins returns the allow-list for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

// ScoreLogEnabled reports whether scored transcripts should be persisted.
func (c Config) ScoreLogEnabled() bool { return c.DBDriver != "" }

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt64(k string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(k)), 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
