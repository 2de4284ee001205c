package config

import "testing"

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "DB_DSN", "RUBRIC_PATH", "MAX_BODY_BYTES", "SERVE_DASHBOARD", "CORS_ORIGINS_ONLINE", "CORS_ORIGINS_OFFLINE"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Mode != ModeOffline || c.HTTPAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.ScoreLogEnabled() {
		t.Error("score log should be off without DB_DRIVER")
	}
	if c.MaxBodyBytes != 1<<20 || !c.ServeDashboard {
		t.Errorf("body limit/dashboard defaults wrong: %+v", c)
	}
	if got := c.CORSOrigins(); len(got) != 2 || got[0] != "http://localhost:3000" {
		t.Errorf("offline origins = %v", got)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("MAX_BODY_BYTES", "not-a-number")
	t.Setenv("SERVE_DASHBOARD", "no")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")
	c := FromEnv()
	if !c.ScoreLogEnabled() {
		t.Error("score log should be on")
	}
	if c.MaxBodyBytes != 1<<20 {
		t.Errorf("bad MAX_BODY_BYTES should fall back, got %d", c.MaxBodyBytes)
	}
	if c.ServeDashboard {
		t.Error("SERVE_DASHBOARD=no should disable the dashboard")
	}
	got := c.CORSOrigins()
	if len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("online origins = %v", got)
	}
}

func TestFromEnv_Analyzers(t *testing.T) {
	for _, k := range []string{"SENTIMENT", "LANGUAGETOOL_URL", "LANGUAGETOOL_LANGUAGE", "GEMINI_API_KEY", "EMBEDDING_MODEL"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Sentiment != "" || c.LanguageToolURL != "" || c.GeminiAPIKey != "" {
		t.Fatalf("analysers should be off by default: %+v", c)
	}
	if c.LanguageToolLanguage != "en-US" || c.EmbeddingModel != "text-embedding-004" {
		t.Errorf("analyser defaults wrong: %q %q", c.LanguageToolLanguage, c.EmbeddingModel)
	}

	t.Setenv("SENTIMENT", " VADER ")
	t.Setenv("LANGUAGETOOL_URL", "http://localhost:8081")
	t.Setenv("GEMINI_API_KEY", "k")
	c = FromEnv()
	if c.Sentiment != "vader" || c.LanguageToolURL != "http://localhost:8081" || c.GeminiAPIKey != "k" {
		t.Errorf("analyser overrides wrong: %+v", c)
	}
}
