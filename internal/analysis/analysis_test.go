package analysis_test

import (
	"context"
	"testing"

	"github.com/mind-engage/introscore/internal/analysis"
	"github.com/mind-engage/introscore/internal/config"
)

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing configured", func(t *testing.T) {
		s, err := analysis.FromConfig(ctx, config.Config{})
		if err != nil {
			t.Fatalf("from config: %v", err)
		}
		if s.Grammar != nil || s.Sentiment != nil || s.Similarity != nil || len(s.Options()) != 0 {
			t.Fatalf("expected empty set, got %+v", s)
		}
		if s.String() != "grammar=heuristic sentiment=neutral similarity=keywords" {
			t.Errorf("string = %q", s.String())
		}
	})

	t.Run("all configured", func(t *testing.T) {
		s, err := analysis.FromConfig(ctx, config.Config{
			Sentiment:       analysis.SentimentVader,
			LanguageToolURL: "http://localhost:8081",
			GeminiAPIKey:    "test-key",
			EmbeddingModel:  "text-embedding-004",
		})
		if err != nil {
			t.Fatalf("from config: %v", err)
		}
		if s.Grammar == nil || s.Sentiment == nil || s.Similarity == nil || len(s.Options()) != 3 {
			t.Fatalf("expected all analysers, got %+v", s)
		}
		if s.String() != "grammar=language-tool sentiment=VADER similarity=embeddings" {
			t.Errorf("string = %q", s.String())
		}
	})

	t.Run("unknown sentiment", func(t *testing.T) {
		if _, err := analysis.FromConfig(ctx, config.Config{Sentiment: "textblob"}); err == nil {
			t.Fatal("expected error for unknown sentiment analyser")
		}
	})
}
