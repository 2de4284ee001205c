package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/mind-engage/introscore/internal/config"
	"github.com/mind-engage/introscore/internal/scoring"
)

// SentimentVader selects the VADER analyser.
const SentimentVader = "vader"

// Set is the analysers enabled by configuration. Nil members leave the
// engine's fallback in place.
type Set struct {
	Grammar    scoring.GrammarChecker
	Sentiment  scoring.SentimentAnalyzer
	Similarity scoring.SimilarityScorer
}

// FromConfig enables every analyser whose key is set.
func FromConfig(ctx context.Context, cfg config.Config) (Set, error) {
	var s Set
	if cfg.LanguageToolURL != "" {
		s.Grammar = NewLanguageTool(cfg.LanguageToolURL, cfg.LanguageToolLanguage)
	}
	switch cfg.Sentiment {
	case "", "none":
	case SentimentVader:
		s.Sentiment = NewVader()
	default:
		return Set{}, fmt.Errorf("unknown SENTIMENT %q (want vader)", cfg.Sentiment)
	}
	if cfg.GeminiAPIKey != "" {
		sim, err := NewGeminiSimilarity(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel, "")
		if err != nil {
			return Set{}, err
		}
		s.Similarity = sim
	}
	return s, nil
}

// Options converts the set into engine options.
func (s Set) Options() []scoring.Option {
	var opts []scoring.Option
	if s.Grammar != nil {
		opts = append(opts, scoring.WithGrammarChecker(s.Grammar))
	}
	if s.Sentiment != nil {
		opts = append(opts, scoring.WithSentiment(s.Sentiment))
	}
	if s.Similarity != nil {
		opts = append(opts, scoring.WithSimilarity(s.Similarity))
	}
	return opts
}

func (s Set) String() string {
	grammar, sentiment, similarity := "heuristic", "neutral", "keywords"
	if s.Grammar != nil {
		grammar = s.Grammar.Name()
	}
	if s.Sentiment != nil {
		sentiment = s.Sentiment.Name()
	}
	if s.Similarity != nil {
		similarity = "embeddings"
	}
	return strings.Join([]string{"grammar=" + grammar, "sentiment=" + sentiment, "similarity=" + similarity}, " ")
}
