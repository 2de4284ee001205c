package scoring

import (
	"context"
	"errors"

	"github.com/mind-engage/introscore/internal/rubric"
)

// ErrEmptyText is returned for empty or whitespace-only transcripts.
var ErrEmptyText = errors.New("no text provided")

// GrammarChecker reports the number of grammar issues in a text.
type GrammarChecker interface {
	Name() string
	Check(ctx context.Context, text string) (int, error)
}

// SentimentAnalyzer returns a compound polarity in [-1, 1].
type SentimentAnalyzer interface {
	Name() string
	Compound(ctx context.Context, text string) (float64, error)
}

// SimilarityScorer returns the cosine similarity of two texts in [-1, 1].
type SimilarityScorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// criterionScorer grades one rubric dimension.
type criterionScorer interface {
	score(ctx context.Context, d *document) (Criterion, error)
}

// Engine options

type Option func(*config)

type config struct {
	Rubric     rubric.Rubric
	Grammar    GrammarChecker    // nil: repeated-word/contraction heuristic
	Sentiment  SentimentAnalyzer // nil: neutral 0.5
	Similarity SimilarityScorer  // nil: keyword ratio
}

func WithRubric(r rubric.Rubric) Option          { return func(c *config) { c.Rubric = r } }
func WithGrammarChecker(g GrammarChecker) Option { return func(c *config) { c.Grammar = g } }
func WithSentiment(s SentimentAnalyzer) Option   { return func(c *config) { c.Sentiment = s } }
func WithSimilarity(s SimilarityScorer) Option   { return func(c *config) { c.Similarity = s } }

// Engine scores self-introduction transcripts. It is safe for concurrent use.
type Engine struct {
	criteria []criterionScorer
}

// NewEngine installs the built-in criteria in reporting order.
func NewEngine(opts ...Option) *Engine {
	cfg := &config{Rubric: rubric.Default()}
	for _, o := range opts {
		o(cfg)
	}
	r := cfg.Rubric
	return &Engine{
		criteria: []criterionScorer{
			contentScorer{rubric: r, similarity: cfg.Similarity},
			speechRateScorer{},
			languageScorer{grammar: cfg.Grammar},
			clarityScorer{fillers: newPhraseMatcher(r.FillerWords)},
			engagementScorer{sentiment: cfg.Sentiment},
		},
	}
}

// Score grades text. durationSeconds, when positive, turns the word count
// into words per minute for the speech-rate criterion.
func (e *Engine) Score(ctx context.Context, text string, durationSeconds *float64) (ScoreResult, error) {
	d := newDocument(text, durationSeconds)
	if d.text == "" {
		return ScoreResult{}, ErrEmptyText
	}
	var used *float64
	if durationSeconds != nil && *durationSeconds > 0 {
		v := *durationSeconds
		used = &v
	}
	d.duration = used

	per := make([]Criterion, 0, len(e.criteria))
	for _, c := range e.criteria {
		if err := ctx.Err(); err != nil {
			return ScoreResult{}, err
		}
		crit, err := c.score(ctx, d)
		if err != nil {
			return ScoreResult{}, err
		}
		per = append(per, crit)
	}

	totals := ScoreRubric(per)
	overall := 0.0
	if totals.Possible > 0 {
		overall = round(totals.Attained/totals.Possible*100, 2)
	}
	return ScoreResult{
		OverallScore:        overall,
		WordCount:           d.wordCount(),
		SentenceCount:       d.sentenceCount(),
		DurationSecondsUsed: used,
		PerCriterion:        per,
		Totals:              totals,
	}, nil
}
