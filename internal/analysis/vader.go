package analysis

import (
	"context"

	"github.com/jonreiter/govader"
)

// Vader scores sentiment with the VADER lexicon. The analyser is read-only
// after construction and shared across requests.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (*Vader) Name() string { return "VADER" }

// Compound returns VADER's normalised compound score in [-1, 1].
func (v *Vader) Compound(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return v.analyzer.PolarityScores(text).Compound, nil
}
