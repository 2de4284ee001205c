package scoring

// Criterion labels, in the order they appear in a ScoreResult.
const (
	LabelContent    = "Content & Structure"
	LabelSpeechRate = "Speech Rate"
	LabelLanguage   = "Language & Grammar"
	LabelClarity    = "Clarity"
	LabelEngagement = "Engagement"
)

// Component keys the dashboard reads back.
const (
	ComponentTTR         = "TTR"
	ComponentFillerCount = "Filler count"
	ComponentFillerPct   = "Filler %"
)

// Criterion is one rubric dimension of a scored transcript.
type Criterion struct {
	Criterion  string         `json:"criterion"`
	Components map[string]any `json:"components"` // metric name -> number or string
	Score      float64        `json:"score"`
	MaxScore   float64        `json:"max_score"`
	Feedback   string         `json:"feedback"`
}

// Totals is the raw sum behind OverallScore.
type Totals struct {
	Attained float64 `json:"attained"`
	Possible float64 `json:"possible"`
}

// ScoreResult is the body of a successful POST /score.
type ScoreResult struct {
	OverallScore        float64     `json:"overall_score"` // 0-100
	WordCount           int         `json:"word_count"`
	SentenceCount       int         `json:"sentence_count"`
	DurationSecondsUsed *float64    `json:"duration_seconds_used"`
	PerCriterion        []Criterion `json:"per_criterion"`
	Totals              Totals      `json:"totals"`
}

// Find returns the first criterion whose label satisfies match.
func (r ScoreResult) Find(match func(label string) bool) (Criterion, bool) {
	for _, c := range r.PerCriterion {
		if match(c.Criterion) {
			return c, true
		}
	}
	return Criterion{}, false
}
