package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/mind-engage/introscore/internal/rubric"
)

// --- Content & Structure ---

type contentScorer struct {
	rubric     rubric.Rubric
	similarity SimilarityScorer
}

func (s contentScorer) score(ctx context.Context, d *document) (Criterion, error) {
	salPts, salMsg := salutationScore(d.lower, s.rubric.Salutations)

	found := d.detectKeywords(s.rubric.Keywords)
	kwPts := float64(len(found) * 4)
	if kwPts > 20 {
		kwPts = 20
	}

	flowPts, flowMsg := 0.0, "Flow not followed / out of order"
	if flowFollowed(d.lower, s.rubric.Flow) {
		flowPts, flowMsg = 5, "Flow followed"
	}

	semantic, semNote := s.semanticBonus(ctx, d, len(found))

	foundMsg := "None"
	if len(found) > 0 {
		foundMsg = strings.Join(found, ", ")
	}
	return Criterion{
		Criterion: LabelContent,
		Components: map[string]any{
			"Salutation": salPts,
			"Keywords":   kwPts,
			"Flow":       flowPts,
			"Semantic":   round(semantic, 3),
		},
		Score:    round(salPts+kwPts+flowPts+semantic, 3),
		MaxScore: 40,
		Feedback: fmt.Sprintf("%s. Keywords found: %s. %s. %s", salMsg, foundMsg, flowMsg, semNote),
	}, nil
}

// semanticBonus is worth up to 10 points. Without a similarity scorer, or when
// it fails, the share of rubric keywords found stands in for similarity.
func (s contentScorer) semanticBonus(ctx context.Context, d *document, hits int) (float64, string) {
	keywordRatio := 0.0
	if n := len(s.rubric.Keywords); n > 0 {
		keywordRatio = float64(hits) / float64(n) * 10
		if keywordRatio > 10 {
			keywordRatio = 10
		}
	}
	if s.similarity == nil {
		return keywordRatio, "Semantic model not used"
	}
	sim, err := s.similarity.Similarity(ctx, d.text, s.rubric.SemanticReference)
	if err != nil {
		return keywordRatio, "Semantic model failed; keyword ratio used"
	}
	v := (sim + 1) / 2
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	bonus := v * 10
	return bonus, "Semantic similarity=" + fmtNum(round(bonus, 3))
}

func salutationScore(lower string, s rubric.Salutations) (float64, string) {
	for _, p := range s.Excellent {
		if strings.Contains(lower, strings.ToLower(p)) {
			return 5, "Excellent salutation phrase found"
		}
	}
	for _, p := range s.Formal {
		if strings.Contains(lower, strings.ToLower(p)) {
			return 4, fmt.Sprintf("Found greeting '%s'", p)
		}
	}
	for _, p := range s.Informal {
		if strings.Contains(lower, strings.ToLower(p)) {
			return 2, fmt.Sprintf("Found greeting '%s'", strings.Trim(strings.TrimSpace(p), ","))
		}
	}
	return 0, "No salutation detected"
}

// flowFollowed reports whether the sections that appear do so in rubric order.
// A section's position is the earliest offset of any of its cues; sections
// with no cue present are skipped.
func flowFollowed(lower string, flow []rubric.FlowSection) bool {
	prev := -1
	for _, sec := range flow {
		idx := -1
		for _, cue := range sec.Cues {
			if cue == "" {
				continue
			}
			if i := strings.Index(lower, strings.ToLower(cue)); i >= 0 && (idx < 0 || i < idx) {
				idx = i
			}
		}
		if idx < 0 {
			continue
		}
		if idx < prev {
			return false
		}
		prev = idx
	}
	return true
}

// --- Speech Rate ---

type speechRateScorer struct{}

func (speechRateScorer) score(_ context.Context, d *document) (Criterion, error) {
	wpm := wordsPerMinute(d.wordCount(), d.duration)
	pts, band := speechRateBand(wpm)
	w := round(wpm, 2)
	return Criterion{
		Criterion:  LabelSpeechRate,
		Components: map[string]any{"WPM": w, "band_message": band},
		Score:      pts,
		MaxScore:   10,
		Feedback:   fmt.Sprintf("WPM=%s. %s", fmtNum(w), band),
	}, nil
}

// wordsPerMinute falls back to the raw word count when no duration is known.
func wordsPerMinute(words int, duration *float64) float64 {
	if duration != nil && *duration > 0 {
		return float64(words) / (*duration / 60)
	}
	return float64(words)
}

func speechRateBand(wpm float64) (float64, string) {
	switch {
	case wpm >= 161:
		return 2, "Too fast"
	case wpm >= 141:
		return 6, "Fast"
	case wpm >= 111:
		return 10, "Ideal"
	case wpm >= 81:
		return 6, "Slow"
	default:
		return 0, "Too slow"
	}
}

// --- Language & Grammar ---

type languageScorer struct{ grammar GrammarChecker }

func (s languageScorer) score(ctx context.Context, d *document) (Criterion, error) {
	per100, note, err := s.errorsPer100(ctx, d)
	if err != nil {
		return Criterion{}, err
	}
	gPts := grammarPoints(per100)
	ttr := d.ttr()
	tPts := ttrPoints(ttr)
	return Criterion{
		Criterion: LabelLanguage,
		Components: map[string]any{
			"Grammar errors per100": round(per100, 3),
			"Grammar points":        gPts,
			ComponentTTR:            round(ttr, 3),
			"TTR points":            tPts,
		},
		Score:    gPts + tPts,
		MaxScore: 20,
		Feedback: fmt.Sprintf("%s. TTR=%s", note, fmtNum(round(ttr, 3))),
	}, nil
}

func (s languageScorer) errorsPer100(ctx context.Context, d *document) (float64, string, error) {
	wc := d.wordCount()
	if wc == 0 {
		return 0, "No words", nil
	}
	if s.grammar != nil {
		n, err := s.grammar.Check(ctx, d.text)
		if err != nil {
			return 0, "", fmt.Errorf("grammar check (%s): %w", s.grammar.Name(), err)
		}
		return float64(n) / float64(wc) * 100, fmt.Sprintf("%d grammar issues detected by %s", n, s.grammar.Name()), nil
	}
	n := d.repeatedWords() + d.bareContractionCount()
	return float64(n) / float64(wc) * 100, fmt.Sprintf("%d heuristic grammar issues (fallback)", n), nil
}

func grammarPoints(per100 float64) float64 {
	r := per100 / 100
	switch {
	case r < 0.3:
		return 10
	case r < 0.5:
		return 8
	case r < 0.7:
		return 6
	case r < 0.9:
		return 4
	default:
		return 2
	}
}

func ttrPoints(ttr float64) float64 {
	switch {
	case ttr >= 0.9:
		return 10
	case ttr >= 0.7:
		return 8
	case ttr >= 0.5:
		return 6
	case ttr >= 0.3:
		return 4
	default:
		return 2
	}
}

// --- Clarity ---

type clarityScorer struct{ fillers phraseMatcher }

func (s clarityScorer) score(_ context.Context, d *document) (Criterion, error) {
	count, pct := 0, 0.0
	if wc := d.wordCount(); wc > 0 {
		count = s.fillers.count(d.lower)
		pct = float64(count) / float64(wc) * 100
	}
	return Criterion{
		Criterion: LabelClarity,
		Components: map[string]any{
			ComponentFillerPct:   round(pct, 3),
			ComponentFillerCount: count,
		},
		Score:    fillerPoints(pct),
		MaxScore: 15,
		Feedback: fmt.Sprintf("Filler words=%d, filler_percent=%s%%", count, fmtNum(round(pct, 2))),
	}, nil
}

func fillerPoints(pct float64) float64 {
	switch {
	case pct <= 3:
		return 15
	case pct <= 6:
		return 12
	case pct <= 9:
		return 9
	case pct <= 12:
		return 6
	default:
		return 3
	}
}

// --- Engagement ---

type engagementScorer struct{ sentiment SentimentAnalyzer }

func (s engagementScorer) score(ctx context.Context, d *document) (Criterion, error) {
	val, note := 0.5, "Sentiment analyzer not configured; using neutral fallback"
	if s.sentiment != nil {
		c, err := s.sentiment.Compound(ctx, d.text)
		if err != nil {
			return Criterion{}, fmt.Errorf("sentiment (%s): %w", s.sentiment.Name(), err)
		}
		val = (c + 1) / 2
		note = fmt.Sprintf("%s compound=%s", s.sentiment.Name(), fmtNum(round(c, 4)))
	}
	return Criterion{
		Criterion:  LabelEngagement,
		Components: map[string]any{"Sentiment_normalized_0_1": round(val, 3)},
		Score:      engagementPoints(val),
		MaxScore:   15,
		Feedback:   note,
	}, nil
}

func engagementPoints(v float64) float64 {
	switch {
	case v >= 0.9:
		return 15
	case v >= 0.7:
		return 12
	case v >= 0.5:
		return 9
	case v >= 0.3:
		return 6
	default:
		return 3
	}
}
