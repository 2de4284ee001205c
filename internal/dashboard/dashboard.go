// Package dashboard turns a score result into the cards, donut and
// per-criterion panels shown to the user, independent of how they are drawn.
package dashboard

import (
	"strconv"
	"strings"

	"github.com/mind-engage/introscore/internal/scoring"
)

// NotAvailable is shown for metrics missing from the result.
const NotAvailable = "N/A"

// Card titles, in display order.
const (
	CardWords     = "Words"
	CardSentences = "Sentences"
	CardTTR       = "TTR"
	CardFiller    = "Filler Words"
)

type Card struct {
	Title string
	Value string
}

// Donut is the two-segment overall score chart. Score+Remaining is always 100.
type Donut struct {
	Score     float64
	Remaining float64
}

// Panel is one criterion row with its collapsible feedback.
type Panel struct {
	Label    string
	Score    float64
	MaxScore float64
	Percent  float64 // score/max*100, one decimal
	Feedback string
	Expanded bool
}

type Dashboard struct {
	Cards        []Card
	Donut        Donut
	OverallScore float64
	Panels       []Panel
}

// Build maps res onto dashboard elements. TTR is read from the
// "Language & Grammar" criterion and filler metrics from the first criterion
// whose label starts with "Clarity".
func Build(res scoring.ScoreResult) *Dashboard {
	grammar, hasGrammar := res.Find(func(l string) bool { return l == scoring.LabelLanguage })
	clarity, hasClarity := res.Find(func(l string) bool { return strings.HasPrefix(l, scoring.LabelClarity) })

	ttr, fillerCount, fillerPct := NotAvailable, NotAvailable, NotAvailable
	if hasGrammar {
		ttr = component(grammar, scoring.ComponentTTR)
	}
	if hasClarity {
		fillerCount = component(clarity, scoring.ComponentFillerCount)
		fillerPct = component(clarity, scoring.ComponentFillerPct)
	}

	d := &Dashboard{
		Cards: []Card{
			{Title: CardWords, Value: strconv.Itoa(res.WordCount)},
			{Title: CardSentences, Value: strconv.Itoa(res.SentenceCount)},
			{Title: CardTTR, Value: ttr},
			{Title: CardFiller, Value: fillerCount + " (" + fillerPct + "%)"},
		},
		Donut:        Donut{Score: res.OverallScore, Remaining: 100 - res.OverallScore},
		OverallScore: res.OverallScore,
		Panels:       make([]Panel, 0, len(res.PerCriterion)),
	}
	for _, c := range res.PerCriterion {
		d.Panels = append(d.Panels, Panel{
			Label:    c.Criterion,
			Score:    c.Score,
			MaxScore: c.MaxScore,
			Percent:  percent(c.Score, c.MaxScore),
			Feedback: c.Feedback,
		})
	}
	return d
}

// Card returns the card with the given title.
func (d *Dashboard) Card(title string) (Card, bool) {
	for _, c := range d.Cards {
		if c.Title == title {
			return c, true
		}
	}
	return Card{}, false
}

// Toggle flips the feedback visibility of panel i only. It reports false for
// an index with no panel.
func (d *Dashboard) Toggle(i int) bool {
	if i < 0 || i >= len(d.Panels) {
		return false
	}
	d.Panels[i].Expanded = !d.Panels[i].Expanded
	return true
}

func (d *Dashboard) ExpandAll() {
	for i := range d.Panels {
		d.Panels[i].Expanded = true
	}
}

func component(c scoring.Criterion, key string) string {
	v, ok := c.Components[key]
	if !ok || v == nil {
		return NotAvailable
	}
	return FormatValue(v)
}

// FormatValue renders a component value the way it is displayed on cards.
func FormatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return NotAvailable
	}
}

func percent(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	p := score / max * 100
	r, _ := strconv.ParseFloat(strconv.FormatFloat(p, 'f', 1, 64), 64)
	return r
}
