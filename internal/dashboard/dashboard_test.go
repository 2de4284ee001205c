package dashboard_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mind-engage/introscore/internal/dashboard"
	"github.com/mind-engage/introscore/internal/scoring"
)

func fullResult() scoring.ScoreResult {
	return scoring.ScoreResult{
		WordCount:     120,
		SentenceCount: 9,
		OverallScore:  73.58,
		PerCriterion: []scoring.Criterion{
			{Criterion: "Content & Structure", Score: 30, MaxScore: 40, Feedback: "content fb", Components: map[string]any{"Flow": 5.0}},
			{Criterion: "Language & Grammar", Score: 16, MaxScore: 20, Feedback: "grammar fb", Components: map[string]any{"TTR": 0.667}},
			{Criterion: "Clarity (fillers)", Score: 12, MaxScore: 15, Feedback: "clarity fb", Components: map[string]any{"Filler count": 4.0, "Filler %": 3.333}},
		},
	}
}

func cardValue(t *testing.T, d *dashboard.Dashboard, title string) string {
	t.Helper()
	c, ok := d.Card(title)
	if !ok {
		t.Fatalf("card %q missing", title)
	}
	return c.Value
}

func TestBuild_CardsFromComponents(t *testing.T) {
	t.Parallel()
	d := dashboard.Build(fullResult())

	cases := map[string]string{
		dashboard.CardWords:     "120",
		dashboard.CardSentences: "9",
		dashboard.CardTTR:       "0.667",
		dashboard.CardFiller:    "4 (3.333%)",
	}
	for title, want := range cases {
		if got := cardValue(t, d, title); got != want {
			t.Errorf("%s = %q, want %q", title, got, want)
		}
	}
}

func TestBuild_MissingCriteriaShowNA(t *testing.T) {
	t.Parallel()

	t.Run("no criteria", func(t *testing.T) {
		t.Parallel()
		d := dashboard.Build(scoring.ScoreResult{WordCount: 3})
		if got := cardValue(t, d, dashboard.CardTTR); got != dashboard.NotAvailable {
			t.Errorf("TTR = %q", got)
		}
		if got := cardValue(t, d, dashboard.CardFiller); got != "N/A (N/A%)" {
			t.Errorf("filler = %q", got)
		}
	})

	t.Run("criteria without components", func(t *testing.T) {
		t.Parallel()
		res := scoring.ScoreResult{PerCriterion: []scoring.Criterion{
			{Criterion: "Language & Grammar", MaxScore: 20},
			{Criterion: "Clarity", MaxScore: 15, Components: map[string]any{"Filler count": 2}},
		}}
		d := dashboard.Build(res)
		if got := cardValue(t, d, dashboard.CardTTR); got != dashboard.NotAvailable {
			t.Errorf("TTR = %q", got)
		}
		if got := cardValue(t, d, dashboard.CardFiller); got != "2 (N/A%)" {
			t.Errorf("filler = %q", got)
		}
	})

	t.Run("label must match exactly for grammar", func(t *testing.T) {
		t.Parallel()
		res := scoring.ScoreResult{PerCriterion: []scoring.Criterion{
			{Criterion: "Language & Grammar (v2)", MaxScore: 20, Components: map[string]any{"TTR": 0.5}},
		}}
		if got := cardValue(t, dashboard.Build(res), dashboard.CardTTR); got != dashboard.NotAvailable {
			t.Errorf("TTR = %q, want N/A", got)
		}
	})
}

func TestBuild_DonutSumsTo100(t *testing.T) {
	t.Parallel()
	for _, s := range []float64{0, 0.01, 33.33, 55.77, 73.58, 99.99, 100} {
		d := dashboard.Build(scoring.ScoreResult{OverallScore: s})
		if d.Donut.Score != s {
			t.Errorf("donut score = %v, want %v", d.Donut.Score, s)
		}
		if sum := d.Donut.Score + d.Donut.Remaining; math.Abs(sum-100) > 1e-9 {
			t.Errorf("score %v: segments sum to %v", s, sum)
		}
	}
}

func TestBuild_PanelPercent(t *testing.T) {
	t.Parallel()
	d := dashboard.Build(fullResult())
	if len(d.Panels) != 3 {
		t.Fatalf("panels = %d", len(d.Panels))
	}
	if d.Panels[0].Percent != 75 || d.Panels[2].Percent != 80 {
		t.Errorf("percents = %v, %v", d.Panels[0].Percent, d.Panels[2].Percent)
	}
	zero := dashboard.Build(scoring.ScoreResult{PerCriterion: []scoring.Criterion{{Criterion: "x", Score: 1}}})
	if zero.Panels[0].Percent != 0 {
		t.Errorf("zero max should give 0%%, got %v", zero.Panels[0].Percent)
	}
}

func TestToggle_OnlyFlipsOwnPanel(t *testing.T) {
	t.Parallel()
	d := dashboard.Build(fullResult())
	for _, p := range d.Panels {
		if p.Expanded {
			t.Fatal("panels start collapsed")
		}
	}

	if !d.Toggle(1) {
		t.Fatal("toggle(1) should succeed")
	}
	want := []bool{false, true, false}
	for i, p := range d.Panels {
		if p.Expanded != want[i] {
			t.Errorf("after toggle(1) panel %d expanded=%v", i, p.Expanded)
		}
	}

	d.Toggle(1)
	for i, p := range d.Panels {
		if p.Expanded {
			t.Errorf("after second toggle panel %d still expanded", i)
		}
	}

	if d.Toggle(-1) || d.Toggle(3) {
		t.Error("out-of-range toggles must report false")
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()
	d := dashboard.Build(fullResult())
	d.Toggle(0)

	var buf bytes.Buffer
	if err := dashboard.WriteText(&buf, d); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"WORDS:", "120", "FILLER WORDS:", "4 (3.333%)", "73.58%", "content fb", "Clarity (fillers)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "grammar fb") {
		t.Error("collapsed panel feedback must not be printed")
	}
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := dashboard.WriteMarkdown(&buf, dashboard.Build(fullResult())); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# Introduction Score", "```mermaid", "Score", "74", "Remaining", "26", "details>", "grammar fb"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}
