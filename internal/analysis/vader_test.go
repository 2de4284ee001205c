package analysis_test

import (
	"context"
	"testing"

	"github.com/mind-engage/introscore/internal/analysis"
	"github.com/mind-engage/introscore/internal/scoring"
)

func TestVader_Compound(t *testing.T) {
	v := analysis.NewVader()
	cases := []struct {
		name     string
		text     string
		min, max float64
	}{
		{"positive", "I am so happy and excited to be here. This is wonderful!", 0.5, 1},
		{"negative", "I hate this. It is terrible and awful.", -1, -0.5},
		{"neutral", "The table is in the room.", -0.05, 0.05},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := v.Compound(context.Background(), tc.text)
			if err != nil {
				t.Fatalf("compound: %v", err)
			}
			if c < tc.min || c > tc.max {
				t.Errorf("compound(%q) = %v, want [%v, %v]", tc.text, c, tc.min, tc.max)
			}
		})
	}
}

func TestVader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := analysis.NewVader().Compound(ctx, "great"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestVader_DrivesEngagement(t *testing.T) {
	e := scoring.NewEngine(scoring.WithSentiment(analysis.NewVader()))
	text := "Hello everyone, I am Ana. I love painting and I am really excited and happy to meet you all. Thank you!"
	res, err := e.Score(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	c, _ := res.Find(func(l string) bool { return l == scoring.LabelEngagement })
	if c.Score < 12 {
		t.Fatalf("engagement = %v, want at least 12 for an upbeat introduction", c.Score)
	}
	if c.Components["Sentiment_normalized_0_1"].(float64) <= 0.7 {
		t.Fatalf("normalized sentiment = %v", c.Components["Sentiment_normalized_0_1"])
	}
}
