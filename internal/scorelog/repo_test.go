package scorelog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mind-engage/introscore/internal/db"
	"github.com/mind-engage/introscore/internal/scoring"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "log.db") + "?_pragma=busy_timeout(5000)"
	h, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return NewRepo(h)
}

func sampleResult(overall float64) scoring.ScoreResult {
	return scoring.ScoreResult{
		OverallScore:  overall,
		WordCount:     3,
		SentenceCount: 1,
		PerCriterion: []scoring.Criterion{{
			Criterion:  scoring.LabelClarity,
			Components: map[string]any{scoring.ComponentFillerCount: 1},
			Score:      12,
			MaxScore:   15,
			Feedback:   "Filler words=1",
		}},
		Totals: scoring.Totals{Attained: 12, Possible: 15},
	}
}

func TestRepo_AppendAndGet(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	e, err := r.Append(ctx, "héllo um there", sampleResult(80))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if e.ID == "" || e.TextChars != 14 {
		t.Fatalf("unexpected entry: %+v", e)
	}

	got, err := r.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OverallScore != 80 || len(got.Result.PerCriterion) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Result.PerCriterion[0].Components[scoring.ComponentFillerCount] != 1.0 {
		t.Errorf("components = %v", got.Result.PerCriterion[0].Components)
	}
}

func TestRepo_GetMissing(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepo_ListNewestFirst(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		r.now = func() time.Time { return at }
		if _, err := r.Append(ctx, "text", sampleResult(float64(10*i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	list, err := r.List(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].OverallScore != 20 || list[2].OverallScore != 0 {
		t.Fatalf("unexpected order: %+v", list)
	}

	page, err := r.List(ctx, ListOpts{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].OverallScore != 10 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
