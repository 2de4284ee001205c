package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/mind-engage/introscore/internal/api/http"
	"github.com/mind-engage/introscore/internal/db"
	"github.com/mind-engage/introscore/internal/scorelog"
	"github.com/mind-engage/introscore/internal/scoring"
)

func newResultsServer(t *testing.T) (*httptest.Server, *scorelog.Repo) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "results.db") + "?_pragma=busy_timeout(5000)"
	h, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { h.Close() })

	repo := scorelog.NewRepo(h)
	r := chi.NewRouter()
	r.Post("/score", api.ScoreHandler(scoring.NewEngine(), repo, 0))
	r.Route("/results", func(rr chi.Router) { api.MountResults(rr, repo) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestResults_GetAndList(t *testing.T) {
	srv, repo := newResultsServer(t)
	ctx := context.Background()

	res, err := scoring.NewEngine().Score(ctx, "Hello everyone, my name is Ana. Thank you.", nil)
	if err != nil {
		t.Fatal(err)
	}
	e, err := repo.Append(ctx, "Hello everyone, my name is Ana. Thank you.", res)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/results/" + e.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	var got scorelog.Entry
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != e.ID || got.Result.OverallScore != res.OverallScore || len(got.Result.PerCriterion) != 5 {
		t.Fatalf("entry = %+v", got)
	}

	lr, err := http.Get(srv.URL + "/results/?limit=10")
	if err != nil {
		t.Fatal(err)
	}
	defer lr.Body.Close()
	var list []scorelog.Summary
	if err := json.NewDecoder(lr.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != e.ID {
		t.Fatalf("list = %+v", list)
	}
}

func TestResults_NotFound(t *testing.T) {
	srv, _ := newResultsServer(t)
	resp, err := http.Get(srv.URL + "/results/does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestResults_ScoreIsRecorded(t *testing.T) {
	srv, repo := newResultsServer(t)
	resp, err := http.Post(srv.URL+"/score", "application/json",
		jsonBody(`{"text":"Good morning, I am Ravi."}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	id := resp.Header.Get("X-Score-ID")
	if resp.StatusCode != http.StatusOK || id == "" {
		t.Fatalf("status=%d id=%q", resp.StatusCode, id)
	}
	if _, err := repo.Get(context.Background(), id); err != nil {
		t.Fatalf("recorded entry: %v", err)
	}
}
