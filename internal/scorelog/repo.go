package scorelog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mind-engage/introscore/internal/scoring"
)

var ErrNotFound = errors.New("score entry not found")

// Entry is one scored transcript. The transcript itself is not stored.
type Entry struct {
	ID           string              `json:"id"`
	TextChars    int                 `json:"text_chars"`
	WordCount    int                 `json:"word_count"`
	OverallScore float64             `json:"overall_score"`
	Result       scoring.ScoreResult `json:"result"`
	CreatedAt    int64               `json:"created_at"`
}

// Summary is an Entry without the full result, for listings.
type Summary struct {
	ID           string  `json:"id"`
	TextChars    int     `json:"text_chars"`
	WordCount    int     `json:"word_count"`
	OverallScore float64 `json:"overall_score"`
	CreatedAt    int64   `json:"created_at"`
}

type ListOpts struct {
	Limit  int
	Offset int
}

type Repo struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db, now: time.Now} }

func (r *Repo) Append(ctx context.Context, text string, res scoring.ScoreResult) (Entry, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		ID:           uuid.NewString(),
		TextChars:    utf8.RuneCountInString(text),
		WordCount:    res.WordCount,
		OverallScore: res.OverallScore,
		Result:       res,
		CreatedAt:    r.now().Unix(),
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO score_log (id, text_chars, word_count, overall_score, result_json, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.TextChars, e.WordCount, e.OverallScore, string(data), e.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("append score: %w", err)
	}
	return e, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, text_chars, word_count, overall_score, result_json, created_at
		 FROM score_log WHERE id=$1`, id).
		Scan(&e.ID, &e.TextChars, &e.WordCount, &e.OverallScore, &raw, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(raw), &e.Result); err != nil {
		return Entry{}, fmt.Errorf("decode result %s: %w", id, err)
	}
	return e, nil
}

// List returns the newest entries first. Limit defaults to 50 and is capped at 500.
func (r *Repo) List(ctx context.Context, opts ListOpts) ([]Summary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text_chars, word_count, overall_score, created_at
		 FROM score_log ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.TextChars, &s.WordCount, &s.OverallScore, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
