package rubric

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// Row is one line of the rubric sheet handed to reviewers.
type Row struct {
	Criterion   string
	Description string
	Keywords    []string
	Weight      int
	MinWords    int
	MaxWords    int // 0 means no upper bound
}

var sheetHeader = []string{"criterion", "description", "keywords", "weight", "min_words", "max_words"}

// Sheet lists the rubric criteria with their weights. Keyword-based rows
// draw their phrases from r.
func (r Rubric) Sheet() []Row {
	var greetings []string
	greetings = append(greetings, r.Salutations.Formal...)
	greetings = append(greetings, r.Salutations.Informal...)
	greetings = append(greetings, r.Salutations.Excellent...)
	return []Row{
		{Criterion: "Salutation Level", Description: "Salutation quality (hi/hello/good morning/excited)", Keywords: trimAll(greetings), Weight: 5},
		{Criterion: "Keyword Presence", Description: "Presence of name, age, class/school, family, hobbies, goals, unique point", Keywords: r.Keywords, Weight: 30},
		{Criterion: "Flow", Description: "Order: Salutation -> Basic details -> Additional -> Closing", Weight: 5},
		{Criterion: "Speech Rate", Description: "Words per minute evaluation", Weight: 10},
		{Criterion: "Grammar", Description: "Grammar errors count based score", Weight: 10},
		{Criterion: "Vocabulary", Description: "Vocabulary richness (TTR)", Weight: 10},
		{Criterion: "Filler Words", Description: "Filler word rate", Keywords: r.FillerWords, Weight: 15},
		{Criterion: "Engagement/Sentiment", Description: "Positive/enthusiastic sentiment", Weight: 15},
	}
}

// WriteCSV writes the sheet with a header row. Keywords are joined with ';'.
func (r Rubric) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sheetHeader); err != nil {
		return err
	}
	for _, row := range r.Sheet() {
		maxWords := ""
		if row.MaxWords > 0 {
			maxWords = strconv.Itoa(row.MaxWords)
		}
		rec := []string{
			row.Criterion,
			row.Description,
			strings.Join(row.Keywords, ";"),
			strconv.Itoa(row.Weight),
			strconv.Itoa(row.MinWords),
			maxWords,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func trimAll(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.Trim(strings.TrimSpace(s), ",")
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
