package scoring

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// contractions written without an apostrophe count as grammar slips.
var bareContractions = map[string]struct{}{
	"dont": {}, "doesnt": {}, "isnt": {}, "cant": {},
	"wont": {}, "shouldnt": {}, "couldnt": {}, "wouldnt": {},
}

// document is the pre-processed transcript shared by all criteria.
type document struct {
	text     string // trimmed input
	lower    string
	tokens   []string
	spans    [][]int // byte offsets of tokens within lower
	duration *float64
}

func newDocument(text string, duration *float64) *document {
	t := strings.TrimSpace(text)
	lower := foldLower(t)
	spans := wordRe.FindAllStringIndex(lower, -1)
	tokens := make([]string, len(spans))
	for i, s := range spans {
		tokens[i] = lower[s[0]:s[1]]
	}
	return &document{text: t, lower: lower, tokens: tokens, spans: spans, duration: duration}
}

// foldLower lowercases with Unicode rules. Casers are stateful, so one per call.
func foldLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func (d *document) wordCount() int { return len(d.tokens) }

func (d *document) sentenceCount() int {
	n := 0
	for _, s := range sentenceRe.Split(d.text, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// ttr is unique tokens over total tokens, 0 for an empty document.
func (d *document) ttr() float64 {
	if len(d.tokens) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(d.tokens))
	for _, t := range d.tokens {
		seen[t] = struct{}{}
	}
	return float64(len(seen)) / float64(len(d.tokens))
}

// detectKeywords returns the keywords present in the text, in rubric order.
func (d *document) detectKeywords(keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if kw != "" && strings.Contains(d.lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// repeatedWords counts non-overlapping "word word" pairs separated only by whitespace.
func (d *document) repeatedWords() int {
	n := 0
	for i := 0; i+1 < len(d.tokens); {
		gap := d.lower[d.spans[i][1]:d.spans[i+1][0]]
		if d.tokens[i] == d.tokens[i+1] && gap != "" && strings.TrimSpace(gap) == "" {
			n++
			i += 2
			continue
		}
		i++
	}
	return n
}

func (d *document) bareContractionCount() int {
	n := 0
	for _, t := range d.tokens {
		if _, ok := bareContractions[t]; ok {
			n++
		}
	}
	return n
}

// phraseMatcher counts word-bounded occurrences of a fixed set of phrases.
// Boundaries follow the tokenizer: letters, digits and '_' of any script
// are word characters.
type phraseMatcher struct {
	phrases []string
}

func newPhraseMatcher(phrases []string) phraseMatcher {
	m := phraseMatcher{}
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m.phrases = append(m.phrases, foldLower(p))
	}
	return m
}

// count returns non-overlapping matches per phrase, summed over phrases.
func (m phraseMatcher) count(lower string) int {
	n := 0
	for _, p := range m.phrases {
		for i := 0; i < len(lower); {
			j := strings.Index(lower[i:], p)
			if j < 0 {
				break
			}
			start, end := i+j, i+j+len(p)
			if atBoundary(lower, start, p, true) && atBoundary(lower, end, p, false) {
				n++
				i = end
				continue
			}
			_, size := utf8.DecodeRuneInString(lower[start:])
			i = start + size
		}
	}
	return n
}

// atBoundary reports whether a match edge at offset off is a word boundary:
// exactly one side of it is a word character.
func atBoundary(s string, off int, phrase string, leading bool) bool {
	var inside, outside rune = -1, -1
	if leading {
		inside, _ = utf8.DecodeRuneInString(phrase)
		if off > 0 {
			outside, _ = utf8.DecodeLastRuneInString(s[:off])
		}
	} else {
		inside, _ = utf8.DecodeLastRuneInString(phrase)
		if off < len(s) {
			outside, _ = utf8.DecodeRuneInString(s[off:])
		}
	}
	return isWordRune(inside) != isWordRune(outside)
}

func isWordRune(r rune) bool {
	return r >= 0 && (r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r))
}

// round rounds half to even on the exact decimal value of v, so 0.125 at two
// places gives 0.12.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil || r == 0 {
		return 0
	}
	return r
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
