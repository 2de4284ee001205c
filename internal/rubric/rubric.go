package rubric

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrRubricNotFound is returned by Load when the rubric file does not exist.
var ErrRubricNotFound = errors.New("rubric file not found")

// Synonym rewrites a phrase inside a keyword before matching.
type Synonym struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Salutations are greeting phrases grouped by how many points they earn.
type Salutations struct {
	Excellent []string `yaml:"excellent"` // 5 points
	Formal    []string `yaml:"formal"`    // 4 points
	Informal  []string `yaml:"informal"`  // 2 points
}

// FlowSection is one step of the expected introduction order.
type FlowSection struct {
	Name string   `yaml:"name"`
	Cues []string `yaml:"cues"`
}

// Rubric holds the phrase lists the scoring engine matches against.
type Rubric struct {
	FillerWords       []string      `yaml:"filler_words"`
	Keywords          []string      `yaml:"keywords"`
	Synonyms          []Synonym     `yaml:"synonyms"`
	Salutations       Salutations   `yaml:"salutations"`
	Flow              []FlowSection `yaml:"flow"`
	SemanticReference string        `yaml:"semantic_reference"`
}

// Default returns the built-in self-introduction rubric.
func Default() Rubric {
	r := Rubric{
		FillerWords: []string{
			"um", "uh", "like", "you know", "so", "actually", "basically", "right", "i mean",
			"well", "kind of", "sort of", "okay", "hmm", "erm", "ah", "uhm", "ahh",
		},
		Keywords: []string{
			"name", "age", "school", "class", "family", "hobbies", "interests",
			"ambition", "goal", "dream", "fun fact", "strength", "achievement",
		},
		Synonyms: []Synonym{
			{From: "school/class", To: "school"},
			{From: "class/school", To: "school"},
			{From: "hobbies/interests", To: "hobbies"},
			{From: "what they do in free time", To: "hobbies"},
			{From: "ambition/goal/dream", To: "ambition"},
			{From: "strengths or achievements", To: "strength"},
		},
		Salutations: Salutations{
			Excellent: []string{"i am excited to introduce", "i'm excited to introduce"},
			Formal:    []string{"good morning", "good afternoon", "good evening", "good day"},
			Informal:  []string{"hi ", "hello ", "hi,", "hello,"},
		},
		Flow: []FlowSection{
			{Name: "salutation", Cues: []string{"hi", "hello", "good morning", "good afternoon", "good evening", "good day", "i am excited"}},
			{Name: "name", Cues: []string{"name", "i am", "i'm", "my name is"}},
			{Name: "age", Cues: []string{"age", "years old"}},
			{Name: "school", Cues: []string{"school", "class", "college"}},
			{Name: "additional", Cues: []string{"hobbies", "interest", "hobby", "fun fact", "strength", "achievement", "ambition", "goal", "dream"}},
			{Name: "closing", Cues: []string{"thank you", "thanks for listening", "thank you for listening", "thankyou"}},
		},
		SemanticReference: "Introduction/self introduction content expected",
	}
	r.Keywords = r.NormalizeKeywords(r.Keywords)
	return r
}

// Load reads a YAML rubric. Sections absent from the file keep their defaults.
func Load(path string) (Rubric, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied rubric path
	if err != nil {
		if os.IsNotExist(err) {
			return Rubric{}, ErrRubricNotFound
		}
		return Rubric{}, err
	}
	r := Default()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rubric{}, fmt.Errorf("parse rubric %s: %w", path, err)
	}
	r.Keywords = r.NormalizeKeywords(r.Keywords)
	r.FillerWords = lowerAll(r.FillerWords)
	return r, nil
}

// NormalizeKeywords lowercases and trims keywords, drops blanks and applies
// the synonym rewrites in order.
func (r Rubric) NormalizeKeywords(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		for _, syn := range r.Synonyms {
			if syn.From != "" && strings.Contains(s, syn.From) {
				s = strings.ReplaceAll(s, syn.From, syn.To)
			}
		}
		out = append(out, s)
	}
	return out
}

// WriteYAML encodes the rubric so it can be edited and loaded back with Load.
func (r Rubric) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
