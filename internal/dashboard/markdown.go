package dashboard

import (
	"io"
	"math"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// WriteMarkdown renders the dashboard as GitHub-flavored Markdown: a metric
// table, a mermaid pie for the donut, and a details block per criterion.
// Expanded panels are written as plain paragraphs instead.
func WriteMarkdown(w io.Writer, d *Dashboard) error {
	md := markdown.NewMarkdown(w)

	md.H1("Introduction Score")
	md.PlainText("")

	rows := make([][]string, 0, len(d.Cards))
	for _, c := range d.Cards {
		rows = append(rows, []string{c.Title, c.Value})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Overall")
	md.PlainText("")
	writeDonut(md, d.Donut)
	md.PlainTextf("**%s%%**", num(d.OverallScore))
	md.PlainText("")

	md.H2("Criteria")
	md.PlainText("")
	if len(d.Panels) == 0 {
		md.Note("No criteria were returned.")
		return md.Build()
	}
	crit := make([][]string, 0, len(d.Panels))
	for _, p := range d.Panels {
		crit = append(crit, []string{
			p.Label,
			num(p.Score) + "/" + num(p.MaxScore),
			strconv.FormatFloat(p.Percent, 'f', 1, 64) + "%",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Criterion", "Score", "Percent"},
		Rows:   crit,
	})
	md.PlainText("")

	for _, p := range d.Panels {
		if p.Expanded {
			md.H3(p.Label)
			md.PlainText(p.Feedback)
			md.PlainText("")
			continue
		}
		md.Details(p.Label, p.Feedback)
	}
	return md.Build()
}

// writeDonut draws the overall score as a two-slice pie. Slices are whole
// percentages that still add up to 100.
func writeDonut(md *markdown.Markdown, d Donut) {
	score := int(math.Round(d.Score))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Overall score"),
		piechart.WithShowData(true),
	)
	chart.LabelAndIntValue("Score", uint64(score))
	chart.LabelAndIntValue("Remaining", uint64(100-score))

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
