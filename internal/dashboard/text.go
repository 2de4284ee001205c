package dashboard

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const barWidth = 20

// WriteText draws the dashboard for a terminal. Collapsed panels show only
// their header and bar.
func WriteText(w io.Writer, d *Dashboard) error {
	bw := bufio.NewWriter(w)
	upper := cases.Upper(language.English)

	for _, c := range d.Cards {
		fmt.Fprintf(bw, "%-14s %s\n", upper.String(c.Title)+":", c.Value)
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "OVERALL:       %s%%  %s\n", num(d.OverallScore), bar(d.Donut.Score, 100))
	fmt.Fprintln(bw)

	for i, p := range d.Panels {
		marker := "+"
		if p.Expanded {
			marker = "-"
		}
		fmt.Fprintf(bw, "[%s] %d. %-22s %s/%s  %s %s%%\n",
			marker, i+1, p.Label, num(p.Score), num(p.MaxScore),
			bar(p.Score, p.MaxScore), strconv.FormatFloat(p.Percent, 'f', 1, 64))
		if p.Expanded && p.Feedback != "" {
			fmt.Fprintf(bw, "      %s\n", p.Feedback)
		}
	}
	return bw.Flush()
}

func bar(v, max float64) string {
	filled := 0
	if max > 0 {
		filled = int(math.Round(v / max * barWidth))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
