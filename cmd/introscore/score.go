package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mind-engage/introscore/internal/analysis"
	"github.com/mind-engage/introscore/internal/client"
	"github.com/mind-engage/introscore/internal/config"
	"github.com/mind-engage/introscore/internal/dashboard"
	"github.com/mind-engage/introscore/internal/scoring"
)

const (
	defaultServer      = "http://localhost:8080"
	defaultConcurrency = 4
)

// textScorer is what the score command needs from either backend.
type textScorer interface {
	Score(ctx context.Context, text string) (scoring.ScoreResult, error)
}

type localScorer struct {
	engine   *scoring.Engine
	duration *float64
}

func (l localScorer) Score(ctx context.Context, text string) (scoring.ScoreResult, error) {
	return l.engine.Score(ctx, text, l.duration)
}

type remoteScorer struct {
	client   *client.Client
	duration *float64
}

func (r remoteScorer) Score(ctx context.Context, text string) (scoring.ScoreResult, error) {
	return r.client.ScoreTimed(ctx, text, r.duration)
}

type input struct {
	Source string
	Text   string
}

type scored struct {
	Source string              `json:"source"`
	Result scoring.ScoreResult `json:"result"`
}

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [file.txt ...]",
		Short: "Score one or more introduction transcripts",
		Long: `Score sends each transcript to the scoring server and renders the
result as a dashboard: metric cards, the overall score and one panel
per rubric criterion.

Input is taken from .txt files given as arguments, from --text, from
--sample, or from stdin when none of those are set. Only .txt files are
accepted; blank input is rejected before anything is sent.

With --local the engine runs in-process. SENTIMENT=vader, LANGUAGETOOL_URL
and GEMINI_API_KEY switch on the same analysers the server uses.

Examples:
  # Score a transcript through a local server
  introscore score intro.txt

  # Score several files, four at a time, with every panel expanded
  introscore score --expand a.txt b.txt c.txt d.txt e.txt

  # Score the built-in sample in-process and print Markdown
  introscore score --local --sample --format markdown

  # Pipe text in and get the raw JSON result
  echo "Hello everyone, I am Ana." | introscore score --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: runScoreCmd,
	}

	cmd.Flags().StringP("text", "t", "", "Score this text instead of reading files")
	cmd.Flags().Bool("sample", false, "Score the built-in sample introduction")
	cmd.Flags().StringP("format", "f", "text", "Output format: text, markdown or json")
	cmd.Flags().BoolP("expand", "e", false, "Show feedback for every criterion")
	cmd.Flags().StringP("server", "s", serverFromEnv(), "Scoring server base URL (env INTROSCORE_SERVER)")
	cmd.Flags().BoolP("local", "l", false, "Score in-process instead of calling the server")
	cmd.Flags().StringP("rubric", "r", "", "YAML rubric for --local scoring")
	cmd.Flags().Float64P("duration", "d", 0, "Speaking duration in seconds, used for words per minute")
	cmd.Flags().IntP("concurrency", "c", defaultConcurrency, "Number of files scored at once")

	return cmd
}

func serverFromEnv() string {
	if v := os.Getenv("INTROSCORE_SERVER"); v != "" {
		return v
	}
	return defaultServer
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "text", "markdown", "md", "json":
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or json)", format)
	}
	expand, err := cmd.Flags().GetBool("expand")
	if err != nil {
		return err
	}
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cmd, args)
	if err != nil {
		return err
	}
	scorer, err := buildScorer(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := scoreAll(ctx, scorer, inputs, concurrency, logger)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), format, expand, results)
}

// collectInputs reads every input and validates it before any scoring starts.
func collectInputs(cmd *cobra.Command, args []string) ([]input, error) {
	text, err := cmd.Flags().GetString("text")
	if err != nil {
		return nil, err
	}
	sample, err := cmd.Flags().GetBool("sample")
	if err != nil {
		return nil, err
	}

	var inputs []input
	switch {
	case len(args) > 0:
		for _, path := range args {
			t, err := client.LoadTextFile(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			inputs = append(inputs, input{Source: path, Text: t})
		}
	case cmd.Flags().Changed("text"):
		inputs = append(inputs, input{Source: "text", Text: text})
	case sample:
		inputs = append(inputs, input{Source: "sample", Text: client.SampleText})
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		inputs = append(inputs, input{Source: "stdin", Text: string(b)})
	}

	for i := range inputs {
		t, err := client.ValidateText(inputs[i].Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", inputs[i].Source, err)
		}
		inputs[i].Text = t
	}
	return inputs, nil
}

func buildScorer(cmd *cobra.Command) (textScorer, error) {
	local, err := cmd.Flags().GetBool("local")
	if err != nil {
		return nil, err
	}
	var dur *float64
	if d, err := cmd.Flags().GetFloat64("duration"); err == nil && d > 0 {
		dur = &d
	}
	if !local {
		server, err := cmd.Flags().GetString("server")
		if err != nil {
			return nil, err
		}
		return remoteScorer{client: client.New(server), duration: dur}, nil
	}

	rb, err := loadRubric(cmd)
	if err != nil {
		return nil, err
	}
	set, err := analysis.FromConfig(cmd.Context(), config.FromEnv())
	if err != nil {
		return nil, err
	}
	slog.Debug("local engine", "analysers", set.String())
	opts := append([]scoring.Option{scoring.WithRubric(rb)}, set.Options()...)
	return localScorer{engine: scoring.NewEngine(opts...), duration: dur}, nil
}

// scoreAll scores inputs with at most concurrency requests in flight.
// Results keep input order; the first failure cancels the rest.
func scoreAll(ctx context.Context, scorer textScorer, inputs []input, concurrency int, logger *slog.Logger) ([]scored, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]scored, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			logger.Debug("scoring", "source", in.Source, "index", i+1, "total", len(inputs))
			res, err := scorer.Score(ctx, in.Text)
			if err != nil {
				var re *client.ResponseError
				if errors.As(err, &re) {
					logger.Debug("server rejected transcript", "source", in.Source, "status", re.StatusCode)
				}
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			results[i] = scored{Source: in.Source, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func render(w io.Writer, format string, expand bool, results []scored) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			return enc.Encode(results[0].Result)
		}
		return enc.Encode(results)
	}

	for i, r := range results {
		d := dashboard.Build(r.Result)
		if expand {
			d.ExpandAll()
		}
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if format == "text" {
				fmt.Fprintf(w, "== %s ==\n", r.Source)
			} else {
				fmt.Fprintf(w, "<!-- %s -->\n", r.Source)
			}
		}
		var err error
		if format == "text" {
			err = dashboard.WriteText(w, d)
		} else {
			err = dashboard.WriteMarkdown(w, d)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
