// Package console runs an assessment interactively over a reader/writer pair.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/dshills/prtassess/internal/assessment"
	"github.com/dshills/prtassess/internal/gauge"
	"github.com/dshills/prtassess/internal/logging"
	"github.com/dshills/prtassess/internal/questions"
	"github.com/dshills/prtassess/internal/record"
	"github.com/dshills/prtassess/internal/render"
)

// Default output files, written to the working directory.
const (
	DefaultImagePath  = "prt_assessment_result.png"
	DefaultRecordPath = "prt_assessment_results.json"
)

var ErrInputClosed = errors.New("input closed before all questions were answered")

// Options configures a console run.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Set        *questions.Set
	ImagePath  string
	RecordPath string
	Now        func() time.Time
	Logger     *slog.Logger
}

func (o *Options) defaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.ImagePath == "" {
		o.ImagePath = DefaultImagePath
	}
	if o.RecordPath == "" {
		o.RecordPath = DefaultRecordPath
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
}

// Run asks every question, scores the answers, prints the results and
// writes the gauge image and JSON record.
func Run(ctx context.Context, opts Options) (*assessment.Result, error) {
	opts.defaults()
	if opts.Set == nil || opts.Set.Len() == 0 {
		return nil, assessment.ErrNoQuestions
	}
	log := opts.Logger

	banner(opts.Out)
	answers, err := Ask(ctx, bufio.NewScanner(opts.In), opts.Out, opts.Set)
	if err != nil {
		return nil, err
	}

	res, err := assessment.Evaluate(opts.Set.Len(), answers)
	if err != nil {
		return nil, err
	}
	log.Debug("scored", "score", res.Score, "percentage", res.Percentage, "severity", res.Severity)

	// Downsamples colors to what Out supports; plain text when it is not a terminal.
	lipgloss.Fprint(opts.Out, render.Console(res))

	png, err := gauge.Render(res.Percentage, res.Severity)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(opts.ImagePath, png, 0644); err != nil {
		return nil, fmt.Errorf("console.Run: write image: %w", err)
	}
	log.Debug("wrote gauge", "path", opts.ImagePath, "bytes", len(png))
	fmt.Fprintf(opts.Out, "\nThermometer visualization saved as '%s'\n", opts.ImagePath)

	rec := record.New(opts.Set.Texts(), res, opts.Now())
	if err := record.WriteFile(opts.RecordPath, rec); err != nil {
		return nil, err
	}
	log.Debug("wrote record", "path", opts.RecordPath)
	fmt.Fprintf(opts.Out, "\nResults saved to '%s'\n", opts.RecordPath)

	return &res, nil
}

func banner(w io.Writer) {
	fmt.Fprintln(w, "\n"+render.Rule(50))
	fmt.Fprintln(w, "PRT ASSESSMENT - PROPERTY PROBLEM SEVERITY ANALYZER")
	fmt.Fprintln(w, render.Rule(50))
	fmt.Fprintln(w, "\nAnswer the following questions about the property issue:")
}

// Ask prompts for each question in order until it gets yes or no.
func Ask(ctx context.Context, sc *bufio.Scanner, w io.Writer, set *questions.Set) ([]bool, error) {
	answers := make([]bool, 0, set.Len())
	for i, q := range set.Questions {
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fmt.Fprintf(w, "\nQ%d: %s (yes/no): ", i+1, q)
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, fmt.Errorf("console.Ask: %w", err)
				}
				return nil, ErrInputClosed
			}
			if a, ok := assessment.ParseAnswer(sc.Text()); ok {
				answers = append(answers, a)
				break
			}
			fmt.Fprintln(w, "Please enter 'yes' or 'no'.")
		}
	}
	return answers, nil
}
