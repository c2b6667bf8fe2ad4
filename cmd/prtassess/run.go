package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/prtassess/internal/assessment"
	"github.com/dshills/prtassess/internal/console"
	"github.com/dshills/prtassess/internal/logging"
	"github.com/dshills/prtassess/internal/questions"
)

type runFlags struct {
	image     string
	out       string
	questions string
	verbose   bool

	// test hooks
	stdin  io.Reader
	stdout io.Writer
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Answer the questionnaire in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.stdin = cmd.InOrStdin()
			f.stdout = cmd.OutOrStdout()
			return runAssess(cmd.Context(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.image, "image", console.DefaultImagePath, "Gauge image output path")
	flags.StringVar(&f.out, "out", console.DefaultRecordPath, "JSON record output path")
	flags.StringVar(&f.questions, "questions", questions.Console, "Built-in question set")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")

	return cmd
}

func runAssess(ctx context.Context, f *runFlags) error {
	logger := logging.Discard()
	if f.verbose {
		logger = logging.New(os.Stderr, "debug", logging.Text)
	}

	set, err := questions.LoadBuiltin(f.questions)
	if err != nil {
		return exitError(3, "failed to load questions: %v", err)
	}
	logger.Debug("loaded questions", "set", set.Name, "count", set.Len())

	_, err = console.Run(ctx, console.Options{
		In:         f.stdin,
		Out:        f.stdout,
		Set:        set,
		ImagePath:  f.image,
		RecordPath: f.out,
		Logger:     logger,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, console.ErrInputClosed), errors.Is(err, assessment.ErrNoQuestions):
		return exitError(3, "assessment aborted: %v", err)
	case errors.Is(err, context.Canceled):
		return exitError(1, "assessment interrupted")
	default:
		return fmt.Errorf("assessment failed: %w", err)
	}
}
