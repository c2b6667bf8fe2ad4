package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/prtassess/internal/config"
	"github.com/dshills/prtassess/internal/record"
	"github.com/dshills/prtassess/internal/render"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved assessment records",
	}
	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var (
		dir   string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("results-dir") {
				cfg, err := config.Load()
				if err != nil {
					return exitError(3, "failed to load config: %v", err)
				}
				dir = cfg.ResultsDir
			}
			return runHistoryList(cmd.OutOrStdout(), dir, limit)
		},
	}
	cmd.Flags().StringVar(&dir, "results-dir", config.DefaultResultsDir, "Directory holding JSON records (env PRT_RESULTS_DIR)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most N records (0 shows all)")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <record-file>",
		Short: "Validate and print one saved record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd.OutOrStdout(), args[0], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "Output format: json or md")
	return cmd
}

func runHistoryList(w io.Writer, dir string, limit int) error {
	if limit < 0 {
		return exitError(3, "--limit must not be negative")
	}
	entries, err := record.List(dir)
	if err != nil {
		return exitError(3, "failed to list records: %v", err)
	}
	if len(entries) == 0 {
		fmt.Fprintf(w, "No records in %s\n", dir)
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		l, err := record.Load(e.Path)
		if err != nil {
			fmt.Fprintf(w, "%s  INVALID\n", e.Name)
			continue
		}
		r := l.Record
		fmt.Fprintf(w, "%s  %s  %d/%d  %5.1f%%  %s\n",
			e.Name, r.Timestamp, r.Score, len(r.Questions), r.ScorePercentage, strings.ToUpper(r.SeverityLevel))
	}
	return nil
}

func runHistoryShow(w io.Writer, path, format string) error {
	if format != "json" && format != "md" {
		return exitError(3, "unknown format: %s", format)
	}

	l, err := record.Load(path)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return exitError(3, "failed to read record: %v", err)
		}
		return exitError(5, "invalid record: %v", err)
	}

	if errs := record.Validate(&l.Record); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Record validation errors:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return exitError(5, "record %s failed validation", path)
	}

	switch format {
	case "json":
		data, err := record.Marshal(l.Record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		fmt.Fprint(w, render.Markdown(&l.Record))
		fmt.Fprintf(w, "\n_%s_\n", l.Hash)
		return nil
	}
}
