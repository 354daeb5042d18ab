// Command dedupe finds and removes duplicate survey records and writes a plain
// text report of what it found.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/surveyclean/internal/cli"
	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/dataio"
	"github.com/JonMunkholm/surveyclean/internal/logging"
)

const usage = `Usage: dedupe [options]

Options:
  --similar    Also report record pairs that match on most columns
  --help, -h   Show this help message
`

type options struct {
	similar bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n%s", err, usage)
		return 1
	}

	env, err := cli.Start("dedupe")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}
	defer env.Finish()

	if err := dedupe(env, opts); err != nil {
		return cli.Fail(env.Ctx, stderr, "dedupe failed", err)
	}
	return 0
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.similar, "similar", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, err
		}
		return opts, fmt.Errorf("unknown option: %w", err)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unknown option: %s", fs.Arg(0))
	}
	return opts, nil
}

func dedupe(env *cli.Env, opts options) error {
	cfg := env.Config
	logger := logging.FromContext(env.Ctx)

	keep, err := core.ParseKeepStrategy(cfg.Pipeline.Keep)
	if err != nil {
		return err
	}

	ds, err := dataio.LoadCSV(cfg.Paths.DedupeInput)
	if err != nil {
		return err
	}
	env.Metrics.Loaded(ds.Len())
	logger.Info("dataset loaded", "path", cfg.Paths.DedupeInput, "rows", ds.Len(), "columns", len(ds.Columns()))

	similarity := 0.0
	if opts.similar {
		similarity = cfg.Pipeline.SimilarityThreshold
	}
	rep, err := core.AnalyzeDuplicates(ds, cfg.Pipeline.KeyColumns, similarity)
	if err != nil {
		return err
	}
	logger.Info("duplicates analyzed",
		"exact_groups", len(rep.ExactGroups),
		"key_groups", len(rep.KeyGroups),
		"key_columns", rep.KeyColumns,
	)
	if opts.similar {
		logger.Info("similar records", "pairs", len(rep.SimilarPairs), "threshold", similarity)
	}

	out, removed := core.DropDuplicates(ds, keep)
	rep.RowsOut = out.Len()
	rep.Strategy = keep
	env.Metrics.DuplicatesRemoved(removed)

	if err := dataio.SaveCSV(out, cfg.Paths.DedupeOutput); err != nil {
		return err
	}
	env.Metrics.Written(out.Len())
	logger.Info("deduplicated dataset written",
		"path", cfg.Paths.DedupeOutput,
		"rows", out.Len(),
		"removed", removed,
		"removed_percent", rep.RemovedPercent(),
	)

	if err := writeReport(cfg.Paths.DedupeReport, rep); err != nil {
		return err
	}
	logger.Info("report written", "path", cfg.Paths.DedupeReport)
	return nil
}

func writeReport(path string, rep core.DedupeReport) error {
	f, err := dataio.Create(path)
	if err != nil {
		return err
	}
	if err := rep.WriteText(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", core.ErrNotWritable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNotWritable, err)
	}
	return nil
}
