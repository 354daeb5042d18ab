// Command transform turns the raw survey export into the delivered dataset.
//
// By default it reads the intermediate CSV. With --sav it first converts the
// binary statistics source (Stata or SAS) into that CSV.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/JonMunkholm/surveyclean/internal/cli"
	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/dataio"
	"github.com/JonMunkholm/surveyclean/internal/dataset"
	"github.com/JonMunkholm/surveyclean/internal/logging"
)

type mode int

const (
	modeCSV mode = iota
	modeBinary
)

func (m mode) String() string {
	if m == modeBinary {
		return "binary"
	}
	return "csv"
}

const usage = `Usage: transform [options]

Options:
  --sav, -s, --from-sav    Process from the binary statistics source
  --csv, -c, --from-csv    Process from the intermediate CSV (default)
  --help, -h               Show this help message
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	m, err := parseMode(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n%s", err, usage)
		return 1
	}

	env, err := cli.Start("transform")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}
	defer env.Finish()

	if err := transform(env, m); err != nil {
		return cli.Fail(env.Ctx, stderr, "transform failed", err)
	}
	return 0
}

// parseMode reads the mode flags. Options are matched case-insensitively.
// Asking for both modes is an error.
func parseMode(args []string) (mode, error) {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var sav, csv bool
	for _, name := range []string{"sav", "s", "from-sav"} {
		fs.BoolVar(&sav, name, false, "")
	}
	for _, name := range []string{"csv", "c", "from-csv"} {
		fs.BoolVar(&csv, name, false, "")
	}

	lowered := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, "-") {
			a = strings.ToLower(a)
		}
		lowered[i] = a
	}

	if err := fs.Parse(lowered); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return modeCSV, err
		}
		return modeCSV, fmt.Errorf("unknown option: %w", err)
	}
	if fs.NArg() > 0 {
		return modeCSV, fmt.Errorf("unknown option: %s", fs.Arg(0))
	}
	if sav && csv {
		return modeCSV, errors.New("choose one of --sav or --csv")
	}
	if sav {
		return modeBinary, nil
	}
	return modeCSV, nil
}

func transform(env *cli.Env, m mode) error {
	cfg := env.Config
	logger := logging.FromContext(env.Ctx)
	logger.Info("transform starting", "mode", m.String())

	if m == modeBinary {
		src, err := dataio.LoadStat(cfg.Paths.Source)
		if err != nil {
			return err
		}
		logger.Info("source loaded",
			"path", cfg.Paths.Source,
			"rows", src.Len(),
			"columns", len(src.Columns()),
		)
		if err := dataio.SaveCSV(src, cfg.Paths.Intermediate); err != nil {
			return err
		}
		logger.Info("intermediate csv written", "path", cfg.Paths.Intermediate)
	}

	ds, err := dataio.LoadCSV(cfg.Paths.Intermediate)
	if err != nil {
		return err
	}
	env.Metrics.Loaded(ds.Len())
	logger.Info("dataset loaded",
		"path", cfg.Paths.Intermediate,
		"rows", ds.Len(),
		"columns", len(ds.Columns()),
	)

	out, sum, err := core.NewPipeline(core.WithIDSeed(cfg.Pipeline.IDSeed)).Run(env.Ctx, ds)
	if err != nil {
		return err
	}
	env.Metrics.ObserveSummary(sum)

	if err := dataio.SaveCSV(out, cfg.Paths.Output); err != nil {
		return err
	}
	env.Metrics.Written(out.Len())
	logger.Info("output written", "path", cfg.Paths.Output, "rows", out.Len())

	if cfg.Paths.Export != "" {
		if err := dataio.ExportParquet(out, cfg.Paths.Export); err != nil {
			logger.Warn("binary export failed, csv output is unaffected",
				"path", cfg.Paths.Export,
				"error", err,
				"code", core.MapError(err).Code,
			)
		} else {
			logger.Info("binary export written", "path", cfg.Paths.Export)
		}
	}

	if cfg.Database.Enabled() {
		if err := loadDatabase(env, out); err != nil {
			logger.Warn("database load failed, csv output is unaffected",
				"table", cfg.Database.Table,
				"error", err,
				"code", core.MapError(err).Code,
			)
		}
	}

	logSummary(logger, sum, out)
	return nil
}

func loadDatabase(env *cli.Env, out *dataset.Dataset) error {
	ctx, cancel := context.WithTimeout(env.Ctx, env.Config.Database.ConnectTimeout)
	defer cancel()

	sink, err := dataio.NewPostgresSink(ctx, env.Config.Database)
	if err != nil {
		return err
	}
	defer sink.Close()

	n, err := sink.Write(ctx, out, env.RunID)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("database load complete", "table", env.Config.Database.Table, "rows", n)
	return nil
}

func logSummary(logger *slog.Logger, sum core.Summary, out *dataset.Dataset) {
	logger.Info("summary",
		"rows_in", sum.RowsIn,
		"rows_out", sum.RowsOut,
		"duplicates_removed", sum.DuplicatesRemoved,
		"invalid_removed", sum.InvalidRemoved,
		"height_min_cm", sum.HeightMinCm,
		"height_max_cm", sum.HeightMaxCm,
	)
	for reason, n := range sum.InvalidReasons {
		logger.Info("invalid records", "reason", reason, "records", n)
	}

	counts := make(map[string]int)
	for i := 0; i < out.Len(); i++ {
		if s, ok := out.Value(i, core.ColWeightStatus).(string); ok {
			counts[s]++
		}
	}
	for _, status := range core.WeightStatuses {
		if n := counts[status]; n > 0 {
			logger.Info("weight status", "status", status, "records", n)
		}
	}
}
