// Command clean prepares the exported survey for duplicate detection: it keeps
// the survey columns and normalizes their text to trimmed lower case.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/surveyclean/internal/cli"
	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/dataio"
	"github.com/JonMunkholm/surveyclean/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(stderr, "unknown option: %s\nUsage: clean\n", args[0])
		return 1
	}

	env, err := cli.Start("clean")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}
	defer env.Finish()

	if err := clean(env); err != nil {
		return cli.Fail(env.Ctx, stderr, "clean failed", err)
	}
	return 0
}

func clean(env *cli.Env) error {
	paths := env.Config.Paths
	logger := logging.FromContext(env.Ctx)

	ds, err := dataio.LoadCSV(paths.CleanInput)
	if err != nil {
		return err
	}
	env.Metrics.Loaded(ds.Len())
	logger.Info("dataset loaded", "path", paths.CleanInput, "rows", ds.Len(), "columns", len(ds.Columns()))

	out, err := core.CleanSurvey(ds)
	if err != nil {
		return err
	}

	if err := dataio.SaveCSV(out, paths.CleanOutput); err != nil {
		return err
	}
	env.Metrics.Written(out.Len())
	logger.Info("cleaned dataset written", "path", paths.CleanOutput, "rows", out.Len(), "columns", len(out.Columns()))
	return nil
}
