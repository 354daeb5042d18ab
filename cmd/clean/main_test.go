package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/surveyclean/internal/cli"
	"github.com/JonMunkholm/surveyclean/internal/config"
	"github.com/JonMunkholm/surveyclean/internal/core"
)

func TestClean(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"start,Howoldareyou,Maritalstatus,Areyoumaleorfemale,Whatisyourhighestlevelofeducation,Yourbodyweight,Yourheight\n"+
			"x, 30 , Married ,MALE,nan,70,5.5\n"), 0o644))

	cfg := &config.Config{Paths: config.PathsConfig{
		CleanInput:  in,
		CleanOutput: filepath.Join(dir, "data_clearance", "output_cleaned.csv"),
	}}
	env := cli.NewEnv(context.Background(), cfg, "clean")

	require.NoError(t, clean(env))

	got, err := os.ReadFile(cfg.Paths.CleanOutput)
	require.NoError(t, err)
	assert.Equal(t,
		"age,marital_status,sex,education,body_weight_kg,height_raw\n"+
			"30,married,male,,70,5.5\n",
		string(got))
}

func TestClean_MissingInput(t *testing.T) {
	cfg := &config.Config{Paths: config.PathsConfig{
		CleanInput:  filepath.Join(t.TempDir(), "absent.csv"),
		CleanOutput: filepath.Join(t.TempDir(), "out.csv"),
	}}
	err := clean(cli.NewEnv(context.Background(), cfg, "clean"))
	assert.True(t, errors.Is(err, core.ErrSourceNotFound), "got %v", err)
}

func TestRun_RejectsArguments(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"--now"}, &stderr))
	assert.Contains(t, stderr.String(), "unknown option")
}
