package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/surveyclean/internal/config"
	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/logging"
)

func TestNewEnv(t *testing.T) {
	env := NewEnv(context.Background(), &config.Config{}, "clean")
	assert.NotEmpty(t, env.RunID)
	assert.Equal(t, env.RunID, logging.RunID(env.Ctx))
	assert.NotNil(t, env.Metrics)
	env.Finish()
}

func TestFinish_WritesMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.prom")
	cfg := &config.Config{Metrics: config.MetricsConfig{Textfile: path}}

	env := NewEnv(context.Background(), cfg, "transform")
	env.Metrics.Loaded(4)
	env.Finish()

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `surveyclean_records_loaded_total{command="transform"} 4`)
}

func TestFail(t *testing.T) {
	var out bytes.Buffer
	code := Fail(context.Background(), &out, "transform failed", core.ErrSourceNotFound)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FILE001")
}
