package dataio

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/kshedden/datareader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/surveyclean/internal/core"
)

// fakeStat serves prepared chunks, then ends the way the given reader does.
type fakeStat struct {
	names  []string
	chunks [][]*datareader.Series
	endErr error
}

func (f *fakeStat) ColumnNames() []string { return f.names }

func (f *fakeStat) Read(int) ([]*datareader.Series, error) {
	if len(f.chunks) == 0 {
		return nil, f.endErr
	}
	c := f.chunks[0]
	f.chunks = f.chunks[1:]
	return c, nil
}

func series(t *testing.T, name string, data any, missing []bool) *datareader.Series {
	t.Helper()
	s, err := datareader.NewSeries(name, data, missing)
	require.NoError(t, err)
	return s
}

func TestReadStat_Chunks(t *testing.T) {
	when := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)

	for name, endErr := range map[string]error{"stata style": nil, "sas style": io.EOF} {
		t.Run(name, func(t *testing.T) {
			rdr := &fakeStat{
				names:  []string{"Howoldareyou", "Areyoumaleorfemale", "Yourheight", "start"},
				endErr: endErr,
				chunks: [][]*datareader.Series{
					{
						series(t, "Howoldareyou", []int32{30, 41}, []bool{false, true}),
						series(t, "Areyoumaleorfemale", []string{"Male", ""}, nil),
						series(t, "Yourheight", []float64{1.8, 5.9}, nil),
						series(t, "start", []time.Time{when, when}, []bool{false, true}),
					},
					{
						series(t, "Howoldareyou", []int32{22}, nil),
						series(t, "Areyoumaleorfemale", []string{"Female"}, nil),
						series(t, "Yourheight", []float64{170}, nil),
						series(t, "start", []time.Time{when}, nil),
					},
				},
			}

			ds, err := readStat(rdr)
			require.NoError(t, err)
			assert.Equal(t, []string{core.ColAge, core.ColSex, core.ColHeightRaw, "start"}, ds.Columns())
			require.Equal(t, 3, ds.Len())

			assert.Equal(t, 30.0, ds.Value(0, core.ColAge))
			assert.Nil(t, ds.Value(1, core.ColAge))
			assert.Nil(t, ds.Value(1, core.ColSex))
			assert.Equal(t, when, ds.Value(0, "start"))
			assert.Nil(t, ds.Value(1, "start"))
			assert.Equal(t, "Female", ds.Value(2, core.ColSex))
			assert.Equal(t, 170.0, ds.Value(2, core.ColHeightRaw))
		})
	}
}

func TestReadStat_Errors(t *testing.T) {
	_, err := readStat(&fakeStat{})
	assert.True(t, errors.Is(err, core.ErrEmptySource))

	boom := errors.New("corrupt page")
	_, err = readStat(&fakeStat{names: []string{"a"}, endErr: boom})
	assert.ErrorIs(t, err, boom)

	_, err = readStat(&fakeStat{
		names:  []string{"a", "b"},
		chunks: [][]*datareader.Series{{series(t, "a", []float64{1}, nil)}},
	})
	assert.Error(t, err, "chunk narrower than the header")
}

func TestLoadStat_Errors(t *testing.T) {
	_, err := LoadStat("survey.sav")
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat), "got %v", err)

	_, err = LoadStat(filepath.Join(t.TempDir(), "survey.dta"))
	assert.True(t, errors.Is(err, core.ErrSourceNotFound), "got %v", err)
}
