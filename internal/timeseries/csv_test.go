package timeseries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soltixdb/quant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader_Header(t *testing.T) {
	input := `time,value
2024-01-01T00:00:00Z,10.5
2024-01-02T00:00:00Z,11

2024-01-03T00:00:00Z,12.25
`
	series, err := LoadCSVFromReader(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())

	assert.Equal(t, []float64{10.5, 11, 12.25}, series.Values())
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), series[2].Time)
}

func TestLoadCSVFromReader_NamedColumns(t *testing.T) {
	input := `# exported prices
Date;Open;Close
2024-01-01;1;2
2024-01-02;3;4
`
	opts := DefaultCSVOptions()
	opts.TimeColumn = "date"
	opts.ValueColumn = "close"
	opts.TimeFormat = "2006-01-02"
	opts.Delimiter = ';'

	series, err := LoadCSVFromReader(strings.NewReader(input), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, series.Values())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series[1].Time)
}

func TestLoadCSVFromReader_SingleColumn(t *testing.T) {
	series, err := LoadCSVFromReader(strings.NewReader("price\n1\n2\n3\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, series.Values())
	assert.True(t, series[0].Time.IsZero())
}

func TestLoadCSVFromReader_NoHeader(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.HasHeader = false
	opts.TimeFormat = TimeFormatUnix

	series, err := LoadCSVFromReader(strings.NewReader("1700000000,5\n1700000060,6\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, series.Values())
	assert.Equal(t, time.Unix(1700000060, 0).UTC(), series[1].Time)

	series, err = LoadCSVFromReader(strings.NewReader("5\n6\n7\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 7}, series.Values())
}

func TestLoadCSVFromReader_UnixMillis(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.TimeFormat = TimeFormatUnixMS

	series, err := LoadCSVFromReader(strings.NewReader("time,value\n1700000000123,1\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1700000000123).UTC(), series[0].Time)
}

func TestLoadCSVFromReader_SkipRows(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.SkipRows = 1

	series, err := LoadCSVFromReader(strings.NewReader("generated by exporter\nvalue\n1\n2\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, series.Values())
}

func TestLoadCSVFromReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "missing value column",
			input:   "time,price\n2024-01-01T00:00:00Z,1\n",
			wantErr: `value column "value" not found`,
		},
		{
			name:    "non numeric value",
			input:   "value\n1\nabc\n",
			wantErr: `line 3: value "abc" is not a number`,
		},
		{
			name:    "bad time",
			input:   "time,value\nyesterday,1\n",
			wantErr: `line 2: time "yesterday" does not match layout`,
		},
		{
			name:    "header only",
			input:   "time,value\n",
			wantErr: ErrNoData.Error(),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrNoData.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSVFromReader(strings.NewReader(tt.input), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte("time,value\n2024-01-01T00:00:00Z,42\n"), 0o644))

	series, err := LoadCSV(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{42}, series.Values())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.InputConfig{
		TimeColumn:  "ts",
		ValueColumn: "close",
		TimeFormat:  TimeFormatUnix,
		Delimiter:   "\t",
	})

	assert.Equal(t, "ts", opts.TimeColumn)
	assert.Equal(t, "close", opts.ValueColumn)
	assert.Equal(t, TimeFormatUnix, opts.TimeFormat)
	assert.Equal(t, '\t', opts.Delimiter)
	assert.True(t, opts.HasHeader)

	defaults := OptionsFromConfig(config.InputConfig{})
	assert.Equal(t, DefaultCSVOptions(), defaults)
}

func TestParseValues(t *testing.T) {
	series, err := ParseValues("1, 2.5;3 4e1")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3, 40}, series.Values())

	_, err = ParseValues("   ")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = ParseValues("1,x")
	assert.Error(t, err)
}
