package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/internal/services"
	"github.com/soltixdb/quant/internal/timeseries"
)

// Sentinel errors for command input.
var (
	ErrNoInput          = errors.New("no input: use --file or --values")
	ErrConflictingInput = errors.New("--file and --values are mutually exclusive")
	ErrInvalidFactor    = errors.New("invalid factor, expected name=value")
)

const inlineSeriesName = "values"

// seriesFlags selects one input series
type seriesFlags struct {
	prefix string
	file   string
	values string
	name   string
}

// register adds the input flags, named with prefix (e.g. "other-file")
func (f *seriesFlags) register(cmd *cobra.Command, prefix, what string) {
	f.prefix = prefix
	cmd.Flags().StringVar(&f.file, prefix+"file", "", "CSV file holding the "+what)
	cmd.Flags().StringVar(&f.values, prefix+"values", "", "comma separated values of the "+what)
	cmd.Flags().StringVar(&f.name, prefix+"name", "", "display name of the "+what)
}

func (f *seriesFlags) isSet() bool {
	return f.file != "" || f.values != ""
}

// loadSeries reads the selected series
func (a *app) loadSeries(f *seriesFlags) (services.Series, error) {
	var (
		data analytics.TimeSeriesData
		name = f.name
		err  error
	)

	switch {
	case f.file != "" && f.values != "":
		return services.Series{}, fmt.Errorf("%w (--%sfile, --%svalues)", ErrConflictingInput, f.prefix, f.prefix)
	case f.file != "":
		data, err = timeseries.LoadCSV(f.file, timeseries.OptionsFromConfig(a.cfg.Input))
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(f.file), filepath.Ext(f.file))
		}
	case f.values != "":
		data, err = timeseries.ParseValues(f.values)
		if name == "" {
			name = inlineSeriesName
		}
	default:
		return services.Series{}, ErrNoInput
	}

	if err != nil {
		return services.Series{}, services.NewServiceErrorWithDetails(services.CodeInvalidInput,
			err.Error(), map[string]interface{}{"file": f.file})
	}

	a.logger.Debug("Series loaded", "series", name, "points", data.Len())
	return services.Series{Name: name, Data: timeseries.InLocation(data, a.location)}, nil
}

// parseFactors parses repeated name=value risk factors
func parseFactors(raw []string) (map[string]float64, error) {
	factors := make(map[string]float64, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFactor, item)
		}

		v, err := cast.ToFloat64E(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFactor, item, err)
		}
		factors[name] = v
	}
	return factors, nil
}
