package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/internal/analytics/downsample"
	"github.com/soltixdb/quant/internal/analytics/resample"
)

// SeriesPoint is one point of a derived series
type SeriesPoint struct {
	Time  string  `json:"time,omitempty"`
	Value float64 `json:"value"`
}

func seriesPoints(data analytics.TimeSeriesData) []SeriesPoint {
	points := make([]SeriesPoint, len(data))
	for i, p := range data {
		points[i] = SeriesPoint{Value: p.Value}
		if !p.Time.IsZero() {
			points[i].Time = p.Time.Format(time.RFC3339)
		}
	}
	return points
}

// DownsampleRequest selects a downsampling mode and target size. Empty
// Mode and zero Threshold take the configured defaults.
type DownsampleRequest struct {
	Series    Series
	Mode      string
	Threshold int
}

// DownsampleResponse holds the reduced series
type DownsampleResponse struct {
	ReportMeta
	Mode      string        `json:"mode"`    // Requested
	Applied   string        `json:"applied"` // Algorithm that ran, "none" when nothing was removed
	Threshold int           `json:"threshold"`
	Points    []SeriesPoint `json:"points"`
}

// Downsample reduces a series to about Threshold points
func (s *AnalysisService) Downsample(ctx context.Context, req DownsampleRequest) (*DownsampleResponse, error) {
	const operation = "downsample"
	start := time.Now()

	mode := req.Mode
	if mode == "" {
		mode = s.cfg.DownsampleMode
	}
	threshold := req.Threshold
	if threshold == 0 {
		threshold = s.cfg.DownsampleThreshold
	}

	if !downsample.IsValid(mode) {
		available := make([]string, 0, len(downsample.ValidModes()))
		for _, m := range downsample.ValidModes() {
			available = append(available, string(m))
		}
		return nil, s.failed(ctx, operation, invalidMethod(
			fmt.Errorf("%w: %s", downsample.ErrUnknownMode, mode), available))
	}
	if threshold < 2 {
		return nil, s.failed(ctx, operation, NewServiceErrorWithDetails(CodeInvalidInput,
			operation+": threshold must be at least 2",
			map[string]interface{}{"threshold": threshold}))
	}
	if req.Series.Data.Len() == 0 {
		return nil, s.failed(ctx, operation, insufficientData(operation, 1, 0))
	}

	sampled, applied, err := downsample.Apply(req.Series.Data, downsample.Mode(mode), threshold)
	if err != nil {
		return nil, s.failed(ctx, operation, fromToolkitError(operation, err))
	}

	resp := &DownsampleResponse{
		ReportMeta: newMeta(operation, req.Series),
		Mode:       mode,
		Applied:    string(applied),
		Threshold:  threshold,
		Points:     seriesPoints(sampled),
	}

	s.completed(ctx, resp.ReportMeta, start, "mode", mode, "applied", resp.Applied, "kept", len(resp.Points))
	return resp, nil
}

// ResampleRequest selects the bucket level, e.g. "1h", "1d", "1M" or "15m"
type ResampleRequest struct {
	Series Series
	Level  string
}

// Candle is one resampled bucket
type Candle struct {
	*resample.Bucket
	StdDev float64 `json:"std_dev"` // Population standard deviation within the bucket
}

// ResampleResponse holds one candle per non-empty bucket
type ResampleResponse struct {
	ReportMeta
	Level   string   `json:"level"`
	Candles []Candle `json:"candles"`
}

// Resample groups a timestamped series into OHLC candles
func (s *AnalysisService) Resample(ctx context.Context, req ResampleRequest) (*ResampleResponse, error) {
	const operation = "resample"
	start := time.Now()

	level, err := resample.ParseLevel(req.Level)
	if err != nil {
		return nil, s.failed(ctx, operation, NewServiceErrorWithDetails(CodeInvalidInput,
			operation+": "+err.Error(), map[string]interface{}{"level": req.Level}))
	}
	if req.Series.Data.Len() == 0 {
		return nil, s.failed(ctx, operation, insufficientData(operation, 1, 0))
	}

	buckets, err := resample.Resample(req.Series.Data, level)
	if errors.Is(err, resample.ErrMissingTime) {
		return nil, s.failed(ctx, operation, NewServiceError(CodeInvalidInput, operation+": "+err.Error()))
	}
	if err != nil {
		return nil, s.failed(ctx, operation, fromToolkitError(operation, err))
	}

	resp := &ResampleResponse{
		ReportMeta: newMeta(operation, req.Series),
		Level:      string(level),
		Candles:    make([]Candle, len(buckets)),
	}
	for i, b := range buckets {
		resp.Candles[i] = Candle{Bucket: b, StdDev: b.StdDev()}
	}

	s.completed(ctx, resp.ReportMeta, start, "level", resp.Level, "candles", len(resp.Candles))
	return resp, nil
}
