package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/internal/config"
	"github.com/soltixdb/quant/internal/logging"
)

// AnalysisService runs toolkit analyses over a single series, or a pair of
// series for correlation, using configured defaults for omitted parameters.
type AnalysisService struct {
	logger *logging.Logger
	cfg    config.AnalysisConfig
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(logger *logging.Logger, cfg config.AnalysisConfig) *AnalysisService {
	if logger == nil {
		logger = logging.Global()
	}
	return &AnalysisService{
		logger: logger,
		cfg:    cfg,
	}
}

// Series is a named input series
type Series struct {
	Name string
	Data analytics.TimeSeriesData
}

// ReportMeta identifies one analysis report
type ReportMeta struct {
	ReportID    string    `json:"report_id"`
	Operation   string    `json:"operation"`
	Series      string    `json:"series,omitempty"`
	Points      int       `json:"points"`
	GeneratedAt time.Time `json:"generated_at"`
}

func newMeta(operation string, series Series) ReportMeta {
	return ReportMeta{
		ReportID:    uuid.New().String(),
		Operation:   operation,
		Series:      series.Name,
		Points:      series.Data.Len(),
		GeneratedAt: time.Now().UTC(),
	}
}

// completed logs the end of an operation
func (s *AnalysisService) completed(ctx context.Context, meta ReportMeta, start time.Time, fields ...interface{}) {
	base := []interface{}{
		"report_id", meta.ReportID,
		"operation", meta.Operation,
		"points", meta.Points,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if meta.Series != "" {
		base = append(base, "series", meta.Series)
	}
	s.logger.WithContext(ctx).Info("Analysis completed", append(base, fields...)...)
}

// failed logs and returns err
func (s *AnalysisService) failed(ctx context.Context, operation string, err *ServiceError) error {
	s.logger.WithContext(ctx).Warn("Analysis failed",
		"operation", operation,
		"code", err.Code,
		"error", err.Message)
	return err
}

// optional turns a toolkit result into a pointer, nil when undefined
func optional(value float64, err error) *float64 {
	if err != nil {
		return nil
	}
	return &value
}
