package services

import (
	"context"
	"time"

	"github.com/soltixdb/quant/internal/analytics/anomaly"
)

// minAnomalyPoints is the smallest series the detectors accept
const minAnomalyPoints = 3

// AnomalyRequest selects a detector. Zero Threshold and Multiplier take
// the configured defaults.
type AnomalyRequest struct {
	Series     Series
	Method     string
	Threshold  float64 // Z-score threshold
	Multiplier float64 // IQR fence multiplier
}

// AnomalyResponse lists the anomalies found in a series
type AnomalyResponse struct {
	ReportMeta
	Method    string            `json:"method"`
	Threshold float64           `json:"threshold"`
	Count     int               `json:"count"`
	Anomalies []anomaly.Anomaly `json:"anomalies"`
}

// Anomalies flags unusual points of a series
func (s *AnalysisService) Anomalies(ctx context.Context, req AnomalyRequest) (*AnomalyResponse, error) {
	const operation = "anomalies"
	start := time.Now()

	method := req.Method
	if method == "" {
		method = s.cfg.AnomalyMethod
	}

	detector, err := anomaly.GetDetector(method)
	if err != nil {
		return nil, s.failed(ctx, operation, invalidMethod(err, anomaly.ListDetectors()))
	}

	if n := req.Series.Data.Len(); n < minAnomalyPoints {
		return nil, s.failed(ctx, operation, insufficientData(operation, minAnomalyPoints, n))
	}

	config := anomaly.DefaultConfig()
	config.MinDataPoints = minAnomalyPoints
	config.Threshold = firstPositive(req.Threshold, s.cfg.ZScoreThreshold, config.Threshold)
	config.IQRMultiplier = firstPositive(req.Multiplier, s.cfg.IQRMultiplier, config.IQRMultiplier)
	config.WindowSize = int(firstPositive(float64(s.cfg.BollingerPeriod), float64(config.WindowSize)))
	config.BandMultiplier = firstPositive(s.cfg.BollingerMultiplier, config.BandMultiplier)

	data := req.Series.Data
	results := detector.Detect(data, config)
	anomalies := anomaly.BuildAnomalies(req.Series.Name, data, results, method)

	resp := &AnomalyResponse{
		ReportMeta: newMeta(operation, req.Series),
		Method:     method,
		Threshold:  config.Threshold,
		Count:      len(anomalies),
		Anomalies:  anomalies,
	}

	s.completed(ctx, resp.ReportMeta, start, "method", method, "anomalies", resp.Count)
	return resp, nil
}

// firstPositive returns the first positive value, or 0
func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
