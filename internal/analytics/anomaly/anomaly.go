package anomaly

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/pkg/quant"
)

// AnomalyType represents the type of anomaly detected
type AnomalyType string

const (
	AnomalyTypeSpike    AnomalyType = "spike"    // Sudden increase
	AnomalyTypeDrop     AnomalyType = "drop"     // Sudden decrease
	AnomalyTypeOutlier  AnomalyType = "outlier"  // Value outside normal range
	AnomalyTypeFlatline AnomalyType = "flatline" // No variation (possibly a stuck feed)
)

// Anomaly represents a detected anomaly in a series
type Anomaly struct {
	Index     int         `json:"index"`
	Time      string      `json:"time,omitempty"`
	Series    string      `json:"series,omitempty"`
	Value     float64     `json:"value"`
	Expected  *Range      `json:"expected,omitempty"`
	Score     float64     `json:"score"`     // How anomalous (higher = more abnormal)
	Type      AnomalyType `json:"type"`      // Type of anomaly
	Algorithm string      `json:"algorithm"` // Which algorithm detected it
}

// Range represents expected value range
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DataPoint is an alias to the shared analytics.TimeSeriesPoint type.
type DataPoint = analytics.TimeSeriesPoint

// DetectorConfig holds configuration for anomaly detection
type DetectorConfig struct {
	// Threshold for detection sensitivity (number of std deviations for Z-Score)
	Threshold float64

	// IQRMultiplier is the Tukey fence factor k in [Q1 - k*IQR, Q3 + k*IQR]
	IQRMultiplier float64

	// WindowSize for window-based algorithms (Bollinger)
	WindowSize int

	// BandMultiplier is the width of the Bollinger envelope in std deviations
	BandMultiplier float64

	// MinDataPoints minimum number of points required for detection
	MinDataPoints int
}

// DefaultConfig returns default detector configuration
func DefaultConfig() DetectorConfig {
	return DetectorConfig{
		Threshold:      quant.DefaultZScoreThreshold,
		IQRMultiplier:  quant.DefaultIQRMultiplier,
		WindowSize:     quant.DefaultBollingerPeriod,
		BandMultiplier: quant.DefaultBollingerMultiplier,
		MinDataPoints:  10,
	}
}

// AnomalyDetector interface for all anomaly detection algorithms
type AnomalyDetector interface {
	// Name returns the algorithm name
	Name() string

	// Detect finds anomalies in the given data points
	// Returns list of indices that are anomalies and their scores
	Detect(data []DataPoint, config DetectorConfig) []AnomalyResult
}

// AnomalyResult contains detection result for a single point
type AnomalyResult struct {
	Index    int         // Index in original data
	Score    float64     // Anomaly score
	Type     AnomalyType // Type of anomaly
	Expected *Range      // Expected range
}

// Registry holds available anomaly detectors
var detectorRegistry = make(map[string]AnomalyDetector)

// RegisterDetector adds a detector to the registry
func RegisterDetector(name string, detector AnomalyDetector) {
	detectorRegistry[name] = detector
}

// GetDetector returns a detector by name
func GetDetector(name string) (AnomalyDetector, error) {
	if detector, ok := detectorRegistry[name]; ok {
		return detector, nil
	}
	return nil, fmt.Errorf("unknown anomaly detector: %s", name)
}

// ListDetectors returns the sorted names of available detectors
func ListDetectors() []string {
	return slices.Sorted(maps.Keys(detectorRegistry))
}

// DetectAnomalies is a helper function to detect anomalies using specified algorithm
func DetectAnomalies(algorithm string, data []DataPoint, config DetectorConfig) ([]AnomalyResult, error) {
	detector, err := GetDetector(algorithm)
	if err != nil {
		return nil, err
	}
	return detector.Detect(data, config), nil
}

// BuildAnomalies turns detection results into reportable anomalies.
// Points with a zero time are reported without one.
func BuildAnomalies(series string, data []DataPoint, results []AnomalyResult, algorithm string) []Anomaly {
	anomalies := make([]Anomaly, 0, len(results))
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(data) {
			continue
		}
		point := data[r.Index]

		var ts string
		if !point.Time.IsZero() {
			ts = point.Time.Format(time.RFC3339)
		}
		anomalies = append(anomalies, Anomaly{
			Index:     r.Index,
			Time:      ts,
			Series:    series,
			Value:     point.Value,
			Expected:  r.Expected,
			Score:     r.Score,
			Type:      r.Type,
			Algorithm: algorithm,
		})
	}
	return anomalies
}

func values(data []DataPoint) []float64 {
	return analytics.TimeSeriesData(data).Values()
}
