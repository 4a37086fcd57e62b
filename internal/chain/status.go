package chain

import (
	"time"

	"github.com/soltixdb/quant/internal/analytics/anomaly"
	"github.com/soltixdb/quant/internal/analytics/forecast"
)

// SystemStatus reports what the toolkit can do
type SystemStatus struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Components  []string  `json:"components"`
	Detectors   []string  `json:"detectors"`
	Forecasters []string  `json:"forecasters"`
	GeneratedAt time.Time `json:"generated_at"`
}

var components = []string{
	"descriptive",
	"correlation",
	"smoothing",
	"downsampling",
	"resampling",
	"regression",
	"risk",
	"anomaly",
	"probability",
	"gas_predictor",
	"risk_scorer",
}

// Status returns the system status report
func Status(version string) SystemStatus {
	return SystemStatus{
		Status:      "operational",
		Version:     version,
		Components:  append([]string(nil), components...),
		Detectors:   anomaly.ListDetectors(),
		Forecasters: forecast.ListForecasters(),
		GeneratedAt: time.Now().UTC(),
	}
}
