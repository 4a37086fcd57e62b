package chain

import (
	"testing"
	"time"

	"github.com/soltixdb/quant/internal/analytics/anomaly"
	"github.com/soltixdb/quant/internal/analytics/forecast"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	before := time.Now().UTC()
	status := Status("1.2.3")

	assert.Equal(t, "operational", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Contains(t, status.Components, "gas_predictor")
	assert.Contains(t, status.Components, "risk_scorer")
	assert.Equal(t, anomaly.ListDetectors(), status.Detectors)
	assert.Equal(t, forecast.ListForecasters(), status.Forecasters)
	assert.False(t, status.GeneratedAt.Before(before.Add(-time.Second)))

	// Callers cannot mutate the shared component list
	status.Components[0] = "changed"
	assert.Equal(t, "descriptive", Status("").Components[0])
}
