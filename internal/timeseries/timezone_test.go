package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/quant/internal/analytics"
)

func TestInLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	utc := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	data := analytics.TimeSeriesData{
		{Time: utc, Value: 1},
		{Value: 2},
	}

	converted := InLocation(data, tokyo)
	require.Len(t, converted, 2)
	assert.True(t, converted[0].Time.Equal(utc))
	assert.Equal(t, "2024-01-02T05:00:00+09:00", converted[0].Time.Format(time.RFC3339))
	assert.True(t, converted[1].Time.IsZero())
	assert.Equal(t, 2.0, converted[1].Value)

	// Input is not modified
	assert.Equal(t, time.UTC, data[0].Time.Location())
}

func TestInLocation_Nil(t *testing.T) {
	data := analytics.FromValues([]float64{1, 2})
	assert.Equal(t, data, InLocation(data, nil))
}
