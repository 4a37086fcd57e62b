package timeseries

import (
	"time"

	"github.com/soltixdb/quant/internal/analytics"
)

// InLocation returns a copy of data with every timestamp expressed in loc.
// Points without a timestamp are left as is. A nil loc returns data unchanged.
func InLocation(data analytics.TimeSeriesData, loc *time.Location) analytics.TimeSeriesData {
	if loc == nil || len(data) == 0 {
		return data
	}

	converted := make(analytics.TimeSeriesData, len(data))
	for i, p := range data {
		converted[i] = p
		if !p.Time.IsZero() {
			converted[i].Time = p.Time.In(loc)
		}
	}
	return converted
}
