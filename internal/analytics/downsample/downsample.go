// Package downsample reduces long series to a target number of points
// while keeping their visual shape.
package downsample

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/soltixdb/quant/internal/analytics"
	"github.com/soltixdb/quant/pkg/quant"
)

// Mode represents the downsampling mode
type Mode string

const (
	// ModeNone means no downsampling
	ModeNone Mode = "none"
	// ModeAuto picks an algorithm from the shape of the data
	ModeAuto Mode = "auto"
	// ModeLTTB uses Largest-Triangle-Three-Buckets algorithm
	ModeLTTB Mode = "lttb"
	// ModeMinMax keeps min and max values per bucket (preserves peaks/spikes)
	ModeMinMax Mode = "minmax"
	// ModeAverage uses average value per bucket
	ModeAverage Mode = "avg"
	// ModeM4 keeps First, Min, Max, Last per bucket (4 points per bucket)
	ModeM4 Mode = "m4"
)

// DefaultThreshold is the target size used when none is given
const DefaultThreshold = 1000

// largeSeries is the size above which auto mode prefers bucket averages
const largeSeries = 100000

// ErrUnknownMode is returned for an unsupported mode
var ErrUnknownMode = errors.New("unknown downsampling mode")

// ValidModes returns all valid downsampling modes
func ValidModes() []Mode {
	return []Mode{ModeNone, ModeAuto, ModeLTTB, ModeMinMax, ModeAverage, ModeM4}
}

// IsValid checks if a mode string is valid
func IsValid(mode string) bool {
	return slices.Contains(ValidModes(), Mode(mode))
}

// Apply reduces data to about threshold points. NaN values are dropped
// before sampling. It returns the sampled series and the algorithm that
// ran, ModeNone when the series was already small enough.
func Apply(data analytics.TimeSeriesData, mode Mode, threshold int) (analytics.TimeSeriesData, Mode, error) {
	if !IsValid(string(mode)) {
		return nil, ModeNone, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	if mode == ModeNone {
		return data, ModeNone, nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	threshold = max(threshold, 2)

	// positions of the usable points in data
	kept := make([]int, 0, len(data))
	values := make([]float64, 0, len(data))
	for i, p := range data {
		if math.IsNaN(p.Value) {
			continue
		}
		kept = append(kept, i)
		values = append(values, p.Value)
	}

	if len(values) <= threshold {
		return data, ModeNone, nil
	}

	if mode == ModeAuto {
		mode = detectBestAlgorithm(values)
	}

	var sampled []int
	switch mode {
	case ModeLTTB:
		sampled = lttb(values, threshold)
	case ModeMinMax:
		sampled = minmax(values, threshold)
	case ModeM4:
		sampled = m4(values, threshold)
	case ModeAverage:
		return average(data, kept, values, threshold), ModeAverage, nil
	}

	out := make(analytics.TimeSeriesData, len(sampled))
	for i, idx := range sampled {
		out[i] = data[kept[idx]]
	}
	return out, mode, nil
}

// detectBestAlgorithm selects a mode from the data characteristics:
// spiky data keeps extremes (minmax), mildly spiky data gets m4 and
// smooth data gets lttb. Very large smooth series use bucket averages.
func detectBestAlgorithm(values []float64) Mode {
	spikiness := Spikiness(values)

	switch {
	case spikiness > 0.2:
		return ModeMinMax
	case len(values) > largeSeries:
		return ModeAverage
	case spikiness > 0.1:
		return ModeM4
	default:
		return ModeLTTB
	}
}

// Spikiness measures how spiky the data is, from 0 (smooth) to 1.
// It combines the share of points beyond 2 population standard deviations
// with the share of steps larger than one standard deviation, the latter
// weighted 1.5x.
func Spikiness(values []float64) float64 {
	if len(values) < 10 {
		return 0
	}

	mean, err := quant.Mean(values)
	if err != nil {
		return 0
	}
	sd, err := quant.StandardDeviation(values, false)
	if err != nil || sd == 0 {
		return 0
	}

	spikes, jumps := 0, 0
	for i, v := range values {
		if math.Abs(v-mean) > 2*sd {
			spikes++
		}
		if i > 0 && math.Abs(v-values[i-1]) > sd {
			jumps++
		}
	}

	absolute := float64(spikes) / float64(len(values))
	derivative := float64(jumps) / float64(len(values)-1)
	return math.Min((absolute+1.5*derivative)/2.5, 1)
}

// bucketBounds returns the half-open range of bucket i out of n over size points
func bucketBounds(i, n, size int) (start, end int) {
	width := float64(size) / float64(n)
	start = int(float64(i) * width)
	end = min(int(float64(i+1)*width), size)
	return start, end
}

// lttb implements the Largest-Triangle-Three-Buckets algorithm and
// returns the selected positions.
func lttb(values []float64, threshold int) []int {
	n := len(values)
	if threshold <= 2 {
		return []int{0, n - 1}
	}

	sampled := make([]int, 0, threshold)
	sampled = append(sampled, 0)

	// Buckets exclude the first and last points
	bucketSize := float64(n-2) / float64(threshold-2)
	a := 0

	for i := 0; i < threshold-2; i++ {
		// Average of the next bucket is the third triangle vertex
		nextStart := int(math.Floor(float64(i+1)*bucketSize)) + 1
		nextEnd := min(int(math.Floor(float64(i+2)*bucketSize))+1, n)

		var avgX, avgY float64
		for j := nextStart; j < nextEnd; j++ {
			avgX += float64(j)
			avgY += values[j]
		}
		length := float64(nextEnd - nextStart)
		avgX /= length
		avgY /= length

		from := int(math.Floor(float64(i)*bucketSize)) + 1
		to := int(math.Floor(float64(i+1)*bucketSize)) + 1

		ax, ay := float64(a), values[a]
		maxArea := -1.0
		chosen := from
		for j := from; j < to; j++ {
			area := math.Abs((ax-avgX)*(values[j]-ay)-(ax-float64(j))*(avgY-ay)) * 0.5
			if area > maxArea {
				maxArea = area
				chosen = j
			}
		}

		sampled = append(sampled, chosen)
		a = chosen
	}

	return append(sampled, n-1)
}

// extrema returns the positions of the first minimum and maximum in [start, end)
func extrema(values []float64, start, end int) (minIdx, maxIdx int) {
	minIdx, maxIdx = start, start
	for j := start + 1; j < end; j++ {
		if values[j] < values[minIdx] {
			minIdx = j
		}
		if values[j] > values[maxIdx] {
			maxIdx = j
		}
	}
	return minIdx, maxIdx
}

// minmax keeps the minimum and maximum of each of threshold/2 buckets,
// in time order.
func minmax(values []float64, threshold int) []int {
	buckets := max(threshold/2, 1)
	sampled := make([]int, 0, buckets*2)

	for i := 0; i < buckets; i++ {
		start, end := bucketBounds(i, buckets, len(values))
		if start >= end {
			continue
		}

		lo, hi := extrema(values, start, end)
		first, second := min(lo, hi), max(lo, hi)
		sampled = append(sampled, first)
		if second != first {
			sampled = append(sampled, second)
		}
	}
	return sampled
}

// m4 keeps the first, minimum, maximum and last point of each of
// threshold/4 buckets, in time order without duplicates.
func m4(values []float64, threshold int) []int {
	buckets := max(threshold/4, 1)
	sampled := make([]int, 0, buckets*4)

	for i := 0; i < buckets; i++ {
		start, end := bucketBounds(i, buckets, len(values))
		if start >= end {
			continue
		}

		lo, hi := extrema(values, start, end)
		picks := []int{start, lo, hi, end - 1}
		slices.Sort(picks)
		sampled = append(sampled, slices.Compact(picks)...)
	}
	return sampled
}

// average replaces each of threshold buckets by its mean, stamped with
// the time of the bucket's middle point.
func average(data analytics.TimeSeriesData, kept []int, values []float64, threshold int) analytics.TimeSeriesData {
	out := make(analytics.TimeSeriesData, 0, threshold)

	for i := 0; i < threshold; i++ {
		start, end := bucketBounds(i, threshold, len(values))
		if start >= end {
			continue
		}

		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		mid := data[kept[start+(end-start)/2]]
		out = append(out, analytics.TimeSeriesPoint{
			Time:  mid.Time,
			Value: sum / float64(end-start),
		})
	}
	return out
}
