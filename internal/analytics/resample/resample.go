// Package resample groups timestamped points into calendar or fixed
// buckets and summarizes each bucket as an OHLC candle with moments.
package resample

import (
	"errors"
	"math"
	"slices"
	"time"

	"github.com/soltixdb/quant/internal/analytics"
)

var (
	// ErrInvalidLevel is returned for an unparseable bucket level
	ErrInvalidLevel = errors.New("invalid resample level")
	// ErrMissingTime is returned when a point has no timestamp
	ErrMissingTime = errors.New("resampling needs timestamped points")
)

// Bucket summarizes the points of one time bucket
type Bucket struct {
	Time       time.Time `json:"time"`
	Count      int64     `json:"count"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Close      float64   `json:"close"`
	Sum        float64   `json:"sum"`
	Avg        float64   `json:"avg"`
	HighTime   time.Time `json:"high_time"`
	LowTime    time.Time `json:"low_time"`
	SumSquares float64   `json:"-"`

	openTime  time.Time
	closeTime time.Time
}

// NewBucket creates a bucket from a single observation
func NewBucket(start time.Time, value float64, observedAt time.Time) *Bucket {
	return &Bucket{
		Time:       start,
		Count:      1,
		Open:       value,
		High:       value,
		Low:        value,
		Close:      value,
		Sum:        value,
		Avg:        value,
		HighTime:   observedAt,
		LowTime:    observedAt,
		SumSquares: value * value,
		openTime:   observedAt,
		closeTime:  observedAt,
	}
}

// Add adds one observation. Ties on the extremes keep the earliest time.
func (b *Bucket) Add(value float64, observedAt time.Time) {
	b.Count++
	b.Sum += value
	b.SumSquares += value * value
	b.Avg = b.Sum / float64(b.Count)

	if value > b.High || (value == b.High && observedAt.Before(b.HighTime)) {
		b.High, b.HighTime = value, observedAt
	}
	if value < b.Low || (value == b.Low && observedAt.Before(b.LowTime)) {
		b.Low, b.LowTime = value, observedAt
	}
	if observedAt.Before(b.openTime) {
		b.Open, b.openTime = value, observedAt
	}
	if !observedAt.Before(b.closeTime) {
		b.Close, b.closeTime = value, observedAt
	}
}

// Merge combines another bucket into this one
func (b *Bucket) Merge(other *Bucket) {
	b.Count += other.Count
	b.Sum += other.Sum
	b.SumSquares += other.SumSquares
	if b.Count > 0 {
		b.Avg = b.Sum / float64(b.Count)
	}

	if other.High > b.High || (other.High == b.High && other.HighTime.Before(b.HighTime)) {
		b.High, b.HighTime = other.High, other.HighTime
	}
	if other.Low < b.Low || (other.Low == b.Low && other.LowTime.Before(b.LowTime)) {
		b.Low, b.LowTime = other.Low, other.LowTime
	}
	if other.openTime.Before(b.openTime) {
		b.Open, b.openTime = other.Open, other.openTime
	}
	if !other.closeTime.Before(b.closeTime) {
		b.Close, b.closeTime = other.Close, other.closeTime
	}
}

// Variance returns the population variance of the bucket's values
func (b *Bucket) Variance() float64 {
	if b.Count <= 1 {
		return 0
	}
	// Var = E[X²] - (E[X])²
	return math.Max(b.SumSquares/float64(b.Count)-b.Avg*b.Avg, 0)
}

// StdDev returns the population standard deviation
func (b *Bucket) StdDev() float64 {
	return math.Sqrt(b.Variance())
}

// Resample groups data by level. Points may arrive in any order; buckets
// are returned in time order. NaN values are skipped.
func Resample(data analytics.TimeSeriesData, level Level) ([]*Bucket, error) {
	buckets := make(map[int64]*Bucket)

	for _, p := range data {
		if p.Time.IsZero() {
			return nil, ErrMissingTime
		}
		if math.IsNaN(p.Value) {
			continue
		}

		start := level.Truncate(p.Time)
		if b, ok := buckets[start.UnixNano()]; ok {
			b.Add(p.Value, p.Time)
		} else {
			buckets[start.UnixNano()] = NewBucket(start, p.Value, p.Time)
		}
	}

	out := make([]*Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *Bucket) int {
		return a.Time.Compare(b.Time)
	})
	return out, nil
}

// Closes returns the close of each bucket as a series stamped with the
// bucket start, ready for further analysis.
func Closes(buckets []*Bucket) analytics.TimeSeriesData {
	out := make(analytics.TimeSeriesData, len(buckets))
	for i, b := range buckets {
		out[i] = analytics.TimeSeriesPoint{Time: b.Time, Value: b.Close}
	}
	return out
}
