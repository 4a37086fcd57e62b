package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDataPoints(values []float64) []DataPoint {
	points := make([]DataPoint, len(values))
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		points[i] = DataPoint{
			Time:  baseTime.Add(time.Duration(i) * time.Minute),
			Value: v,
		}
	}
	return points
}

func linearValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	return values
}

func TestZScoreDetector_DetectSpike(t *testing.T) {
	config := DefaultConfig()
	config.MinDataPoints = 5
	config.Threshold = 2.0

	data := createTestDataPoints([]float64{10, 10, 10, 10, 10, 10, 100, 10, 10, 10})
	results := (&ZScoreDetector{}).Detect(data, config)

	require.Len(t, results, 1)
	assert.Equal(t, 6, results[0].Index)
	assert.Equal(t, AnomalyTypeSpike, results[0].Type)
	assert.Greater(t, results[0].Score, 2.0)
	require.NotNil(t, results[0].Expected)
	assert.InDelta(t, 19.0, (results[0].Expected.Min+results[0].Expected.Max)/2, 1e-9)
}

func TestZScoreDetector_DetectDrop(t *testing.T) {
	config := DefaultConfig()
	config.MinDataPoints = 5
	config.Threshold = 2.0

	data := createTestDataPoints([]float64{50, 50, 50, 50, 50, 50, 0, 50, 50, 50})
	results := (&ZScoreDetector{}).Detect(data, config)

	require.Len(t, results, 1)
	assert.Equal(t, 6, results[0].Index)
	assert.Equal(t, AnomalyTypeDrop, results[0].Type)
}

func TestZScoreDetector_NoAnomalies(t *testing.T) {
	config := DefaultConfig()
	config.MinDataPoints = 5

	data := createTestDataPoints([]float64{10, 11, 10, 12, 11, 10, 11, 12, 10, 11})
	assert.Empty(t, (&ZScoreDetector{}).Detect(data, config))
}

func TestZScoreDetector_Flatline(t *testing.T) {
	config := DefaultConfig()
	config.MinDataPoints = 5

	data := createTestDataPoints([]float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5})
	results := (&ZScoreDetector{}).Detect(data, config)

	require.Len(t, results, 10)
	for _, r := range results {
		assert.Equal(t, AnomalyTypeFlatline, r.Type)
		assert.Nil(t, r.Expected)
	}
}

func TestZScoreDetector_InsufficientData(t *testing.T) {
	data := createTestDataPoints([]float64{1, 2, 100})
	assert.Nil(t, (&ZScoreDetector{}).Detect(data, DefaultConfig()))
}

func TestIQRDetector_DetectOutliers(t *testing.T) {
	config := DefaultConfig()
	config.MinDataPoints = 5

	data := createTestDataPoints([]float64{10, 11, 12, 10, 11, 12, 10, 11, 100, -50, 11, 12})
	results := (&IQRDetector{}).Detect(data, config)

	require.Len(t, results, 2)

	assert.Equal(t, 8, results[0].Index)
	assert.Equal(t, AnomalyTypeSpike, results[0].Type)
	assert.InDelta(t, 42.5, results[0].Score, 1e-9)

	assert.Equal(t, 9, results[1].Index)
	assert.Equal(t, AnomalyTypeDrop, results[1].Type)
	assert.InDelta(t, 28.5, results[1].Score, 1e-9)

	require.NotNil(t, results[0].Expected)
	assert.InDelta(t, 7.0, results[0].Expected.Min, 1e-9)
	assert.InDelta(t, 15.0, results[0].Expected.Max, 1e-9)
}

func TestIQRDetector_NoAnomalies(t *testing.T) {
	data := createTestDataPoints(linearValues(10))
	assert.Empty(t, (&IQRDetector{}).Detect(data, DefaultConfig()))
}

func TestIQRDetector_DefaultMultiplier(t *testing.T) {
	config := DefaultConfig()
	config.IQRMultiplier = 0
	config.MinDataPoints = 5

	data := createTestDataPoints([]float64{10, 11, 12, 10, 11, 12, 10, 11, 100, 11})
	results := (&IQRDetector{}).Detect(data, config)
	require.Len(t, results, 1)
	assert.Equal(t, 8, results[0].Index)
}

func TestBollingerDetector_TrendingSpike(t *testing.T) {
	config := DefaultConfig()
	config.WindowSize = 5
	config.BandMultiplier = 3

	values := linearValues(30)
	values[25] = 60
	results := (&BollingerDetector{}).Detect(createTestDataPoints(values), config)

	require.Len(t, results, 1)
	assert.Equal(t, 25, results[0].Index)
	assert.Equal(t, AnomalyTypeSpike, results[0].Type)
	require.NotNil(t, results[0].Expected)
	assert.Less(t, results[0].Expected.Max, 60.0)
}

func TestBollingerDetector_Drop(t *testing.T) {
	config := DefaultConfig()
	config.WindowSize = 5
	config.BandMultiplier = 3

	values := linearValues(30)
	values[20] = -40
	results := (&BollingerDetector{}).Detect(createTestDataPoints(values), config)

	require.NotEmpty(t, results)
	assert.Equal(t, 20, results[0].Index)
	assert.Equal(t, AnomalyTypeDrop, results[0].Type)
}

func TestBollingerDetector_InsufficientData(t *testing.T) {
	data := createTestDataPoints(linearValues(5))
	assert.Nil(t, (&BollingerDetector{}).Detect(data, DefaultConfig()))
}

func TestAnalyzeData_TrendingData(t *testing.T) {
	chars := AnalyzeData(createTestDataPoints(linearValues(30)))

	assert.True(t, chars.HasTrend)
	assert.InDelta(t, 1.0, chars.TrendStrength, 1e-9)
	assert.Equal(t, "bollinger", chars.SelectedAlgorithm)
	assert.Equal(t, 30, chars.DataSize)
}

func TestAnalyzeData_DataWithOutliers(t *testing.T) {
	values := make([]float64, 0, 22)
	for i := 0; i < 20; i++ {
		values = append(values, float64(10+i%2))
	}
	values = append(values, 500, 500)

	chars := AnalyzeData(createTestDataPoints(values))

	assert.True(t, chars.HasOutliers)
	assert.InDelta(t, 2.0/22.0*100, chars.OutlierPercentage, 1e-9)
	assert.Equal(t, "iqr", chars.SelectedAlgorithm)
}

func TestAnalyzeData_NormalData(t *testing.T) {
	block := []float64{10, 12, 8, 11, 9}
	values := make([]float64, 0, 20)
	for i := 0; i < 4; i++ {
		values = append(values, block...)
	}

	chars := AnalyzeData(createTestDataPoints(values))

	assert.False(t, chars.HasTrend)
	assert.True(t, chars.IsNormalDistribution)
	assert.False(t, chars.HasOutliers)
	assert.Equal(t, "zscore", chars.SelectedAlgorithm)
}

func TestAutoDetector_Detect(t *testing.T) {
	values := make([]float64, 0, 22)
	for i := 0; i < 20; i++ {
		values = append(values, float64(10+i%2))
	}
	values = append(values, 500, 500)

	results := (&AutoDetector{}).Detect(createTestDataPoints(values), DefaultConfig())
	require.Len(t, results, 2)
	assert.Equal(t, 20, results[0].Index)
	assert.Equal(t, 21, results[1].Index)

	assert.Nil(t, (&AutoDetector{}).Detect(createTestDataPoints([]float64{1, 2}), DefaultConfig()))
}

func TestDetectorRegistry(t *testing.T) {
	assert.Equal(t, []string{"auto", "bollinger", "iqr", "zscore"}, ListDetectors())

	for _, name := range ListDetectors() {
		detector, err := GetDetector(name)
		require.NoError(t, err)
		assert.Equal(t, name, detector.Name())
	}
}

func TestGetDetector_Unknown(t *testing.T) {
	_, err := GetDetector("unknown")
	assert.EqualError(t, err, "unknown anomaly detector: unknown")

	_, err = DetectAnomalies("unknown", nil, DefaultConfig())
	assert.Error(t, err)
}

func TestDetectAnomalies(t *testing.T) {
	config := DefaultConfig()
	config.MinDataPoints = 5
	config.Threshold = 2.0

	data := createTestDataPoints([]float64{10, 10, 10, 10, 10, 10, 100, 10, 10, 10})
	results, err := DetectAnomalies("zscore", data, config)
	require.NoError(t, err)
	require.Len(t, results, 1)

	anomalies := BuildAnomalies("eth", data, results, "zscore")
	require.Len(t, anomalies, 1)
	assert.Equal(t, "2024-01-01T00:06:00Z", anomalies[0].Time)
	assert.Equal(t, "eth", anomalies[0].Series)
	assert.Equal(t, 100.0, anomalies[0].Value)
	assert.Equal(t, "zscore", anomalies[0].Algorithm)
}

func TestBuildAnomalies_NoTimes(t *testing.T) {
	data := []DataPoint{{Value: 1}, {Value: 2}}
	anomalies := BuildAnomalies("", data, []AnomalyResult{{Index: 1, Type: AnomalyTypeSpike}, {Index: 5}}, "iqr")

	require.Len(t, anomalies, 1)
	assert.Empty(t, anomalies[0].Time)
	assert.Equal(t, 2.0, anomalies[0].Value)
}

func TestEmptyData(t *testing.T) {
	for _, name := range ListDetectors() {
		results, err := DetectAnomalies(name, nil, DefaultConfig())
		require.NoError(t, err)
		assert.Empty(t, results, name)
	}
}

func TestVeryHighThreshold(t *testing.T) {
	config := DefaultConfig()
	config.MinDataPoints = 5
	config.Threshold = 100

	data := createTestDataPoints([]float64{10, 10, 10, 10, 10, 10, 100, 10, 10, 10})
	assert.Empty(t, (&ZScoreDetector{}).Detect(data, config))
}
