package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	perfect, err := Correlation(x, []float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, perfect, 1e-12)

	inverse, err := Correlation(x, []float64{10, 8, 6, 4, 2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, inverse, 1e-12)
}

func TestCorrelation_Symmetric(t *testing.T) {
	x := []float64{3.1, 4.7, 1.2, 8.8, 5.5, 6.0}
	y := []float64{10.2, 11.9, 7.4, 15.1, 9.9, 13.3}

	xy, err := Correlation(x, y)
	require.NoError(t, err)
	yx, err := Correlation(y, x)
	require.NoError(t, err)
	assert.Equal(t, xy, yx)

	self, err := Correlation(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, self, 1e-12)
}

func TestCorrelation_Undefined(t *testing.T) {
	_, err := Correlation([]float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Correlation([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Correlation([]float64{1, 2, 3}, []float64{5, 5, 5})
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestCovariance(t *testing.T) {
	x := []float64{1, 2, 3}

	sample, err := Covariance(x, x, true)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sample, 1e-12)

	population, err := Covariance(x, x, false)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, population, 1e-12)

	negative, err := Covariance(x, []float64{3, 2, 1}, true)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, negative, 1e-12)

	_, err = Covariance(x, []float64{1, 2}, true)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Covariance([]float64{1}, []float64{2}, true)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
