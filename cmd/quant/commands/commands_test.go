package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/quant/internal/services"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCommand(BuildInfo{Version: "1.0.0-test", Commit: "abc123", BuildTime: "today"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))

	err := rootCmd.Execute()
	return out.String(), err
}

func executeJSON(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()

	out, err := execute(t, append(args, "--format", "json")...)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	return decoded
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "quant 1.0.0-test (commit: abc123, built: today)\n", out)
}

func TestDescribe_Values(t *testing.T) {
	decoded := executeJSON(t, "describe", "--values", "1,2,3,4,5")

	assert.Equal(t, "describe", decoded["operation"])
	assert.Equal(t, inlineSeriesName, decoded["series"])
	assert.NotEmpty(t, decoded["report_id"])

	summary, ok := decoded["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 3.0, summary["mean"], 1e-9)
	assert.InDelta(t, 5.0, summary["max"], 1e-9)
}

func TestDescribe_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte("value\n10\n20\n30\n"), 0o600))

	decoded := executeJSON(t, "describe", "--file", path)
	assert.Equal(t, "prices", decoded["series"])
	assert.InDelta(t, 3.0, decoded["points"], 1e-9)
}

func TestDescribe_Table(t *testing.T) {
	out, err := execute(t, "describe", "--values", "1,2,3,4,5", "--name", "btc")
	require.NoError(t, err)
	assert.Contains(t, out, "=== DESCRIBE ===")
	assert.Contains(t, out, "btc")
}

func TestInputErrors(t *testing.T) {
	_, err := execute(t, "describe")
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = execute(t, "describe", "--values", "1,2", "--file", "x.csv")
	assert.ErrorIs(t, err, ErrConflictingInput)

	_, err = execute(t, "describe", "--file", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, services.CodeInvalidInput, services.CodeOf(err))
}

func TestInvalidFormatFlag(t *testing.T) {
	_, err := execute(t, "describe", "--values", "1,2,3", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestSmooth_UnknownMethod(t *testing.T) {
	_, err := execute(t, "smooth", "--values", "1,2,3,4", "--method", "bogus")
	require.Error(t, err)
	assert.Equal(t, services.CodeInvalidMethod, services.CodeOf(err))
}

func TestSmooth_SMA(t *testing.T) {
	decoded := executeJSON(t, "smooth", "--values", "1,2,3,4,5", "--method", "sma", "--period", "3")

	values, ok := decoded["values"].([]interface{})
	require.True(t, ok)
	require.Len(t, values, 3)
	assert.InDelta(t, 2.0, values[0], 1e-9)
	assert.InDelta(t, 4.0, values[2], 1e-9)
	assert.InDelta(t, 2.0, decoded["offset"], 1e-9)
}

func TestForecast_Horizon(t *testing.T) {
	decoded := executeJSON(t, "forecast", "--values", "1,2,3,4,5,6,7,8,9,10", "--horizon", "3", "--method", "linear")

	predictions, ok := decoded["predictions"].([]interface{})
	require.True(t, ok)
	require.Len(t, predictions, 3)

	first, ok := predictions[0].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 11.0, first["value"], 1e-6)
}

func TestCorrelate(t *testing.T) {
	decoded := executeJSON(t, "correlate", "--values", "1,2,3,4,5", "--other-values", "2,4,6,8,10")

	assert.InDelta(t, 1.0, decoded["correlation"], 1e-9)
	assert.Equal(t, services.StrengthStrong, decoded["strength"])
}

func TestGas_Fallback(t *testing.T) {
	decoded := executeJSON(t, "gas")

	assert.Equal(t, true, decoded["fallback"])
	assert.InDelta(t, 25.0, decoded["price"], 1e-9)
}

func TestRiskScore(t *testing.T) {
	decoded := executeJSON(t, "risk-score",
		"--factor", "volatility=50",
		"--factor", "trend_strength=20",
		"--factor", "market_conditions=10")

	assert.InDelta(t, 29.0, decoded["score"], 1e-9)
	assert.Equal(t, "low", decoded["level"])
}

func TestRiskScore_InvalidFactor(t *testing.T) {
	_, err := execute(t, "risk-score", "--factor", "volatility")
	assert.ErrorIs(t, err, ErrInvalidFactor)

	_, err = execute(t, "risk-score", "--factor", "volatility=high")
	assert.ErrorIs(t, err, ErrInvalidFactor)
}

func TestStatus(t *testing.T) {
	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "operational")
	assert.Contains(t, out, "1.0.0-test")
}

func TestParseFactors(t *testing.T) {
	factors, err := parseFactors([]string{" volatility = 60 ", "liquidity=12.5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"volatility": 60, "liquidity": 12.5}, factors)

	_, err = parseFactors([]string{"=5"})
	assert.ErrorIs(t, err, ErrInvalidFactor)
}

func TestResample_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eth.csv")
	csv := "time,value\n" +
		"2024-01-01T00:00:00Z,100\n" +
		"2024-01-01T12:00:00Z,110\n" +
		"2024-01-02T00:00:00Z,105\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	decoded := executeJSON(t, "resample", "--file", path, "--level", "1d")
	assert.Equal(t, "eth", decoded["series"])

	candles, ok := decoded["candles"].([]interface{})
	require.True(t, ok)
	require.Len(t, candles, 2)

	first, ok := candles[0].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 100.0, first["open"], 1e-9)
	assert.InDelta(t, 110.0, first["close"], 1e-9)
	assert.InDelta(t, 2.0, first["count"], 1e-9)
}

func TestDownsample_Values(t *testing.T) {
	decoded := executeJSON(t, "downsample", "--values", "1,2,3,4,5,6,7,8,9,10", "--mode", "avg", "--threshold", "5")

	assert.Equal(t, "avg", decoded["applied"])
	points, ok := decoded["points"].([]interface{})
	require.True(t, ok)
	assert.Len(t, points, 5)
}

func TestResample_Timezone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "btc.csv")
	csv := "time,value\n" +
		"2024-01-01T20:00:00Z,100\n" +
		"2024-01-01T22:00:00Z,101\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	// 20:00 UTC is already Jan 2 in Tokyo, 22:00 UTC too
	decoded := executeJSON(t, "resample", "--file", path, "--level", "1d", "--timezone", "Asia/Tokyo")
	candles, ok := decoded["candles"].([]interface{})
	require.True(t, ok)
	require.Len(t, candles, 1)

	first, ok := candles[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2024-01-02T00:00:00+09:00", first["time"])

	_, err := execute(t, "describe", "--values", "1,2", "--timezone", "Nowhere/City")
	require.Error(t, err)
}
