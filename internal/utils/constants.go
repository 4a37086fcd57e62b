package utils

// =============================================================================
// Input Constants
// =============================================================================

const (
	// DefaultValueColumn is the CSV column read when none is configured
	DefaultValueColumn = "value"

	// DefaultTimeColumn is the CSV column holding timestamps
	DefaultTimeColumn = "time"

	// DefaultTimeFormat is the layout used to parse the time column
	DefaultTimeFormat = "2006-01-02T15:04:05Z07:00"
)

// =============================================================================
// Output Constants
// =============================================================================

// OutputFormat selects how reports are rendered
type OutputFormat string

const (
	// OutputFormatTable renders aligned text tables (default)
	OutputFormatTable OutputFormat = "table"

	// OutputFormatJSON renders indented JSON
	OutputFormatJSON OutputFormat = "json"
)

const (
	// DefaultPrecision is the number of decimals shown in tables
	DefaultPrecision = 4

	// MaxPrecision bounds the configurable precision
	MaxPrecision = 12
)

// =============================================================================
// Risk Score Constants
// =============================================================================

const (
	// RiskScoreMin is the lower clamp of a risk score
	RiskScoreMin = 0.0

	// RiskScoreMax is the upper clamp of a risk score
	RiskScoreMax = 100.0

	// RiskLevelMediumFrom is the first score classified as medium risk
	RiskLevelMediumFrom = 34.0

	// RiskLevelHighFrom is the first score classified as high risk
	RiskLevelHighFrom = 67.0
)
