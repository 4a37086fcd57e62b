package config

import (
	"strings"
	"time"

	"github.com/soltixdb/quant/internal/utils"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// OutputFormat returns the normalized report format
func (c *OutputConfig) OutputFormat() utils.OutputFormat {
	if strings.EqualFold(c.Format, string(utils.OutputFormatJSON)) {
		return utils.OutputFormatJSON
	}
	return utils.OutputFormatTable
}

// DelimiterRune returns the CSV delimiter as a rune, defaulting to ','
func (c *InputConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// Location returns the configured timezone, nil when timestamps are kept as read
func (c *InputConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	return time.LoadLocation(c.Timezone)
}

// TotalWeight returns the sum of all risk factor weights
func (c *RiskConfig) TotalWeight() float64 {
	var total float64
	for _, w := range c.Weights {
		total += w
	}
	return total
}
