package models

import "time"

// Config represents the main configuration
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Output  OutputConfig  `mapstructure:"output"`
	Convert ConvertConfig `mapstructure:"convert"`
	Lists   []FilterList  `mapstructure:"lists"`
}

// HTTPConfig contains HTTP client settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	MaxRulesPerFile  int    `mapstructure:"max_rules_per_file"`
	GenerateCombined bool   `mapstructure:"generate_combined"`
	GenerateManifest bool   `mapstructure:"generate_manifest"`
	SummaryFormat    string `mapstructure:"summary_format"` // "json" or "yaml"
}

// ConvertConfig contains the conversion run's tunable knobs: optimize
// (discard wide generic CSS rules) and limit (the overall rule cap, 0
// disables it).
type ConvertConfig struct {
	Optimize bool `mapstructure:"optimize"`
	Limit    int  `mapstructure:"limit"`
}

// FilterList represents a single filter list configuration
type FilterList struct {
	Name    string `mapstructure:"name"`
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// EnabledLists returns only enabled filter lists
func (c *Config) EnabledLists() []FilterList {
	var enabled []FilterList
	for _, l := range c.Lists {
		if l.Enabled {
			enabled = append(enabled, l)
		}
	}
	return enabled
}
