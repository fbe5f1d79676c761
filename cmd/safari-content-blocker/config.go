package main

import (
	"fmt"
	"os"

	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/spf13/viper"
)

// appConfig wraps models.Config, the settings viper loads from the config
// file and its defaults. The convert command's own flags are not stored
// here; runConvert reads them directly.
type appConfig struct {
	models.Config
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("filter_lists")
		viper.SetConfigType("toml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.retries", 3)
	viper.SetDefault("output.max_rules_per_file", 50000)
	viper.SetDefault("output.generate_combined", true)
	viper.SetDefault("output.generate_manifest", true)
	viper.SetDefault("output.summary_format", "json")
	viper.SetDefault("convert.optimize", false)
	viper.SetDefault("convert.limit", 0)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&cfg.Config); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
	}
}

const defaultConfigTOML = `# Safari content blocker converter configuration

# HTTP client settings
[http]
timeout = "30s"
retries = 3

# Output settings
[output]
max_rules_per_file = 50000
generate_combined = true
generate_manifest = true
summary_format = "json"

# Conversion settings
[convert]
optimize = false
limit = 0

# Filter lists to convert
# Set enabled = false to skip a list

[[lists]]
name = "easylist"
url = "https://easylist.to/easylist/easylist.txt"
enabled = true

[[lists]]
name = "easyprivacy"
url = "https://easylist.to/easylist/easyprivacy.txt"
enabled = true

[[lists]]
name = "ublock-filters"
url = "https://ublockorigin.github.io/uAssets/filters/filters.txt"
enabled = true

[[lists]]
name = "ublock-privacy"
url = "https://ublockorigin.github.io/uAssets/filters/privacy.txt"
enabled = true

[[lists]]
name = "ublock-unbreak"
url = "https://ublockorigin.github.io/uAssets/filters/unbreak.txt"
enabled = true
`
