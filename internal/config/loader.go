package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigName is searched for in the working directory when no
	// config file is given.
	DefaultConfigName = "pixel-regions"

	// EnvPrefix prefixes environment overrides, e.g. PIXEL_REGIONS_CLASSIFY_RULE.
	EnvPrefix = "PIXEL_REGIONS"
)

// Load reads configuration from the YAML file at configPath. An empty path
// looks for pixel-regions.yaml in the working directory and falls back to the
// defaults when it is absent. Environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := NewViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return LoadFromViper(v)
}

// NewViper returns a Viper instance primed with the default values and the
// environment binding. Every key must have a default for AutomaticEnv to
// reach it during Unmarshal.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("classify.rule", d.Classify.Rule)
	v.SetDefault("classify.upper_threshold", d.Classify.UpperThreshold)
	v.SetDefault("classify.lower_threshold", d.Classify.LowerThreshold)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.red_mask", d.Output.RedMask)
	v.SetDefault("output.cyan_mask", d.Output.CyanMask)
	v.SetDefault("output.report", d.Output.Report)
	v.SetDefault("output.sorted_report", d.Output.SortedReport)
	v.SetDefault("output.top_image", d.Output.TopImage)
	v.SetDefault("output.label_image", d.Output.LabelImage)
	v.SetDefault("output.top_n", d.Output.TopN)
	v.SetDefault("output.annotate", d.Output.Annotate)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	return v
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)
	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars expands ${VAR} references in path-valued settings.
func substituteEnvVars(cfg *Config) {
	cfg.Output.Dir = expandEnvVar(cfg.Output.Dir)
	cfg.Output.LabelImage = expandEnvVar(cfg.Output.LabelImage)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
// Unset variables are left as written.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// Overrides carries CLI flag values. Empty strings, zero TopN and nil
// thresholds leave the loaded value in place.
type Overrides struct {
	LogLevel  string
	LogFormat string
	Rule      string
	Upper     *float64
	Lower     *float64
	OutDir    string
	TopN      int
	Annotate  bool
}

// ApplyOverrides applies CLI flag overrides to the configuration.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Rule != "" {
		c.Classify.Rule = o.Rule
	}
	if o.Upper != nil {
		c.Classify.UpperThreshold = *o.Upper
	}
	if o.Lower != nil {
		c.Classify.LowerThreshold = *o.Lower
	}
	if o.OutDir != "" {
		c.Output.Dir = o.OutDir
	}
	if o.TopN > 0 {
		c.Output.TopN = o.TopN
	}
	if o.Annotate {
		c.Output.Annotate = true
	}
}
