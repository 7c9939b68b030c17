// Package config provides configuration structures and loading for pixel-regions.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/ironsheep/pixel-regions/internal/classify"
)

// Config represents the complete application configuration.
type Config struct {
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// ClassifyConfig selects the pixel rule and its thresholds.
type ClassifyConfig struct {
	Rule           string  `yaml:"rule" mapstructure:"rule"`                       // red, cyan, mask, hue, luminance
	UpperThreshold float64 `yaml:"upper_threshold" mapstructure:"upper_threshold"` // 0-255, or degrees for hue
	LowerThreshold float64 `yaml:"lower_threshold" mapstructure:"lower_threshold"`
}

// Thresholds returns the classifier thresholds.
func (c ClassifyConfig) Thresholds() classify.Thresholds {
	return classify.Thresholds{Upper: c.UpperThreshold, Lower: c.LowerThreshold}
}

// OutputConfig names the files written by a run. Names are joined to Dir
// unless absolute.
type OutputConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	RedMask      string `yaml:"red_mask" mapstructure:"red_mask"`
	CyanMask     string `yaml:"cyan_mask" mapstructure:"cyan_mask"`
	Report       string `yaml:"report" mapstructure:"report"`
	SortedReport string `yaml:"sorted_report" mapstructure:"sorted_report"`
	TopImage     string `yaml:"top_image" mapstructure:"top_image"`
	LabelImage   string `yaml:"label_image" mapstructure:"label_image"` // empty disables
	TopN         int    `yaml:"top_n" mapstructure:"top_n"`
	Annotate     bool   `yaml:"annotate" mapstructure:"annotate"`
}

// Path resolves name against Dir.
func (o OutputConfig) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.Dir, name)
}

// MaskFile returns the mask file name for a rule. Rules other than red and
// cyan get "map-<rule>-pixels.jpg".
func (o OutputConfig) MaskFile(rule string) string {
	switch rule {
	case classify.Red.Name:
		return o.RedMask
	case classify.Cyan.Name:
		return o.CyanMask
	default:
		return fmt.Sprintf("map-%s-pixels.jpg", rule)
	}
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with the defaults used for map images.
func DefaultConfig() *Config {
	return &Config{
		Classify: ClassifyConfig{
			Rule:           classify.Red.Name,
			UpperThreshold: 100,
			LowerThreshold: 50,
		},
		Output: OutputConfig{
			Dir:          ".",
			RedMask:      "map-red-pixels.jpg",
			CyanMask:     "map-cyan-pixels.jpg",
			Report:       "cc-output-2a.txt",
			SortedReport: "cc-output-2b.txt",
			TopImage:     "cc-top-2.jpg",
			TopN:         2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
