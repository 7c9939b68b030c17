package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-regions/internal/config"
	"github.com/ironsheep/pixel-regions/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.1.0-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile        string
	logLevel       string
	logFormat      string
	rule           string
	upperThreshold float64
	lowerThreshold float64
	outDir         string
	topN           int
)

var rootCmd = &cobra.Command{
	Use:   "pixel-regions",
	Short: "Color classification and connected-component labeling for map images",
	Long: `pixel-regions classifies the pixels of an image by color thresholds and
groups the matching pixels into 8-connected regions.

Features:
  - Pixel rules: red, cyan, mask, hue and luminance
  - Breadth-first labeling with a report of pixel counts per region
  - Size-ordered report and an image of the largest regions
  - MCP server exposing the same operations as tools`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag; empty looks for pixel-regions.yaml
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file (default ./pixel-regions.yaml if present)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Classification overrides
	rootCmd.PersistentFlags().StringVarP(&rule, "rule", "r", "",
		"Override pixel rule (red, cyan, mask, hue, luminance)")
	rootCmd.PersistentFlags().Float64Var(&upperThreshold, "upper", 0,
		"Override upper threshold")
	rootCmd.PersistentFlags().Float64Var(&lowerThreshold, "lower", 0,
		"Override lower threshold")

	// Output overrides
	rootCmd.PersistentFlags().StringVarP(&outDir, "out-dir", "o", "",
		"Override output directory")
	rootCmd.PersistentFlags().IntVar(&topN, "top", 0,
		"Override number of largest components kept in the top image")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values. Thresholds are only
// overridden when their flag was given, so 0 stays a valid threshold.
func GetCLIOverrides() config.Overrides {
	o := config.Overrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Rule:      rule,
		OutDir:    outDir,
		TopN:      topN,
	}
	flags := rootCmd.PersistentFlags()
	if flags.Changed("upper") {
		v := upperThreshold
		o.Upper = &v
	}
	if flags.Changed("lower") {
		v := lowerThreshold
		o.Lower = &v
	}
	return o
}

// loadConfig loads the config file, applies the CLI overrides and validates
// the result.
func loadConfig(extra func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())
	if extra != nil {
		extra(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger from it.
func setup(extra func(*config.Config)) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig(extra)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
