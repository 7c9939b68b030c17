package config

import (
	"fmt"
	"strings"

	"github.com/ironsheep/pixel-regions/internal/classify"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "text": true}
)

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateClassify()...)
	errs = append(errs, c.validateOutput()...)
	errs = append(errs, c.validateLogging()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateClassify() ValidationErrors {
	rule, err := classify.RuleByName(c.Classify.Rule)
	if err != nil {
		return ValidationErrors{{
			Field:   "classify.rule",
			Message: fmt.Sprintf("unknown rule %q (valid: %s)", c.Classify.Rule, strings.Join(classify.RuleNames(), ", ")),
		}}
	}

	var errs ValidationErrors
	if c.Classify.UpperThreshold < 0 || c.Classify.UpperThreshold > rule.Max {
		errs = append(errs, ValidationError{
			Field:   "classify.upper_threshold",
			Message: fmt.Sprintf("must be between 0 and %g for rule %s", rule.Max, rule.Name),
		})
	}
	if c.Classify.LowerThreshold < 0 || c.Classify.LowerThreshold > rule.Max {
		errs = append(errs, ValidationError{
			Field:   "classify.lower_threshold",
			Message: fmt.Sprintf("must be between 0 and %g for rule %s", rule.Max, rule.Name),
		})
	}
	return errs
}

func (c *Config) validateOutput() ValidationErrors {
	var errs ValidationErrors
	required := []struct {
		field string
		value string
	}{
		{"output.dir", c.Output.Dir},
		{"output.red_mask", c.Output.RedMask},
		{"output.cyan_mask", c.Output.CyanMask},
		{"output.report", c.Output.Report},
		{"output.sorted_report", c.Output.SortedReport},
		{"output.top_image", c.Output.TopImage},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: "is required"})
		}
	}
	if c.Output.TopN < 1 {
		errs = append(errs, ValidationError{Field: "output.top_n", Message: "must be at least 1"})
	}
	return errs
}

func (c *Config) validateLogging() ValidationErrors {
	var errs ValidationErrors
	if !validLevels[c.Logging.Level] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q (must be debug, info, warn, or error)", c.Logging.Level),
		})
	}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format %q (must be json or text)", c.Logging.Format),
		})
	}
	return errs
}
