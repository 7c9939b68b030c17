// Package pipeline chains classification, labeling and output writing for
// one map image.
//
// A run has three stages:
//
//  1. FindPixels classifies the image with a rule and saves the binary mask.
//  2. Detect labels the mask and writes the discovery-order report.
//  3. DetectSorted writes the size-ordered report and an image holding only
//     the largest components.
//
// Stages can be called individually; Run executes all three from the
// configuration.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/pixel-regions/internal/classify"
	"github.com/ironsheep/pixel-regions/internal/components"
	"github.com/ironsheep/pixel-regions/internal/config"
	"github.com/ironsheep/pixel-regions/internal/imaging"
	"github.com/ironsheep/pixel-regions/internal/logger"
)

// Pipeline runs the classify/label/report stages with shared image cache,
// configuration and logger. Images it writes are evicted from the cache.
type Pipeline struct {
	cfg   *config.Config
	cache *imaging.ImageCache
	log   *logger.Logger
}

// New creates a Pipeline. A nil cache or logger is replaced with a fresh
// cache or a no-op logger.
func New(cfg *config.Config, cache *imaging.ImageCache, log *logger.Logger) *Pipeline {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{cfg: cfg, cache: cache, log: log}
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// FindPixels classifies the image at path and, when maskPath is not empty,
// saves the foreground as a white-on-black mask image.
func (p *Pipeline) FindPixels(path, rule string, th classify.Thresholds, maskPath string) (*components.BinaryGrid, error) {
	log := p.log.WithImage(path).WithRule(rule)

	img, err := p.cache.Load(path)
	if err != nil {
		return nil, err
	}
	grid, err := classify.ClassifyByName(img, rule, th)
	if err != nil {
		return nil, err
	}

	if maskPath != "" {
		if err := p.cache.Save(imaging.MaskImage(grid), maskPath); err != nil {
			return nil, err
		}
	}
	log.Debugw("classified pixels",
		"upper", th.Upper,
		"lower", th.Lower,
		"foreground", grid.Foreground(),
		"mask", maskPath,
	)
	return grid, nil
}

// Detect labels grid and, when reportPath is not empty, writes one line per
// component in discovery order followed by the total line.
func (p *Pipeline) Detect(grid *components.BinaryGrid, reportPath string) (*components.Result, error) {
	labeler := components.NewLabeler(components.WithOnComplete(func(c components.Component) {
		p.log.Debugw("component complete", "id", c.ID, "pixels", c.Pixels, "bounds", c.Bounds)
	}))

	result, err := labeler.Label(grid)
	if err != nil {
		return nil, fmt.Errorf("failed to label grid: %w", err)
	}

	if reportPath != "" {
		if err := writeReport(result.Report(), reportPath); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// SortedResult is the outcome of DetectSorted.
type SortedResult struct {
	*components.Result

	// Sorted lists every component, largest first.
	Sorted []components.Component

	// Top holds the n largest components written to the top image.
	Top []components.Component
}

// DetectSorted labels grid, writes the report with components ordered by
// pixel count (largest first, ties in discovery order) and saves a mask of
// the n largest components to topImagePath. Empty paths skip the write.
func (p *Pipeline) DetectSorted(grid *components.BinaryGrid, reportPath, topImagePath string, n int) (*SortedResult, error) {
	result, err := p.Detect(grid, "")
	if err != nil {
		return nil, err
	}
	return p.writeSorted(result, reportPath, topImagePath, n)
}

func (p *Pipeline) writeSorted(result *components.Result, reportPath, topImagePath string, n int) (*SortedResult, error) {
	sorted := result.Sorted()
	top := result.Top(n)

	if reportPath != "" {
		if err := writeReport(components.NewReport(sorted), reportPath); err != nil {
			return nil, err
		}
	}

	if topImagePath != "" {
		ids := make([]int, len(top))
		for i, c := range top {
			ids[i] = c.ID
		}
		if err := p.cache.Save(imaging.MaskImage(result.Mask(ids...)), topImagePath); err != nil {
			return nil, err
		}
	}

	return &SortedResult{Result: result, Sorted: sorted, Top: top}, nil
}

// Summary describes a completed Run.
type Summary struct {
	Image            string                 `json:"image"`
	Rule             string                 `json:"rule"`
	Width            int                    `json:"width"`
	Height           int                    `json:"height"`
	Foreground       int                    `json:"foreground_pixels"`
	Count            int                    `json:"component_count"`
	Components       []components.Component `json:"components"`
	Top              []components.Component `json:"top"`
	MaskPath         string                 `json:"mask_path"`
	ReportPath       string                 `json:"report_path"`
	SortedReportPath string                 `json:"sorted_report_path"`
	TopImagePath     string                 `json:"top_image_path"`
	LabelImagePath   string                 `json:"label_image_path,omitempty"`
	Elapsed          time.Duration          `json:"elapsed_ns"`
}

// Run executes every stage for the image at path using the configured rule,
// thresholds and output names.
func (p *Pipeline) Run(path string) (*Summary, error) {
	start := time.Now()
	cls := p.cfg.Classify
	out := p.cfg.Output

	s := &Summary{
		Image:            path,
		Rule:             cls.Rule,
		MaskPath:         out.Path(out.MaskFile(cls.Rule)),
		ReportPath:       out.Path(out.Report),
		SortedReportPath: out.Path(out.SortedReport),
		TopImagePath:     out.Path(out.TopImage),
		LabelImagePath:   out.Path(out.LabelImage),
	}

	grid, err := p.FindPixels(path, cls.Rule, cls.Thresholds(), s.MaskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s pixels: %w", cls.Rule, err)
	}

	result, err := p.Detect(grid, s.ReportPath)
	if err != nil {
		return nil, err
	}

	sorted, err := p.writeSorted(result, s.SortedReportPath, s.TopImagePath, out.TopN)
	if err != nil {
		return nil, err
	}

	if s.LabelImagePath != "" {
		img, err := imaging.LabelImage(result.Labels, result.Components, out.Annotate)
		if err != nil {
			return nil, err
		}
		if err := p.cache.Save(img, s.LabelImagePath); err != nil {
			return nil, err
		}
	}

	s.Width, s.Height = grid.Cols(), grid.Rows()
	s.Foreground = result.Foreground()
	s.Count = result.Count()
	s.Components = result.Components
	s.Top = sorted.Top
	s.Elapsed = time.Since(start)

	p.log.WithImage(path).WithRule(cls.Rule).Infow("labeled image",
		"components", s.Count,
		"foreground", s.Foreground,
		"elapsed", s.Elapsed,
	)
	return s, nil
}

func writeReport(r *components.Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
