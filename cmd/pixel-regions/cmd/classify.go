package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-regions/internal/pipeline"
)

var classifyOutput string

var classifyCmd = &cobra.Command{
	Use:   "classify <image>",
	Short: "Classify pixels and save the binary mask",
	Long: `Classify evaluates the configured pixel rule on every pixel of the image
and saves the matching pixels as a white-on-black mask.

The mask is written to the output directory as map-red-pixels.jpg,
map-cyan-pixels.jpg or map-<rule>-pixels.jpg unless --output is given.

Example:
  pixel-regions classify map.png --rule cyan --upper 100 --lower 50`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyOutput, "output", "",
		"Mask file path (extension selects the format)")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(nil)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cls := cfg.Classify
	maskPath := classifyOutput
	if maskPath == "" {
		maskPath = cfg.Output.Path(cfg.Output.MaskFile(cls.Rule))
	}

	p := pipeline.New(cfg, nil, log)
	grid, err := p.FindPixels(args[0], cls.Rule, cls.Thresholds(), maskPath)
	if err != nil {
		return err
	}

	total := grid.Rows() * grid.Cols()
	summary := color.Green.Sprintf("%d of %d pixels", grid.Foreground(), total)
	if grid.Foreground() == 0 {
		summary = color.Yellow.Sprintf("%d of %d pixels", 0, total)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s match rule %s (upper=%g, lower=%g)\n",
		summary, cls.Rule, cls.UpperThreshold, cls.LowerThreshold)
	fmt.Fprintf(out, "Mask: %s\n", maskPath)
	return nil
}
