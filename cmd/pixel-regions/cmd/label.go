package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-regions/internal/components"
	"github.com/ironsheep/pixel-regions/internal/config"
	"github.com/ironsheep/pixel-regions/internal/pipeline"
)

var (
	labelTable    bool
	labelJSON     bool
	labelImage    string
	labelAnnotate bool
)

var labelCmd = &cobra.Command{
	Use:   "label <image>",
	Short: "Classify pixels and label connected components",
	Long: `Label classifies the image, groups the matching pixels into 8-connected
components and writes every output of a run:

  - the binary mask (map-red-pixels.jpg, map-cyan-pixels.jpg, ...)
  - the report in discovery order (cc-output-2a.txt)
  - the report ordered by size, largest first (cc-output-2b.txt)
  - a mask of the largest components (cc-top-2.jpg)
  - optionally a color-coded rendering of all components (--label-image)

Example:
  pixel-regions label map.png --out-dir out --top 3 --table`,
	Args: cobra.ExactArgs(1),
	RunE: runLabel,
}

func init() {
	labelCmd.Flags().BoolVar(&labelTable, "table", false,
		"Print the components as an aligned table")
	labelCmd.Flags().BoolVar(&labelJSON, "json", false,
		"Print the run summary as JSON")
	labelCmd.Flags().StringVar(&labelImage, "label-image", "",
		"Also save a color-coded rendering of the components")
	labelCmd.Flags().BoolVar(&labelAnnotate, "annotate", false,
		"Draw component ids on the label image")
	rootCmd.AddCommand(labelCmd)
}

func runLabel(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(func(cfg *config.Config) {
		if labelImage != "" {
			cfg.Output.LabelImage = labelImage
		}
		cfg.ApplyOverrides(config.Overrides{Annotate: labelAnnotate})
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	summary, err := pipeline.New(cfg, nil, log).Run(args[0])
	if err != nil {
		return err
	}

	if labelJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printSummary(cmd.OutOrStdout(), summary, cfg.Output.TopN)
	if labelTable && summary.Count > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		writeComponentTable(cmd.OutOrStdout(), summary.Components, summary.Top)
	}
	return nil
}

func printSummary(w io.Writer, s *pipeline.Summary, n int) {
	headline := color.Green.Sprintf("%d connected components", s.Count)
	if s.Count == 0 {
		headline = color.Yellow.Sprint("No connected components")
	}
	fmt.Fprintf(w, "%s, %d foreground pixels in %dx%d image (rule %s)\n",
		headline, s.Foreground, s.Width, s.Height, s.Rule)

	files := [][2]string{
		{"Mask", s.MaskPath},
		{"Report", s.ReportPath},
		{"Sorted report", s.SortedReportPath},
		{fmt.Sprintf("Top %d image", n), s.TopImagePath},
		{"Label image", s.LabelImagePath},
	}
	for _, f := range files {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", runewidth.FillRight(f[0]+":", 15), color.Cyan.Sprint(f[1]))
	}
}

// writeComponentTable prints one row per component in discovery order. Rows
// of components kept in the top image are marked in the last column.
func writeComponentTable(w io.Writer, comps, top []components.Component) {
	inTop := make(map[int]bool, len(top))
	for _, c := range top {
		inTop[c.ID] = true
	}

	header := []string{"ID", "PIXELS", "BOUNDS", "TOP"}
	rows := make([][]string, 0, len(comps))
	for _, c := range comps {
		mark := ""
		if inTop[c.ID] {
			mark = "✓"
		}
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Pixels),
			fmt.Sprintf("(%d,%d)-(%d,%d)", c.Bounds.MinRow, c.Bounds.MinCol, c.Bounds.MaxRow, c.Bounds.MaxCol),
			mark,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			// numeric columns are right-aligned
			if i < 2 {
				parts[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				parts[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
}
