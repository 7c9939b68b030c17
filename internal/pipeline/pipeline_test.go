package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ironsheep/pixel-regions/internal/classify"
	"github.com/ironsheep/pixel-regions/internal/components"
	"github.com/ironsheep/pixel-regions/internal/config"
	"github.com/ironsheep/pixel-regions/internal/imaging"
	"github.com/ironsheep/pixel-regions/internal/logger"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	cyan  = color.RGBA{0, 255, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// createMapImage writes a 12x8 white map with three red blobs and one cyan
// blob, and returns its path.
//
//	red A: 2x2 square at (1,1)          -> 4 pixels
//	red B: diagonal run (8,1) (9,2) (10,3) -> 3 pixels, 8-connected
//	red C: 3x3 square at (1,5)          -> 9 pixels
//	cyan:  single pixel at (8,6)
func createMapImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, white)
		}
	}
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {8, 1}, {9, 2}, {10, 3}, {8, 6}} {
		img.Set(p[0], p[1], red)
	}
	img.Set(8, 6, cyan)
	for y := 5; y < 8; y++ {
		for x := 1; x < 4; x++ {
			img.Set(x, y, red)
		}
	}

	path := filepath.Join(dir, "map.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Output.Dir = dir
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFindPixels(t *testing.T) {
	dir := t.TempDir()
	p := New(testConfig(dir), nil, nil)
	maskPath := filepath.Join(dir, "mask.png")

	grid, err := p.FindPixels(createMapImage(t, dir), "red", classify.Thresholds{Upper: 100, Lower: 50}, maskPath)
	require.NoError(t, err)

	assert.Equal(t, 8, grid.Rows())
	assert.Equal(t, 12, grid.Cols())
	assert.Equal(t, 16, grid.Foreground())
	assert.True(t, grid.At(components.Coord{Row: 1, Col: 1}))
	assert.False(t, grid.At(components.Coord{Row: 6, Col: 8}), "cyan pixel is not red")

	// The saved mask classifies back to the same grid.
	mask, err := imaging.NewImageCache().Load(maskPath)
	require.NoError(t, err)
	again, err := classify.Classify(mask, classify.Mask, classify.Thresholds{})
	require.NoError(t, err)
	assert.Equal(t, grid, again)
}

func TestFindPixels_RefreshesCachedMask(t *testing.T) {
	dir := t.TempDir()
	cache := imaging.NewImageCache()
	p := New(testConfig(dir), cache, nil)
	src := createMapImage(t, dir)
	maskPath := filepath.Join(dir, "mask.png")

	// Decode a blank mask so the cache holds a stale entry for maskPath.
	blank, err := components.NewEmptyBinaryGrid(8, 12)
	require.NoError(t, err)
	require.NoError(t, imaging.Save(imaging.MaskImage(blank), maskPath))
	_, err = cache.Load(maskPath)
	require.NoError(t, err)

	grid, err := p.FindPixels(src, "red", classify.Thresholds{Upper: 100, Lower: 50}, maskPath)
	require.NoError(t, err)

	again, err := p.FindPixels(maskPath, "mask", classify.Thresholds{}, "")
	require.NoError(t, err)
	assert.Equal(t, grid.Foreground(), again.Foreground())
	assert.Equal(t, grid, again)
}

func TestFindPixels_Errors(t *testing.T) {
	dir := t.TempDir()
	p := New(testConfig(dir), nil, nil)
	path := createMapImage(t, dir)

	_, err := p.FindPixels(filepath.Join(dir, "missing.png"), "red", classify.Thresholds{Upper: 100, Lower: 50}, "")
	assert.Error(t, err)

	_, err = p.FindPixels(path, "magenta", classify.Thresholds{}, "")
	assert.ErrorIs(t, err, classify.ErrUnknownRule)

	_, err = p.FindPixels(path, "red", classify.Thresholds{Upper: 300}, "")
	assert.ErrorIs(t, err, classify.ErrInvalidThresholds)
}

func TestDetect_WritesReport(t *testing.T) {
	dir := t.TempDir()
	p := New(testConfig(dir), nil, nil)
	grid, err := p.FindPixels(createMapImage(t, dir), "red", classify.Thresholds{Upper: 100, Lower: 50}, "")
	require.NoError(t, err)

	reportPath := filepath.Join(dir, "reports", "cc-output-2a.txt")
	result, err := p.Detect(grid, reportPath)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count())

	// Row-major discovery: A at row 1 col 1, B at row 1 col 8, C at row 5.
	want := "Connected Component 1, number of pixels = 4\n" +
		"Connected Component 2, number of pixels = 3\n" +
		"Connected Component 3, number of pixels = 9\n" +
		"Total number of connected components = 3"
	assert.Equal(t, want, readFile(t, reportPath))
}

func TestDetect_NilGrid(t *testing.T) {
	p := New(config.DefaultConfig(), nil, nil)
	_, err := p.Detect(nil, "")
	assert.ErrorIs(t, err, components.ErrInvalidGrid)
}

func TestDetectSorted(t *testing.T) {
	dir := t.TempDir()
	p := New(testConfig(dir), nil, nil)
	grid, err := p.FindPixels(createMapImage(t, dir), "red", classify.Thresholds{Upper: 100, Lower: 50}, "")
	require.NoError(t, err)

	reportPath := filepath.Join(dir, "cc-output-2b.txt")
	topPath := filepath.Join(dir, "top.png")
	res, err := p.DetectSorted(grid, reportPath, topPath, 2)
	require.NoError(t, err)

	want := "Connected Component 3, number of pixels = 9\n" +
		"Connected Component 1, number of pixels = 4\n" +
		"Connected Component 2, number of pixels = 3\n" +
		"Total number of connected components = 3"
	assert.Equal(t, want, readFile(t, reportPath))

	require.Len(t, res.Top, 2)
	assert.Equal(t, 3, res.Top[0].ID)
	assert.Equal(t, 1, res.Top[1].ID)
	assert.Len(t, res.Sorted, 3)

	top, err := imaging.NewImageCache().Load(topPath)
	require.NoError(t, err)
	topGrid, err := classify.Classify(top, classify.Mask, classify.Thresholds{})
	require.NoError(t, err)
	assert.Equal(t, 13, topGrid.Foreground())
	assert.False(t, topGrid.At(components.Coord{Row: 1, Col: 8}), "smallest component must be dropped")
}

func TestDetectSorted_NLargerThanCount(t *testing.T) {
	grid, err := components.NewBinaryGrid([][]bool{{true, false, true}})
	require.NoError(t, err)

	res, err := New(config.DefaultConfig(), nil, nil).DetectSorted(grid, "", "", 5)
	require.NoError(t, err)
	assert.Len(t, res.Top, 2)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := createMapImage(t, dir)
	out := filepath.Join(dir, "out")

	cfg := testConfig(out)
	cfg.Output.LabelImage = "labels.png"
	cfg.Output.Annotate = true

	core, logs := observer.New(zapcore.InfoLevel)
	summary, err := New(cfg, nil, logger.FromCore(core)).Run(src)
	require.NoError(t, err)

	assert.Equal(t, 12, summary.Width)
	assert.Equal(t, 8, summary.Height)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 16, summary.Foreground)
	assert.Len(t, summary.Components, 3)
	require.Len(t, summary.Top, 2)

	for _, path := range []string{summary.MaskPath, summary.ReportPath, summary.SortedReportPath, summary.TopImagePath, summary.LabelImagePath} {
		assert.FileExists(t, path)
	}
	assert.Equal(t, filepath.Join(out, "map-red-pixels.jpg"), summary.MaskPath)
	assert.Equal(t, filepath.Join(out, "cc-output-2a.txt"), summary.ReportPath)
	assert.Equal(t, filepath.Join(out, "cc-top-2.jpg"), summary.TopImagePath)

	entries := logs.FilterMessage("labeled image").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 3, entries[0].ContextMap()["components"])
}

func TestRun_Cyan(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Classify.Rule = "cyan"

	summary, err := New(cfg, nil, nil).Run(createMapImage(t, dir))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, filepath.Join(dir, "map-cyan-pixels.jpg"), summary.MaskPath)
	assert.Equal(t, "Connected Component 1, number of pixels = 1\nTotal number of connected components = 1",
		readFile(t, summary.ReportPath))
}

func TestRun_NoForeground(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Classify = config.ClassifyConfig{Rule: "red", UpperThreshold: 255, LowerThreshold: 0}

	summary, err := New(cfg, nil, nil).Run(createMapImage(t, dir))
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Empty(t, summary.Top)
	assert.Equal(t, "Total number of connected components = 0", readFile(t, summary.ReportPath))
}
