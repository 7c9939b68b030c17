package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrOutOfBounds indicates a coordinate or region outside the image.
var ErrOutOfBounds = errors.New("outside image bounds")

// RGB is an 8-bit colour triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL is a colour in hue (degrees), saturation and lightness (percent).
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorSample is the colour of one pixel in the forms useful for choosing
// classification thresholds: channel values for the red/cyan rules, HSL for
// the hue rule and luminance for the luminance rule.
type ColorSample struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Label     string `json:"label,omitempty"`
	Hex       string `json:"hex"`
	RGB       RGB    `json:"rgb"`
	Alpha     uint8  `json:"alpha"`
	HSL       HSL    `json:"hsl"`
	Luminance uint8  `json:"luminance"`
}

// SampleColor reads the pixel at (x, y). Coordinates are relative to the
// image bounds origin.
func SampleColor(img image.Image, x, y int) (*ColorSample, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if !image.Pt(px, py).In(bounds) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d image", ErrOutOfBounds, x, y, bounds.Dx(), bounds.Dy())
	}

	r, g, b, a := img.At(px, py).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	c := colorful.Color{R: float64(r8) / 255, G: float64(g8) / 255, B: float64(b8) / 255}
	h, s, l := c.Hsl()

	return &ColorSample{
		X:         x,
		Y:         y,
		Hex:       c.Hex(),
		RGB:       RGB{R: r8, G: g8, B: b8},
		Alpha:     uint8(a >> 8),
		HSL:       HSL{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Luminance: luminance(r8, g8, b8),
	}, nil
}

// Point is a pixel coordinate with an optional label carried into the sample.
type Point struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// SampleColors samples every point in order. Any out-of-bounds point fails
// the whole call.
func SampleColors(img image.Image, points []Point) ([]ColorSample, error) {
	samples := make([]ColorSample, 0, len(points))
	for _, p := range points {
		s, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		s.Label = p.Label
		samples = append(samples, *s)
	}
	return samples, nil
}

// ColorFrequency is a quantized colour and the share of pixels it covers.
type ColorFrequency struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Percentage float64 `json:"percentage"`
}

// DominantColors returns up to count of the most common colours within rect,
// or the whole image when rect is empty. Channels are quantized to steps of
// 16 so near-identical shades group together.
func DominantColors(img image.Image, count int, rect image.Rectangle) ([]ColorFrequency, error) {
	bounds := img.Bounds()
	if rect.Empty() {
		rect = bounds
	} else {
		rect = rect.Add(bounds.Min)
		if !rect.In(bounds) {
			return nil, fmt.Errorf("%w: region %v", ErrOutOfBounds, rect)
		}
	}

	counts := make(map[RGB]int)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			q := RGB{R: uint8(r>>8) &^ 0x0F, G: uint8(g>>8) &^ 0x0F, B: uint8(b>>8) &^ 0x0F}
			counts[q]++
		}
	}

	total := float64(rect.Dx() * rect.Dy())
	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B),
			RGB:        rgb,
			Percentage: float64(n) * 100 / total,
		})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}
	return colors, nil
}

// luminance is the Rec. 601 grey level on the 8-bit scale.
func luminance(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7472*uint32(b) + 1<<15) >> 16
	return uint8(y)
}
