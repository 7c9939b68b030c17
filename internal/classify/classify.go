package classify

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/anthonynsimon/bild/segment"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-regions/internal/components"
)

var (
	// ErrUnknownRule indicates a rule name with no registered Rule.
	ErrUnknownRule = errors.New("classify: unknown rule")
	// ErrInvalidThresholds indicates thresholds outside the rule's range.
	ErrInvalidThresholds = errors.New("classify: invalid thresholds")
)

// Thresholds are the two comparison levels used by a Rule. For channel rules
// they are on the 8-bit scale (0-255); for the hue rule they are degrees.
type Thresholds struct {
	Upper float64 `json:"upper_threshold" mapstructure:"upper_threshold"`
	Lower float64 `json:"lower_threshold" mapstructure:"lower_threshold"`
}

// Rule classifies pixels as foreground or background.
type Rule struct {
	// Name identifies the rule in configuration and tool arguments.
	Name string

	// Max is the largest threshold value the rule accepts.
	Max float64

	// Match reports whether an 8-bit RGB pixel is foreground.
	Match func(r, g, b uint8, th Thresholds) bool

	// Prepare optionally transforms the whole image before Match runs.
	Prepare func(img image.Image, th Thresholds) image.Image
}

// Validate checks that both thresholds lie in [0, rule.Max].
func (rule Rule) Validate(th Thresholds) error {
	if th.Upper < 0 || th.Upper > rule.Max || th.Lower < 0 || th.Lower > rule.Max {
		return fmt.Errorf("%w: %s thresholds must be within [0, %g], got upper=%g lower=%g",
			ErrInvalidThresholds, rule.Name, rule.Max, th.Upper, th.Lower)
	}
	return nil
}

// Red matches strongly red pixels.
var Red = Rule{
	Name: "red",
	Max:  255,
	Match: func(r, g, b uint8, th Thresholds) bool {
		return float64(r) > th.Upper && float64(g) < th.Lower && float64(b) < th.Lower
	},
}

// Cyan matches pixels with a weak red channel and strong green and blue.
var Cyan = Rule{
	Name: "cyan",
	Max:  255,
	Match: func(r, g, b uint8, th Thresholds) bool {
		return float64(r) < th.Upper && float64(g) > th.Lower && float64(b) > th.Lower
	},
}

// Mask matches pixels whose first channel is saturated, which is how binary
// masks are written. Classifying a mask image with Mask reproduces its grid.
var Mask = Rule{
	Name: "mask",
	Max:  255,
	Match: func(r, _, _ uint8, _ Thresholds) bool {
		return r >= 255
	},
}

// minHueSaturation keeps greys, whose hue is undefined, out of hue matches.
const minHueSaturation = 0.25

// Hue matches pixels whose HSL hue falls within [Lower, Upper] degrees. When
// Lower > Upper the band wraps through 0 (e.g. 340..20 for reds).
var Hue = Rule{
	Name: "hue",
	Max:  360,
	Match: func(r, g, b uint8, th Thresholds) bool {
		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		h, s, l := c.Hsl()
		if s < minHueSaturation || l <= 0.05 || l >= 0.95 {
			return false
		}
		if th.Lower <= th.Upper {
			return h >= th.Lower && h <= th.Upper
		}
		return h >= th.Lower || h <= th.Upper
	},
}

// Luminance thresholds the grey level of each pixel at Upper. Lower is unused.
// Transparent pixels count as black.
var Luminance = Rule{
	Name: "luminance",
	Max:  255,
	Prepare: func(img image.Image, th Thresholds) image.Image {
		return segment.Threshold(flattenOnBlack(img), uint8(th.Upper))
	},
	Match: func(r, _, _ uint8, _ Thresholds) bool {
		return r >= 255
	},
}

// flattenOnBlack composites img over an opaque black canvas. segment.Threshold
// reads only the color channels, so a pixel must carry its alpha in them
// before thresholding.
func flattenOnBlack(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

var rules = map[string]Rule{
	Red.Name:       Red,
	Cyan.Name:      Cyan,
	Mask.Name:      Mask,
	Hue.Name:       Hue,
	Luminance.Name: Luminance,
}

// RuleByName returns the registered rule called name.
func RuleByName(name string) (Rule, error) {
	rule, ok := rules[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return rule, nil
}

// RuleNames lists the registered rule names in sorted order.
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classify evaluates rule on every pixel of img and returns the binary grid.
//
// Returns ErrInvalidThresholds if th is out of range for the rule and
// components.ErrInvalidGrid if img has no pixels.
func Classify(img image.Image, rule Rule, th Thresholds) (*components.BinaryGrid, error) {
	if err := rule.Validate(th); err != nil {
		return nil, err
	}
	if rule.Prepare != nil {
		img = rule.Prepare(img, th)
	}

	bounds := img.Bounds()
	grid, err := components.NewEmptyBinaryGrid(bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, fmt.Errorf("failed to classify image: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if rule.Match(uint8(r>>8), uint8(g>>8), uint8(b>>8), th) {
				grid.Set(components.Coord{Row: y - bounds.Min.Y, Col: x - bounds.Min.X}, true)
			}
		}
	}
	return grid, nil
}

// ClassifyByName looks up the rule called name and runs Classify.
func ClassifyByName(img image.Image, name string, th Thresholds) (*components.BinaryGrid, error) {
	rule, err := RuleByName(name)
	if err != nil {
		return nil, err
	}
	return Classify(img, rule, th)
}
