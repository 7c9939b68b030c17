package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/pixel-regions/internal/components"
)

// goldenAngle spreads consecutive component hues around the colour wheel so
// neighbours in discovery order get visibly different colours.
const goldenAngle = 137.50776405

// labelFontSize is the point size (at 72 DPI) of component ID annotations.
const labelFontSize = 12

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

// MaskImage renders a binary grid as a grayscale image: foreground cells are
// 255 and background cells 0. The image is Cols wide and Rows tall.
func MaskImage(g *components.BinaryGrid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Cols(), g.Rows()))
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.At(components.Coord{Row: r, Col: c}) {
				img.Pix[r*img.Stride+c] = 255
			}
		}
	}
	return img
}

// ComponentColor returns the display colour for a component ID. ID 0 is the
// background and renders black.
func ComponentColor(id int) color.NRGBA {
	if id <= 0 {
		return color.NRGBA{A: 255}
	}
	hue := math.Mod(float64(id-1)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.75, 0.95).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// LabelImage renders a label grid with one colour per component. When
// annotate is set, each component's ID is drawn at the centre of its bounding
// box.
func LabelImage(labels *components.LabelGrid, comps []components.Component, annotate bool) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, labels.Cols(), labels.Rows()))

	palette := make(map[int]color.NRGBA, len(comps)+1)
	palette[0] = ComponentColor(0)
	for _, comp := range comps {
		palette[comp.ID] = ComponentColor(comp.ID)
	}

	for r := 0; r < labels.Rows(); r++ {
		for c := 0; c < labels.Cols(); c++ {
			id := labels.At(components.Coord{Row: r, Col: c})
			col, ok := palette[id]
			if !ok {
				col = ComponentColor(id)
				palette[id] = col
			}
			img.SetNRGBA(c, r, col)
		}
	}

	if annotate && len(comps) > 0 {
		if err := annotateComponents(img, comps); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func annotateComponents(dst draw.Image, comps []components.Component) error {
	f, err := loadLabelFont()
	if err != nil {
		return err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    labelFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()

	for _, comp := range comps {
		text := strconv.Itoa(comp.ID)
		width := d.MeasureString(text).Ceil()
		cx := (comp.Bounds.MinCol + comp.Bounds.MaxCol + 1) / 2
		cy := (comp.Bounds.MinRow + comp.Bounds.MaxRow + 1) / 2
		d.Dot = fixed.P(cx-width/2, cy+ascent/2)
		d.DrawString(text)
	}
	return nil
}

func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
		if labelFontErr != nil {
			labelFontErr = fmt.Errorf("failed to parse label font: %w", labelFontErr)
		}
	})
	return labelFont, labelFontErr
}
