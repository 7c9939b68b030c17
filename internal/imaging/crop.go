package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-regions/internal/components"
)

// Crop extracts the rectangle (x1,y1)-(x2,y2), exclusive of the max corner
// and relative to the image bounds origin, and optionally rescales it.
// A scale of 0 or 1 keeps the original size.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	rect := image.Rect(x1, y1, x2, y2).Add(bounds.Min)

	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	if !rect.In(bounds) {
		return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) in %dx%d image",
			ErrOutOfBounds, x1, y1, x2, y2, bounds.Dx(), bounds.Dy())
	}
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %g: must not be negative", scale)
	}

	cropped := imaging.Crop(img, rect)
	if scale != 0 && scale != 1 {
		w := max(1, int(float64(cropped.Bounds().Dx())*scale))
		h := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}
	return cropped, nil
}

// CropComponent crops the bounding box of comp, grown by padding pixels on
// every side and clamped to the image, then rescales it.
func CropComponent(img image.Image, comp components.Component, padding int, scale float64) (*image.NRGBA, error) {
	if padding < 0 {
		return nil, fmt.Errorf("invalid padding %d: must not be negative", padding)
	}
	bounds := img.Bounds()
	x1 := max(0, comp.Bounds.MinCol-padding)
	y1 := max(0, comp.Bounds.MinRow-padding)
	x2 := min(bounds.Dx(), comp.Bounds.MaxCol+1+padding)
	y2 := min(bounds.Dy(), comp.Bounds.MaxRow+1+padding)
	return Crop(img, x1, y1, x2, y2, scale)
}
