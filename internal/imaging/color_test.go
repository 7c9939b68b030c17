package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestSampleColor(t *testing.T) {
	img := createPatternImage(10, 10)

	tests := []struct {
		name      string
		x, y      int
		hex       string
		rgb       RGB
		hue       int
		luminance uint8
	}{
		{"red quadrant", 0, 0, "#ff0000", RGB{255, 0, 0}, 0, 76},
		{"cyan quadrant", 9, 0, "#00ffff", RGB{0, 255, 255}, 180, 179},
		{"blue quadrant", 0, 9, "#0000ff", RGB{0, 0, 255}, 240, 29},
		{"white quadrant", 9, 9, "#ffffff", RGB{255, 255, 255}, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SampleColor(img, tt.x, tt.y)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if got.Hex != tt.hex {
				t.Errorf("Hex = %s, want %s", got.Hex, tt.hex)
			}
			if got.RGB != tt.rgb {
				t.Errorf("RGB = %+v, want %+v", got.RGB, tt.rgb)
			}
			if got.HSL.H != tt.hue {
				t.Errorf("HSL.H = %d, want %d", got.HSL.H, tt.hue)
			}
			if got.Luminance != tt.luminance {
				t.Errorf("Luminance = %d, want %d", got.Luminance, tt.luminance)
			}
			if got.Alpha != 255 {
				t.Errorf("Alpha = %d, want 255", got.Alpha)
			}
		})
	}
}

func TestSampleColor_HSLPercentages(t *testing.T) {
	img := createInMemoryImage(1, 1, color.RGBA{128, 128, 128, 255})
	got, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if got.HSL.S != 0 || got.HSL.L != 50 {
		t.Errorf("grey HSL = %+v, want S=0 L=50", got.HSL)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := SampleColor(img, p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SampleColor(%d,%d): got %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
}

func TestSampleColor_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 8))
	img.Set(5, 5, color.RGBA{0, 255, 0, 255})

	got, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if got.Hex != "#00ff00" {
		t.Errorf("Hex = %s, want #00ff00", got.Hex)
	}
}

func TestSampleColors(t *testing.T) {
	img := createPatternImage(10, 10)
	points := []Point{
		{X: 0, Y: 0, Label: "land"},
		{X: 9, Y: 0, Label: "water"},
	}

	got, err := SampleColors(img, points)
	if err != nil {
		t.Fatalf("SampleColors failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d samples, want 2", len(got))
	}
	if got[0].Label != "land" || got[0].Hex != "#ff0000" {
		t.Errorf("sample 0 = %+v", got[0])
	}
	if got[1].Label != "water" || got[1].Hex != "#00ffff" {
		t.Errorf("sample 1 = %+v", got[1])
	}

	points = append(points, Point{X: 20, Y: 20})
	if _, err := SampleColors(img, points); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("got %v, want ErrOutOfBounds", err)
	}
}

func TestDominantColors(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})
	for x := 0; x < 10; x++ {
		img.Set(x, 0, color.RGBA{0, 0, 255, 255})
	}

	got, err := DominantColors(img, 5, image.Rectangle{})
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d colors, want 2", len(got))
	}
	if got[0].Hex != "#f00000" || got[0].Percentage != 90 {
		t.Errorf("first color = %+v, want #f00000 at 90%%", got[0])
	}
	if got[1].Hex != "#0000f0" || got[1].Percentage != 10 {
		t.Errorf("second color = %+v, want #0000f0 at 10%%", got[1])
	}
}

func TestDominantColors_RegionAndLimit(t *testing.T) {
	img := createPatternImage(10, 10)

	got, err := DominantColors(img, 1, image.Rect(0, 0, 10, 5))
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d colors, want 1", len(got))
	}
	// Red and cyan tie at 50%; ties break by hex.
	if got[0].Hex != "#00f0f0" {
		t.Errorf("Hex = %s, want #00f0f0", got[0].Hex)
	}

	if _, err := DominantColors(img, 1, image.Rect(5, 5, 20, 20)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("got %v, want ErrOutOfBounds", err)
	}
}
