package imaging

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// cacheEntry remembers the file state an image was decoded from.
type cacheEntry struct {
	img     image.Image
	modTime time.Time
	size    int64
}

func (e cacheEntry) matches(fi os.FileInfo) bool {
	return e.size == fi.Size() && e.modTime.Equal(fi.ModTime())
}

// ImageCache holds decoded images keyed by path and is safe for concurrent
// use.
//
// A cached image is reused only while its file keeps the same size and
// modification time, so masks rewritten between calls are decoded again.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/map.png")
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{entries: make(map[string]cacheEntry)}
}

// Load returns the image at path, decoding it when it is not cached or the
// file changed since it was cached.
//
// Decoding goes through disintegration/imaging, which handles PNG, JPEG, GIF,
// TIFF and BMP and applies EXIF orientation for JPEG files. Different path
// strings for the same file produce separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok && e.matches(fi) {
		return e, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}
	e = cacheEntry{img: img, modTime: fi.ModTime(), size: fi.Size()}

	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()
	return e, nil
}

// Save writes img to path like the package-level Save and drops any image
// cached under path, so the next Load decodes what was just written.
func (c *ImageCache) Save(img image.Image, path string) error {
	if err := Save(img, path); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ImageInfo describes an image file and its decoded pixels.
type ImageInfo struct {
	// Width is the image width in pixels (grid columns).
	Width int `json:"width"`

	// Height is the image height in pixels (grid rows).
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", "tiff", "bmp", or "unknown",
	// detected from the file extension.
	Format string `json:"format"`

	// ColorModel is "rgb", "gray" or "paletted".
	ColorModel string `json:"color_model"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha is true when the decoded color model carries alpha.
	HasAlpha bool `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// describeModel maps a color model to its name, channel depth and alpha
// support. Unknown models (YCbCr, CMYK) report as 8-bit rgb without alpha.
func describeModel(m color.Model) (name, depth string, alpha bool) {
	switch m {
	case color.RGBAModel, color.NRGBAModel:
		return "rgb", "8-bit", true
	case color.RGBA64Model, color.NRGBA64Model:
		return "rgb", "16-bit", true
	case color.GrayModel:
		return "gray", "8-bit", false
	case color.Gray16Model:
		return "gray", "16-bit", false
	}
	if _, ok := m.(color.Palette); ok {
		return "paletted", "8-bit", true
	}
	return "rgb", "8-bit", false
}

// LoadImageInfo loads path into cache and reports its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	model, depth, alpha := describeModel(e.img.ColorModel())
	bounds := e.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorModel:    model,
		ColorDepth:    depth,
		HasAlpha:      alpha,
		FileSizeBytes: e.size,
	}, nil
}

// Dimensions is the pixel size of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path into cache and returns only its size.
func GetDimensions(cache *ImageCache, path string) (*Dimensions, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	return &Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
