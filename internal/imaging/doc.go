// Package imaging provides the image I/O and rendering around the labeler.
//
// It loads source images (PNG, JPEG, GIF, TIFF, BMP) through a shared cache,
// samples pixel colours to help choose classification thresholds, renders
// binary grids and label grids back into images, and crops individual
// components out of the source image.
//
// # Coordinate System
//
// Image coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Grids from the components
// package map Row to Y and Col to X.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Rendering and cropping
// functions are stateless and allocate their own output images.
//
// # Output Formats
//
// Save picks the encoder from the file extension (.png, .jpg/.jpeg, .gif,
// .tif/.tiff, .bmp). Results returned to MCP clients carry base64 PNG data.
// JPEG is lossy: a mask saved as .jpg may not read back bit-exact, so prefer
// PNG when the mask will be classified again.
package imaging
