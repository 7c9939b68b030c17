// Package classify turns a colour image into a binary foreground grid.
//
// Each pixel is reduced to 8-bit RGB and tested with a Rule. Rules compare
// channels against two caller-supplied thresholds:
//
//   - red:       R > Upper, G < Lower, B < Lower
//   - cyan:      R < Upper, G > Lower, B > Lower
//   - mask:      R >= 255 (reads back a mask written by this tool)
//   - hue:       HSL hue within [Lower, Upper] degrees, reasonably saturated
//   - luminance: grey level >= Upper, via a bild threshold pass
//
// Pixels are evaluated independently. The resulting grid has one row per image
// row (Y) and one column per image column (X), regardless of the image bounds
// origin.
package classify
