// Package conv provides bounds-checked integer conversions.
//
// Row positions are stored in 32-bit bitmaps; these helpers reject inputs
// that would silently wrap.
package conv
