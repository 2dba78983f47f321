package render

import "image/color"

// Fixed colors
var (
	Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	JointColor = color.RGBA{R: 253, G: 249, B: 0, A: 255} // Yellow debug circles
	TextColor  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
)

// Palette is the body color set picked from when worms are created
var Palette = []color.RGBA{
	{R: 230, G: 41, B: 55, A: 255},   // Red
	{R: 255, G: 161, B: 0, A: 255},   // Orange
	{R: 0, G: 158, B: 47, A: 255},    // Lime
	{R: 0, G: 121, B: 241, A: 255},   // Blue
	{R: 135, G: 60, B: 190, A: 255},  // Violet
	{R: 255, G: 0, B: 255, A: 255},   // Magenta
	{R: 127, G: 106, B: 79, A: 255},  // Brown
	{R: 0, G: 82, B: 172, A: 255},    // Dark blue
	{R: 190, G: 33, B: 55, A: 255},   // Maroon
	{R: 0, G: 200, B: 200, A: 255},   // Cyan
	{R: 255, G: 109, B: 194, A: 255}, // Pink
	{R: 112, G: 31, B: 126, A: 255},  // Dark purple
}
