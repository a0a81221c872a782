// Package artwork draws abstract geometric preview images for repository
// records when no image generation endpoint is available.
package artwork

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
)

var palette = []color.RGBA{
	{66, 134, 244, 255},  // blue
	{52, 168, 83, 255},   // green
	{251, 188, 4, 255},   // yellow
	{234, 67, 53, 255},   // red
	{255, 255, 255, 255}, // white
}

var background = color.RGBA{30, 33, 36, 255}

// Generate draws an abstract composition of circles, rectangles, and lines
// on a dark background. The seed makes output reproducible per repository.
func Generate(width, height int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	// Faint connecting lines behind the shapes.
	dim := color.RGBA{50, 50, 50, 255}
	for i := 0; i < 10; i++ {
		drawLine(img, rng.Intn(width), rng.Intn(height), rng.Intn(width), rng.Intn(height), dim)
	}

	for i := 0; i < 15; i++ {
		c := palette[rng.Intn(len(palette))]
		x, y := rng.Intn(width), rng.Intn(height)
		switch rng.Intn(3) {
		case 0:
			drawCircle(img, x, y, 20+rng.Intn(80), c)
		case 1:
			drawRect(img, x, y, 40+rng.Intn(160), 40+rng.Intn(60), c)
		default:
			drawLine(img, x, y, x+rng.Intn(400)-200, y+rng.Intn(200)-100, c)
		}
	}
	return img
}

// Save writes a generated image as PNG to the given path.
func Save(path string, width, height int, seed int64) error {
	img := Generate(width, height, seed)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// drawCircle draws a 3px circle outline via the midpoint algorithm.
func drawCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for w := 0; w < 3; w++ {
		radius := r + w
		x, y, d := radius, 0, 1-radius
		for x >= y {
			for _, p := range [][2]int{
				{cx + x, cy + y}, {cx + y, cy + x}, {cx - y, cy + x}, {cx - x, cy + y},
				{cx - x, cy - y}, {cx - y, cy - x}, {cx + y, cy - x}, {cx + x, cy - y},
			} {
				setPixel(img, p[0], p[1], c)
			}
			y++
			if d <= 0 {
				d += 2*y + 1
			} else {
				x--
				d += 2*(y-x) + 1
			}
		}
	}
}

// drawRect draws a 3px rectangle outline.
func drawRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for t := 0; t < 3; t++ {
		for i := x; i <= x+w; i++ {
			setPixel(img, i, y+t, c)
			setPixel(img, i, y+h-t, c)
		}
		for j := y; j <= y+h; j++ {
			setPixel(img, x+t, j, c)
			setPixel(img, x+w-t, j, c)
		}
	}
}

// drawLine draws a 1px line via Bresenham.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
