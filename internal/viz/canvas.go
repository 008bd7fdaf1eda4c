package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight are the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Frame maps data coordinates onto the canvas with y pointing up.
type Frame struct {
	MinX, MaxX float64
	MinY, MaxY float64
	w, h       int
}

func (c *Canvas) Frame(minX, maxX, minY, maxY float64) Frame {
	if maxX <= minX {
		maxX = minX + 1
	}
	if maxY <= minY {
		maxY = minY + 1
	}
	return Frame{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, w: c.PixelWidth(), h: c.PixelHeight()}
}

// Point converts a data point to sub-pixel coordinates.
func (f Frame) Point(x, y float64) (int, int) {
	px := int((x - f.MinX) / (f.MaxX - f.MinX) * float64(f.w-1))
	py := int((f.MaxY - y) / (f.MaxY - f.MinY) * float64(f.h-1))
	return px, py
}

// Polyline joins consecutive points of ys, spread evenly over the frame's
// x range.
func (c *Canvas) Polyline(f Frame, ys []float64) {
	if len(ys) == 0 {
		return
	}
	step := (f.MaxX - f.MinX) / float64(max(len(ys)-1, 1))
	px, py := f.Point(f.MinX, ys[0])
	for i := 1; i < len(ys); i++ {
		x, y := f.Point(f.MinX+float64(i)*step, ys[i])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// Stem draws a vertical segment at data x between two heights.
func (c *Canvas) Stem(f Frame, x, y0, y1 float64) {
	px, py0 := f.Point(x, y0)
	_, py1 := f.Point(x, y1)
	c.DrawLine(px, py0, px, py1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
