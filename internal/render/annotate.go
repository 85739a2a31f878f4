// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	annotationRed = color.RGBA{R: 255, A: 255}
	labelWhite    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Label placement relative to the region's top-left corner, in page
// points (scaled into raster space when drawn).
const (
	labelOffsetX = 2
	labelOffsetY = 10
	labelAscent  = 9
	labelDescent = 2
	labelWidth   = 80
)

// annotateRegion draws a hollow red outline around box and the region's
// file name on a white backing box at its top-left corner.
func annotateRegion(img *image.RGBA, box image.Rectangle, label string, scale float64) {
	strokeRect(img, box, annotationRed, outlineWidth(scale))

	textX := box.Min.X + scaled(labelOffsetX, scale)
	textY := box.Min.Y + scaled(labelOffsetY, scale)

	backing := image.Rect(
		textX,
		textY-scaled(labelAscent, scale),
		textX+scaled(labelWidth, scale),
		textY+scaled(labelDescent, scale),
	)
	fillRect(img, backing, labelWhite)

	drawText(img, textX, textY, label, annotationRed)
}

// outlineWidth keeps the stroke roughly one page unit thick at any scale.
func outlineWidth(scale float64) int {
	w := int(math.Round(scale))
	if w < 1 {
		w = 1
	}
	return w
}

func scaled(units int, scale float64) int {
	return int(math.Round(float64(units) * scale))
}

// strokeRect draws a hollow rectangle of the given stroke width.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color, width int) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width)
	bottom := image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y)
	right := image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		fillRect(img, edge, c)
	}
}

// fillRect fills r with the solid color c.
func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// drawText renders label text with its baseline at (x, y).
func drawText(img *image.RGBA, x, y int, text string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
