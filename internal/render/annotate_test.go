// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/meshintel/pagemark/pkg/types"
)

func TestToRaster_FlipsY(t *testing.T) {
	// Page 100 points tall at 2x: the top of the page is raster row 0.
	r := toRaster(types.Rect{X0: 10, Y0: 20, X1: 40, Y1: 90}, 100, 2)
	want := image.Rect(20, 20, 80, 160)
	if r != want {
		t.Errorf("toRaster = %v, want %v", r, want)
	}
}

func TestToRaster_RoundsToNearestPixel(t *testing.T) {
	r := toRaster(types.Rect{X0: 10.4, Y0: 0, X1: 20.6, Y1: 100}, 100, 1)
	want := image.Rect(10, 0, 21, 100)
	if r != want {
		t.Errorf("toRaster = %v, want %v", r, want)
	}
}

func TestStrokeRect_HollowOutline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	strokeRect(img, image.Rect(10, 10, 40, 40), annotationRed, 1)

	if img.RGBAAt(10, 10) != annotationRed {
		t.Error("corner pixel not stroked")
	}
	if img.RGBAAt(25, 10) != annotationRed {
		t.Error("top edge not stroked")
	}
	if img.RGBAAt(25, 39) != annotationRed {
		t.Error("bottom edge not stroked")
	}
	if got := img.RGBAAt(25, 25); got == annotationRed {
		t.Error("interior must stay unfilled")
	}
}

func TestStrokeRect_ClampedToImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	// Must not panic on a box partially outside the image.
	strokeRect(img, image.Rect(-10, -10, 30, 30), annotationRed, 2)
	strokeRect(img, image.Rect(100, 100, 200, 200), annotationRed, 2)
}

func TestAnnotateRegion_LabelBacking(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	annotateRegion(img, image.Rect(50, 50, 350, 350), "0_0.png", 1)

	// White backing strip past the end of the label glyphs.
	if img.RGBAAt(120, 55) != labelWhite {
		t.Errorf("label backing missing, got %v", img.RGBAAt(120, 55))
	}
	// Outline present on the left edge.
	if img.RGBAAt(50, 200) != annotationRed {
		t.Error("left edge not stroked")
	}
	// At least one red glyph pixel inside the label box.
	found := false
	for y := 52; y < 61 && !found; y++ {
		for x := 52; x < 110; x++ {
			if img.RGBAAt(x, y) == annotationRed {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no label glyph pixels drawn")
	}
}

func TestFillRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fillRect(img, image.Rect(2, 2, 5, 5), color.RGBA{G: 255, A: 255})

	if img.RGBAAt(3, 3) != (color.RGBA{G: 255, A: 255}) {
		t.Error("fill missing inside rect")
	}
	if img.RGBAAt(6, 6) != (color.RGBA{}) {
		t.Error("fill leaked outside rect")
	}
}
