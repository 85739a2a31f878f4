// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "math"

// Rect is an axis-aligned rectangle in PDF user space: origin at the
// bottom-left of the page, y increasing upward, units of points.
// X0 ≤ X1 and Y0 ≤ Y1 for well-formed rectangles; zero-extent rectangles
// occur as intermediate values during segmentation.
type Rect struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// NewRect builds a Rect from two corner points in any order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the rectangle area.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Union returns the tightest axis-aligned rectangle covering both r and
// other: componentwise min of the lower corners and max of the upper corners.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Expand grows the rectangle outward by margin on all four sides.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X0: r.X0 - margin,
		Y0: r.Y0 - margin,
		X1: r.X1 + margin,
		Y1: r.Y1 + margin,
	}
}

// Distance returns the minimum geometric distance between r and other.
// Overlapping or touching rectangles have distance 0.
func (r Rect) Distance(other Rect) float64 {
	dx := math.Max(0, math.Max(other.X0-r.X1, r.X0-other.X1))
	dy := math.Max(0, math.Max(other.Y0-r.Y1, r.Y0-other.Y1))
	return math.Hypot(dx, dy)
}

// Intersects reports whether r and other share any point.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 || other.X1 < r.X0 || r.Y1 < other.Y0 || other.Y1 < r.Y0)
}

// IsWellFormed reports whether the rectangle has finite, ordered
// coordinates. Malformed rectangles (X0 > X1, NaN corners) indicate a
// programming error upstream and are rejected at the engine boundary.
func (r Rect) IsWellFormed() bool {
	for _, v := range [4]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.X0 <= r.X1 && r.Y0 <= r.Y1
}

// IsValid reports whether the rectangle is well-formed with strictly
// positive extent in both dimensions. Degenerate rectangles produced by
// merge artifacts fail this check.
func (r Rect) IsValid() bool {
	return r.IsWellFormed() && r.X1 > r.X0 && r.Y1 > r.Y0
}
