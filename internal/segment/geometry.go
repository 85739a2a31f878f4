// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment implements the layout segmentation engine: it turns a
// page's raw vector drawings, embedded images, and text blocks into a
// minimal set of non-overlapping rectangles suitable for cropping and
// labeling. Implements: prd001-segmentation (R1-R4);
//
//	docs/ARCHITECTURE § Segmentation.
//
// The engine is pure and reentrant: it performs no I/O, keeps no state
// across calls, and never mutates its inputs, so concurrent invocations
// for different pages are safe.
package segment

import (
	"math"

	"github.com/meshintel/pagemark/pkg/types"
)

const (
	// bufferEpsilon expands both rectangles before measuring distance,
	// so touching or overlapping rectangles measure as distance 0.
	bufferEpsilon = 0.1

	// lineEpsilon bounds the height of a rectangle considered a
	// horizontal line, and the edge misalignment tolerated by the
	// horizontal-line merge.
	lineEpsilon = 0.1
)

// isNear reports whether the minimum distance between a and b, each
// buffered outward by bufferEpsilon, is strictly less than distance.
// Symmetric; true for overlapping rectangles.
func isNear(a, b types.Rect, distance float64) bool {
	return a.Expand(bufferEpsilon).Distance(b.Expand(bufferEpsilon)) < distance
}

// isHorizontalNear reports whether a and b should merge because one of
// them is a horizontal rule sitting above or below the other with
// near-identical left and right edges. A thin divider line is merged with
// the column of text it delimits even when that text is farther away than
// the generic proximity threshold allows.
func isHorizontalNear(a, b types.Rect, distance float64) bool {
	if math.Abs(a.Y1-a.Y0) >= lineEpsilon && math.Abs(b.Y1-b.Y0) >= lineEpsilon {
		return false
	}
	if math.Abs(a.X0-b.X0) >= lineEpsilon || math.Abs(a.X1-b.X1) >= lineEpsilon {
		return false
	}
	return math.Abs(a.Y1-b.Y1) < distance
}
