// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "github.com/meshintel/pagemark/pkg/types"

// MergeRects unions every pair of rectangles transitively near each other
// into their bounding rectangle, repeating until no pair qualifies.
// A rectangle pair merges when isNear within distance, or, when
// horizontalDistance > 0, when isHorizontalNear within horizontalDistance.
//
// Each pass pops rectangles from the front of the remaining list; a popped
// rectangle absorbs every qualifying partner in one scan, with subsequent
// comparisons made against the grown union. Survivors keep their insertion
// order. The input slice is not modified.
//
// Worst case O(n³) for adversarial inputs; n is drawings+images per page,
// which is tens, not thousands.
func MergeRects(rects []types.Rect, distance, horizontalDistance float64) []types.Rect {
	work := append([]types.Rect(nil), rects...)

	for merged := true; merged; {
		merged = false
		next := make([]types.Rect, 0, len(work))

		for len(work) > 0 {
			rect := work[0]
			work = work[1:]

			remaining := make([]types.Rect, 0, len(work))
			for _, other := range work {
				near := isNear(rect, other, distance) ||
					(horizontalDistance > 0 && isHorizontalNear(rect, other, horizontalDistance))
				if near {
					rect = rect.Union(other)
					merged = true
				} else {
					remaining = append(remaining, other)
				}
			}

			work = remaining
			next = append(next, rect)
		}

		work = next
	}

	return work
}
